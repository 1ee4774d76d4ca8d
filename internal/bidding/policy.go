package bidding

import "fmt"

// BidPolicy decides when a bid outranks the current winning bid.
type BidPolicy uint8

const (
	// JokerOrHigherSuit: more cards win; on a tie, jokers beat suited cards
	// and a higher suit beats a lower one.
	JokerOrHigherSuit BidPolicy = iota
	// JokerOrGreaterLength: more cards win; on a tie only jokers beat suited cards.
	JokerOrGreaterLength
	// GreaterLength: only more cards win.
	GreaterLength
)

// BidReinforcementPolicy decides how a player may add to their own bid.
type BidReinforcementPolicy uint8

const (
	// ReinforceWhileWinning lets the winning bidder add cards of the same bid.
	ReinforceWhileWinning BidReinforcementPolicy = iota
	// OverturnOrReinforceWhileWinning also lets the winning bidder switch to
	// a different bid that outranks their own.
	OverturnOrReinforceWhileWinning
	// ReinforceWhileEquivalent additionally lets a player who was matched,
	// but not beaten, reinforce their earlier bid.
	ReinforceWhileEquivalent
)

// JokerBidPolicy decides whether and how jokers can be bid.
type JokerBidPolicy uint8

const (
	BothTwoOrMore JokerBidPolicy = iota
	BothNumDecks
	LJNumDecksHJNumDecksLessOne
	Disabled
)

var (
	bidPolicyNames = map[BidPolicy]string{
		JokerOrHigherSuit:    "JokerOrHigherSuit",
		JokerOrGreaterLength: "JokerOrGreaterLength",
		GreaterLength:        "GreaterLength",
	}
	reinforcementPolicyNames = map[BidReinforcementPolicy]string{
		ReinforceWhileWinning:           "ReinforceWhileWinning",
		OverturnOrReinforceWhileWinning: "OverturnOrReinforceWhileWinning",
		ReinforceWhileEquivalent:        "ReinforceWhileEquivalent",
	}
	jokerPolicyNames = map[JokerBidPolicy]string{
		BothTwoOrMore:               "BothTwoOrMore",
		BothNumDecks:                "BothNumDecks",
		LJNumDecksHJNumDecksLessOne: "LJNumDecksHJNumDecksLessOne",
		Disabled:                    "Disabled",
	}
)

func (p BidPolicy) String() string              { return bidPolicyNames[p] }
func (p BidReinforcementPolicy) String() string { return reinforcementPolicyNames[p] }
func (p JokerBidPolicy) String() string         { return jokerPolicyNames[p] }

func (p BidPolicy) MarshalText() ([]byte, error) { return marshalName(bidPolicyNames, p) }
func (p BidReinforcementPolicy) MarshalText() ([]byte, error) {
	return marshalName(reinforcementPolicyNames, p)
}
func (p JokerBidPolicy) MarshalText() ([]byte, error) { return marshalName(jokerPolicyNames, p) }

func (p *BidPolicy) UnmarshalText(text []byte) error {
	return unmarshalName(bidPolicyNames, p, string(text))
}

func (p *BidReinforcementPolicy) UnmarshalText(text []byte) error {
	return unmarshalName(reinforcementPolicyNames, p, string(text))
}

func (p *JokerBidPolicy) UnmarshalText(text []byte) error {
	return unmarshalName(jokerPolicyNames, p, string(text))
}

func marshalName[T ~uint8](names map[T]string, v T) ([]byte, error) {
	name, ok := names[v]
	if !ok {
		return nil, fmt.Errorf("unknown policy %d", uint8(v))
	}
	return []byte(name), nil
}

func unmarshalName[T comparable](names map[T]string, dst *T, text string) error {
	for v, name := range names {
		if name == text {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown policy %q", text)
}

// allowsJoker reports whether count copies of joker j may be bid.
func (p JokerBidPolicy) allowsJoker(big bool, count, numDecks int) bool {
	switch p {
	case BothTwoOrMore:
		return count >= 2
	case BothNumDecks:
		return count == numDecks
	case LJNumDecksHJNumDecksLessOne:
		if !big {
			return count == numDecks
		}
		return count >= max(numDecks-1, 1)
	}
	return false
}
