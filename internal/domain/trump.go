package domain

import (
	"fmt"
	"sort"
)

// EffectiveSuit is the suit a card plays as once trump is applied.
type EffectiveSuit uint8

const (
	EffectiveClubs EffectiveSuit = iota + 1
	EffectiveDiamonds
	EffectiveSpades
	EffectiveHearts
	EffectiveTrump
)

var effectiveSuitNames = map[EffectiveSuit]string{
	EffectiveClubs:    "clubs",
	EffectiveDiamonds: "diamonds",
	EffectiveSpades:   "spades",
	EffectiveHearts:   "hearts",
	EffectiveTrump:    "trump",
}

// EffectiveOf maps a natural suit to its non-trump effective suit.
func EffectiveOf(s Suit) EffectiveSuit {
	return EffectiveSuit(s)
}

func (s EffectiveSuit) String() string {
	if name, ok := effectiveSuitNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s EffectiveSuit) MarshalText() ([]byte, error) {
	if _, ok := effectiveSuitNames[s]; !ok {
		return nil, fmt.Errorf("%w: effective suit %d", ErrInvalidCard, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *EffectiveSuit) UnmarshalText(text []byte) error {
	for suit, name := range effectiveSuitNames {
		if string(text) == name {
			*s = suit
			return nil
		}
	}
	return fmt.Errorf("%w: effective suit %q", ErrInvalidCard, string(text))
}

// Trump is the trump configuration of a hand. Either field may be unset;
// the zero value is "no trump", where only jokers are trump.
type Trump struct {
	Suit   Suit   `json:"suit,omitempty"`
	Number Number `json:"number,omitempty"`
}

func (t Trump) HasSuit() bool   { return t.Suit != NoSuit }
func (t Trump) HasNumber() bool { return t.Number != 0 }

func (t Trump) String() string {
	switch {
	case t.HasSuit() && t.HasNumber():
		return fmt.Sprintf("%s of %s", t.Number, t.Suit)
	case t.HasSuit():
		return t.Suit.String()
	case t.HasNumber():
		return fmt.Sprintf("no trump (%s)", t.Number)
	}
	return "no trump"
}

// EffectiveSuit returns the suit the card follows under this trump.
func (t Trump) EffectiveSuit(c Card) EffectiveSuit {
	if t.IsTrump(c) {
		return EffectiveTrump
	}
	return EffectiveOf(c.Suit)
}

func (t Trump) IsTrump(c Card) bool {
	if c.IsJoker() {
		return true
	}
	return (t.HasNumber() && c.Number == t.Number) || (t.HasSuit() && c.Suit == t.Suit)
}

// Order is the dense position of a card within its effective suit. The trump
// number never occupies a slot in a plain suit, so cards on either side of it
// are adjacent. Off-suit trump-number cards share a single position.
func (t Trump) Order(c Card) int {
	plainSlots := 13
	if t.HasNumber() {
		plainSlots = 12
	}
	trumpBase := 0
	if t.HasSuit() {
		trumpBase = plainSlots
	}

	switch {
	case c.Joker == SmallJoker:
		return trumpBase + t.numberSlots()
	case c.Joker == BigJoker:
		return trumpBase + t.numberSlots() + 1
	case t.HasNumber() && c.Number == t.Number:
		if t.HasSuit() && c.Suit == t.Suit {
			return trumpBase + 1
		}
		return trumpBase
	}
	pos := int(c.Number) - int(MinNumber)
	if t.HasNumber() && c.Number > t.Number {
		pos--
	}
	return pos
}

func (t Trump) numberSlots() int {
	switch {
	case t.HasNumber() && t.HasSuit():
		return 2
	case t.HasNumber():
		return 1
	}
	return 0
}

// Adjacent reports whether b sits directly above a in tractor order.
func (t Trump) Adjacent(a, b Card) bool {
	return t.EffectiveSuit(a) == t.EffectiveSuit(b) && t.Order(b) == t.Order(a)+1
}

// Compare is a strict total order over distinct cards: effective suit first,
// then Order, then natural suit.
func (t Trump) Compare(a, b Card) int {
	if sa, sb := t.EffectiveSuit(a), t.EffectiveSuit(b); sa != sb {
		return cmpInt(int(sa), int(sb))
	}
	if oa, ob := t.Order(a), t.Order(b); oa != ob {
		return cmpInt(oa, ob)
	}
	return cmpInt(int(a.Suit), int(b.Suit))
}

// Sort orders cards in place by Compare.
func (t Trump) Sort(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool { return t.Compare(cards[i], cards[j]) < 0 })
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
