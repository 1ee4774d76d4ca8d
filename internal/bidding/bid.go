package bidding

import (
	"errors"
	"fmt"
	"sort"

	"shengji/internal/domain"
)

var ErrInvalidNumDecks = errors.New("number of decks must be positive")

// Bid is a claim to set trump by showing Count copies of Card.
type Bid struct {
	ID    domain.PlayerID `json:"id"`
	Card  domain.Card     `json:"card"`
	Count int             `json:"count"`
	Epoch int             `json:"epoch"`
}

// Winning returns the bid currently setting trump for epoch: the last bid
// made in that epoch.
func Winning(bids []Bid, epoch int) (Bid, bool) {
	for i := len(bids) - 1; i >= 0; i-- {
		if bids[i].Epoch == epoch {
			return bids[i], true
		}
	}
	return Bid{}, false
}

// Request gathers the inputs to ValidBids.
type Request struct {
	ID            domain.PlayerID
	Bids          []Bid
	Hands         domain.Hands
	Players       []domain.Player
	Landlord      *domain.PlayerID
	Epoch         int
	Policy        BidPolicy
	Reinforcement BidReinforcementPolicy
	JokerPolicy   JokerBidPolicy
	NumDecks      int
}

// ValidBids lists every bid the player could make now, sorted by card and
// count. Bids from other epochs are ignored. An empty list means the player
// can only pass.
func ValidBids(req Request) ([]Bid, error) {
	if req.NumDecks <= 0 {
		return nil, ErrInvalidNumDecks
	}
	player, ok := domain.FindPlayer(req.Players, req.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPlayer, req.ID)
	}
	level := player.BidLevel()
	if req.Landlord != nil {
		landlord, ok := domain.FindPlayer(req.Players, *req.Landlord)
		if !ok {
			return nil, fmt.Errorf("%w: landlord %s", domain.ErrUnknownPlayer, *req.Landlord)
		}
		level = landlord.BidLevel()
	}
	hand, err := req.Hands.Get(req.ID)
	if err != nil {
		return nil, err
	}

	winning, hasWinner := Winning(req.Bids, req.Epoch)
	own, hasOwn := lastBidBy(req.Bids, req.ID, req.Epoch)

	seen := make(map[Bid]bool)
	valid := []Bid{}
	for card, held := range hand {
		if !card.IsJoker() && card.Number != level {
			continue
		}
		for count := 1; count <= held; count++ {
			if card.IsJoker() && !req.JokerPolicy.allowsJoker(card.Joker == domain.BigJoker, count, req.NumDecks) {
				continue
			}
			cand := Bid{ID: req.ID, Card: card, Count: count, Epoch: req.Epoch}
			if seen[cand] {
				continue
			}
			if !hasWinner || legalOver(cand, winning, own, hasOwn, req) {
				seen[cand] = true
				valid = append(valid, cand)
			}
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Card != valid[j].Card {
			return bidCardRank(valid[i].Card) < bidCardRank(valid[j].Card)
		}
		return valid[i].Count < valid[j].Count
	})
	return valid, nil
}

func legalOver(cand, winning, own Bid, hasOwn bool, req Request) bool {
	if winning.ID == cand.ID {
		if cand.Card == winning.Card {
			return cand.Count > winning.Count
		}
		return req.Reinforcement == OverturnOrReinforceWhileWinning && Dominates(req.Policy, cand, winning)
	}
	if Dominates(req.Policy, cand, winning) {
		return true
	}
	return req.Reinforcement == ReinforceWhileEquivalent &&
		hasOwn &&
		cand.Card == own.Card &&
		cand.Count > own.Count &&
		!Dominates(req.Policy, winning, cand)
}

// Dominates reports whether a outranks b under policy.
func Dominates(policy BidPolicy, a, b Bid) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	switch policy {
	case JokerOrHigherSuit:
		return bidCardRank(a.Card) > bidCardRank(b.Card)
	case JokerOrGreaterLength:
		return a.Card.IsJoker() && bidCardRank(a.Card) > bidCardRank(b.Card)
	}
	return false
}

// bidCardRank orders bid cards: suited cards by suit, then small joker,
// then big joker.
func bidCardRank(c domain.Card) int {
	switch c.Joker {
	case domain.SmallJoker:
		return 10
	case domain.BigJoker:
		return 11
	}
	return int(c.Suit)
}

func lastBidBy(bids []Bid, id domain.PlayerID, epoch int) (Bid, bool) {
	for i := len(bids) - 1; i >= 0; i-- {
		if bids[i].ID == id && bids[i].Epoch == epoch {
			return bids[i], true
		}
	}
	return Bid{}, false
}
