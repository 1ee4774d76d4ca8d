package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownPlayer  = errors.New("player not found")
	ErrCardsNotInHand = errors.New("cards not in hand")
)

// PlayerID identifies a seated player. At the Nakama boundary it is the user id.
type PlayerID string

// Hand is a multiset of cards keyed by card.
type Hand map[Card]int

// NewHand builds a Hand from a card list.
func NewHand(cards []Card) Hand {
	h := make(Hand, len(cards))
	for _, c := range cards {
		h[c]++
	}
	return h
}

// Cards expands the multiset into a slice in natural card order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Len())
	for _, c := range h.distinct() {
		for i := 0; i < h[c]; i++ {
			out = append(out, c)
		}
	}
	return out
}

func (h Hand) Len() int {
	n := 0
	for _, count := range h {
		if count > 0 {
			n += count
		}
	}
	return n
}

// Contains reports whether cards is a sub-multiset of the hand.
func (h Hand) Contains(cards []Card) bool {
	need := NewHand(cards)
	for c, n := range need {
		if h[c] < n {
			return false
		}
	}
	return true
}

// Filter returns the cards of the hand for which keep is true.
func (h Hand) Filter(keep func(Card) bool) []Card {
	var out []Card
	for _, c := range h.Cards() {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (h Hand) distinct() []Card {
	keys := make([]Card, 0, len(h))
	for c, n := range h {
		if n > 0 {
			keys = append(keys, c)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
	return keys
}

func naturalLess(a, b Card) bool {
	if a.Joker != b.Joker {
		return a.Joker < b.Joker
	}
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	return a.Number < b.Number
}

// Hands maps each player to the cards they still hold. The engine only reads it.
type Hands map[PlayerID]Hand

// Get returns the hand of id.
func (h Hands) Get(id PlayerID) (Hand, error) {
	hand, ok := h[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return hand, nil
}

// Contains checks that id holds every card in cards.
func (h Hands) Contains(id PlayerID, cards []Card) error {
	hand, err := h.Get(id)
	if err != nil {
		return err
	}
	if !hand.Contains(cards) {
		return fmt.Errorf("%w: %s", ErrCardsNotInHand, id)
	}
	return nil
}
