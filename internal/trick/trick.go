package trick

import (
	"fmt"

	"shengji/internal/domain"
)

// PlayedCards is one player's contribution to a trick.
type PlayedCards struct {
	ID    domain.PlayerID `json:"id"`
	Cards []domain.Card   `json:"cards"`
}

// Trick is an in-progress trick. PlayerQueue holds the players still to
// play, next player first. Format is nil until the lead has been played.
type Trick struct {
	PlayerQueue         []domain.PlayerID   `json:"player_queue"`
	PlayedCards         []PlayedCards       `json:"played_cards"`
	Format              *TrickFormat        `json:"trick_format,omitempty"`
	Trump               domain.Trump        `json:"trump"`
	TractorRequirements TractorRequirements `json:"tractor_requirements"`
}

// NewTrick starts a trick led by leader, with the remaining players
// following in seat order.
func NewTrick(seats []domain.PlayerID, leader domain.PlayerID, trump domain.Trump, reqs TractorRequirements) (Trick, error) {
	for i, id := range seats {
		if id != leader {
			continue
		}
		queue := make([]domain.PlayerID, 0, len(seats))
		queue = append(queue, seats[i:]...)
		queue = append(queue, seats[:i]...)
		return Trick{PlayerQueue: queue, Trump: trump, TractorRequirements: reqs}, nil
	}
	return Trick{}, fmt.Errorf("%w: %s", domain.ErrUnknownPlayer, leader)
}

// CanPlayCards reports why id may not play cards next, or nil if the play
// is legal.
func (t Trick) CanPlayCards(id domain.PlayerID, hands domain.Hands, cards []domain.Card, policy TrickDrawPolicy) error {
	if len(t.PlayerQueue) == 0 {
		return ErrTrickComplete
	}
	if t.PlayerQueue[0] != id {
		return fmt.Errorf("%w: waiting on %s", ErrOutOfTurn, t.PlayerQueue[0])
	}
	if err := hands.Contains(id, cards); err != nil {
		return err
	}
	if len(cards) == 0 {
		return ErrNoCards
	}

	if t.Format == nil {
		_, _, err := FormatFromCards(t.Trump, t.TractorRequirements, cards)
		return err
	}
	hand, err := hands.Get(id)
	if err != nil {
		return err
	}
	return t.Format.CheckFollow(hand, cards, policy)
}

// Play returns the trick with id's cards added. The receiver is unchanged.
func (t Trick) Play(id domain.PlayerID, hands domain.Hands, cards []domain.Card, policy TrickDrawPolicy) (Trick, error) {
	if err := t.CanPlayCards(id, hands, cards, policy); err != nil {
		return t, err
	}

	next := Trick{
		PlayerQueue:         append([]domain.PlayerID(nil), t.PlayerQueue[1:]...),
		PlayedCards:         append([]PlayedCards(nil), t.PlayedCards...),
		Format:              t.Format,
		Trump:               t.Trump,
		TractorRequirements: t.TractorRequirements,
	}
	if next.Format == nil {
		format, _, err := FormatFromCards(t.Trump, t.TractorRequirements, cards)
		if err != nil {
			return t, err
		}
		next.Format = &format
	}

	played := append([]domain.Card(nil), cards...)
	t.Trump.Sort(played)
	next.PlayedCards = append(next.PlayedCards, PlayedCards{ID: id, Cards: played})
	return next, nil
}

// Points sums the point cards played into the trick so far.
func (t Trick) Points() int {
	total := 0
	for _, p := range t.PlayedCards {
		total += domain.CardPoints(p.Cards)
	}
	return total
}

// Winner returns the player currently taking the trick. A follow only
// contends when it has the led shape and is entirely in the led suit or
// entirely trump; it wins by topping the strongest unit of the best play.
func (t Trick) Winner() (domain.PlayerID, bool) {
	if t.Format == nil || len(t.PlayedCards) == 0 {
		return "", false
	}

	lead := t.PlayedCards[0]
	best := lead.ID
	bestSuit := t.Format.Suit
	bestTop, _ := t.strength(lead.Cards)

	for _, p := range t.PlayedCards[1:] {
		suit, ok := t.singleSuit(p.Cards)
		if !ok || (suit != t.Format.Suit && suit != domain.EffectiveTrump) {
			continue
		}
		top, ok := t.strength(p.Cards)
		if !ok {
			continue
		}
		switch {
		case suit == domain.EffectiveTrump && bestSuit != domain.EffectiveTrump:
		case suit == bestSuit && top > bestTop:
		default:
			continue
		}
		best, bestSuit, bestTop = p.ID, suit, top
	}
	return best, true
}

func (t Trick) singleSuit(cards []domain.Card) (domain.EffectiveSuit, bool) {
	if len(cards) == 0 {
		return 0, false
	}
	suit := t.Trump.EffectiveSuit(cards[0])
	for _, c := range cards[1:] {
		if t.Trump.EffectiveSuit(c) != suit {
			return 0, false
		}
	}
	return suit, true
}

// strength is the order of the top card of the largest unit when cards are
// read in the led format, taking the best reading.
func (t Trick) strength(cards []domain.Card) (int, bool) {
	shape := canonicalShapes(t.Format.Units)
	if len(shape) == 0 {
		return 0, false
	}
	if shape[0] == single {
		if len(cards) != len(shape) {
			return 0, false
		}
		best := -1
		for _, c := range cards {
			if o := t.Trump.Order(c); o > best {
				best = o
			}
		}
		return best, true
	}
	groupings := checkPlay(t.Trump, t.Format.TractorRequirements.normalized(), cards, shape, NoProtections, 0)
	if len(groupings) == 0 {
		return 0, false
	}
	best := -1
	for _, g := range groupings {
		if top := t.Trump.Order(g[0].Top()); top > best {
			best = top
		}
	}
	return best, true
}
