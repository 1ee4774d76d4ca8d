package domain

// Deck describes one physical deck in play. The zero value is a full
// 54-card deck.
type Deck struct {
	ExcludeSmallJoker bool   `json:"exclude_small_joker"`
	ExcludeBigJoker   bool   `json:"exclude_big_joker"`
	Min               Number `json:"min,omitempty"`
}

func (d Deck) min() Number {
	if d.Min.Valid() {
		return d.Min
	}
	return MinNumber
}

// Cards returns every card of the deck, ordered by suit then number.
func (d Deck) Cards() []Card {
	cards := make([]Card, 0, d.Len())
	for _, s := range Suits {
		for n := d.min(); n <= Ace; n++ {
			cards = append(cards, NewCard(n, s))
		}
	}
	if !d.ExcludeSmallJoker {
		cards = append(cards, SmallJokerCard)
	}
	if !d.ExcludeBigJoker {
		cards = append(cards, BigJokerCard)
	}
	return cards
}

// Len is the number of cards in the deck.
func (d Deck) Len() int {
	n := len(Suits) * int(Ace-d.min()+1)
	if !d.ExcludeSmallJoker {
		n++
	}
	if !d.ExcludeBigJoker {
		n++
	}
	return n
}

// Points is the total point value held by the deck.
func (d Deck) Points() int {
	perSuit := 0
	for _, n := range []Number{5, 10, King} {
		if n >= d.min() {
			perSuit += NewCard(n, Clubs).Points()
		}
	}
	return perSuit * len(Suits)
}

// DecksLen sums Len over decks.
func DecksLen(decks []Deck) int {
	total := 0
	for _, d := range decks {
		total += d.Len()
	}
	return total
}

// DecksPoints sums Points over decks.
func DecksPoints(decks []Deck) int {
	total := 0
	for _, d := range decks {
		total += d.Points()
	}
	return total
}
