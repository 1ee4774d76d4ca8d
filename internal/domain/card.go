package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Suit is one of the four natural suits. The declaration order is also the
// suit ranking used when bids of equal length are compared.
type Suit uint8

const (
	NoSuit Suit = iota
	Clubs
	Diamonds
	Spades
	Hearts
)

// Suits lists the natural suits in ascending order.
var Suits = [...]Suit{Clubs, Diamonds, Spades, Hearts}

var ErrInvalidCard = errors.New("invalid card")

var suitNames = map[Suit]string{
	Clubs:    "clubs",
	Diamonds: "diamonds",
	Spades:   "spades",
	Hearts:   "hearts",
}

var suitLetters = map[Suit]string{
	Clubs:    "C",
	Diamonds: "D",
	Spades:   "S",
	Hearts:   "H",
}

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Spades:   "♠",
	Hearts:   "♥",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "none"
}

func (s Suit) MarshalText() ([]byte, error) {
	if _, ok := suitNames[s]; !ok {
		return nil, fmt.Errorf("%w: suit %d", ErrInvalidCard, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	raw := strings.ToLower(string(text))
	for suit, name := range suitNames {
		if raw == name || raw == strings.ToLower(suitLetters[suit]) || raw == suitSymbols[suit] {
			*s = suit
			return nil
		}
	}
	return fmt.Errorf("%w: suit %q", ErrInvalidCard, string(text))
}

// Number is a card rank from 2 to 14, where 11..14 are J, Q, K and A.
type Number uint8

const (
	Jack  Number = 11
	Queen Number = 12
	King  Number = 13
	Ace   Number = 14

	MinNumber Number = 2
)

var faceNames = map[Number]string{Jack: "J", Queen: "Q", King: "K", Ace: "A"}

func (n Number) Valid() bool { return n >= MinNumber && n <= Ace }

func (n Number) String() string {
	if face, ok := faceNames[n]; ok {
		return face
	}
	return fmt.Sprintf("%d", uint8(n))
}

func (n Number) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: number %d", ErrInvalidCard, uint8(n))
	}
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalText(text []byte) error {
	parsed, err := parseNumber(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func parseNumber(raw string) (Number, error) {
	upper := strings.ToUpper(raw)
	for n, face := range faceNames {
		if upper == face {
			return n, nil
		}
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil || fmt.Sprintf("%d", v) != raw {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidCard, raw)
	}
	if v < int(MinNumber) || v > int(Ace) {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidCard, raw)
	}
	return Number(v), nil
}

// Joker distinguishes the two joker cards from suited cards.
type Joker uint8

const (
	NotJoker Joker = iota
	SmallJoker
	BigJoker
)

// Card is an immutable card value. Suited cards carry Suit and Number;
// jokers carry only Joker.
type Card struct {
	Suit   Suit
	Number Number
	Joker  Joker
}

var (
	SmallJokerCard = Card{Joker: SmallJoker}
	BigJokerCard   = Card{Joker: BigJoker}
)

// NewCard returns the suited card of the given number and suit.
func NewCard(n Number, s Suit) Card {
	return Card{Suit: s, Number: n}
}

func (c Card) IsJoker() bool { return c.Joker != NotJoker }

func (c Card) Valid() bool {
	switch c.Joker {
	case SmallJoker, BigJoker:
		return c.Suit == NoSuit && c.Number == 0
	case NotJoker:
		_, ok := suitNames[c.Suit]
		return ok && c.Number.Valid()
	}
	return false
}

// Points is the score value of the card when captured.
func (c Card) Points() int {
	if c.IsJoker() {
		return 0
	}
	switch c.Number {
	case 5:
		return 5
	case 10, King:
		return 10
	}
	return 0
}

func (c Card) String() string {
	switch c.Joker {
	case SmallJoker:
		return "🃟"
	case BigJoker:
		return "🃏"
	}
	return c.Number.String() + suitSymbols[c.Suit]
}

// MarshalText encodes the card as e.g. "10H", "QS", "SJ" or "BJ".
func (c Card) MarshalText() ([]byte, error) {
	switch c.Joker {
	case SmallJoker:
		return []byte("SJ"), nil
	case BigJoker:
		return []byte("BJ"), nil
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidCard, c)
	}
	return []byte(c.Number.String() + suitLetters[c.Suit]), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses the text form produced by MarshalText. Suit symbols are
// accepted in place of letters.
func ParseCard(raw string) (Card, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToUpper(raw) {
	case "SJ", "🃟":
		return SmallJokerCard, nil
	case "BJ", "🃏":
		return BigJokerCard, nil
	}
	for suit, letter := range suitLetters {
		for _, suffix := range []string{letter, strings.ToLower(letter), suitSymbols[suit]} {
			if !strings.HasSuffix(raw, suffix) || len(raw) == len(suffix) {
				continue
			}
			n, err := parseNumber(strings.TrimSuffix(raw, suffix))
			if err != nil {
				return Card{}, err
			}
			return NewCard(n, suit), nil
		}
	}
	return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, raw)
}

// MustParseCards parses a space separated card list and panics on error.
// Intended for tests and fixtures.
func MustParseCards(list string) []Card {
	fields := strings.Fields(list)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// CardPoints sums the point value of cards.
func CardPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
