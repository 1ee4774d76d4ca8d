package domain

import "testing"

func TestDeckLen(t *testing.T) {
	tests := []struct {
		name     string
		decks    []Deck
		expected int
	}{
		{"two standard decks", []Deck{{}, {}}, 108},
		{"no jokers", []Deck{{ExcludeSmallJoker: true, ExcludeBigJoker: true}}, 52},
		{"short deck from 6", []Deck{{Min: 6}}, 38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecksLen(tt.decks); got != tt.expected {
				t.Errorf("DecksLen = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDeckCardsMatchesLen(t *testing.T) {
	d := Deck{Min: 3, ExcludeBigJoker: true}
	if got := len(d.Cards()); got != d.Len() {
		t.Fatalf("len(Cards) = %d, Len = %d", got, d.Len())
	}
}

func TestDeckPoints(t *testing.T) {
	if got := (Deck{}).Points(); got != 100 {
		t.Errorf("standard deck points = %d, want 100", got)
	}
	if got := (Deck{Min: 6}).Points(); got != 80 {
		t.Errorf("deck from 6 points = %d, want 80", got)
	}
	if got := DecksPoints([]Deck{{}, {}, {}}); got != 300 {
		t.Errorf("three decks points = %d, want 300", got)
	}
	if got := CardPoints(Deck{}.Cards()); got != 100 {
		t.Errorf("card points of a deck = %d, want 100", got)
	}
}
