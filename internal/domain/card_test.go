package domain

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		raw      string
		expected Card
	}{
		{"3S", NewCard(3, Spades)},
		{"10h", NewCard(10, Hearts)},
		{"QD", NewCard(Queen, Diamonds)},
		{"A♣", NewCard(Ace, Clubs)},
		{"SJ", SmallJokerCard},
		{"BJ", BigJokerCard},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCard(tt.raw)
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.raw, err)
			}
			if got != tt.expected {
				t.Errorf("ParseCard(%q) = %+v, want %+v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "1S", "15H", "XS", "S", "10X", "07S"} {
		if _, err := ParseCard(raw); !errors.Is(err, ErrInvalidCard) {
			t.Errorf("ParseCard(%q) error = %v, want ErrInvalidCard", raw, err)
		}
	}
}

func TestCardJSONAsMapKey(t *testing.T) {
	hand := Hand{NewCard(10, Hearts): 2, BigJokerCard: 1}

	data, err := json.Marshal(hand)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Hand
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[NewCard(10, Hearts)] != 2 || decoded[BigJokerCard] != 1 {
		t.Errorf("decoded hand = %v, from %s", decoded, data)
	}
}

func TestCardPoints(t *testing.T) {
	cards := MustParseCards("5S 10H KD KC 4S AS SJ")
	if got := CardPoints(cards); got != 35 {
		t.Errorf("CardPoints = %d, want 35", got)
	}
}
