package trick

import (
	"testing"
	"time"

	"shengji/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindViablePlaysTractorAndPairs(t *testing.T) {
	cards := domain.MustParseCards("3S 3S 4S 4S")
	plays := FindViablePlays(domain.Trump{}, TractorRequirements{MinLength: 2}, cards)

	require.Len(t, plays, 2)
	assert.Equal(t, []TrickUnit{tractorUnit(2, domain.MustParseCards("3S 4S"))}, plays[0])
	assert.Equal(t, "a tractor of 2 pairs", MultiDescription(Shapes(plays[0])))
	assert.Equal(t, "two pairs", MultiDescription(Shapes(plays[1])))
}

func TestFindViablePlaysEmpty(t *testing.T) {
	plays := FindViablePlays(domain.Trump{}, TractorRequirements{}, nil)
	assert.NotNil(t, plays)
	assert.Empty(t, plays)
}

func TestFindViablePlaysCoversInputExactly(t *testing.T) {
	trump := domain.Trump{Suit: domain.Hearts, Number: 2}
	inputs := []string{
		"3S 3S 4S 4S 5S 5S 6S 6S",
		"3S 3S 3S 4S 4S 4S 7D",
		"AH AH 2S 2S 2H 2H SJ BJ",
		"2C 2D 2S 2C KH KH QH",
		"9C",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			cards := domain.MustParseCards(in)
			plays := FindViablePlays(trump, TractorRequirements{}, cards)
			require.NotEmpty(t, plays)
			for _, g := range plays {
				assert.ElementsMatch(t, cards, UnitsCards(g), "grouping %s", MultiDescription(Shapes(g)))
			}
		})
	}
}

func TestFindViablePlaysLongRunOvergenerates(t *testing.T) {
	cards := domain.MustParseCards("3S 3S 4S 4S 5S 5S 6S 6S")
	plays := FindViablePlays(domain.Trump{}, TractorRequirements{}, cards)

	descriptions := make([]string, len(plays))
	for i, p := range plays {
		descriptions[i] = MultiDescription(Shapes(p))
	}
	assert.Contains(t, descriptions, "a tractor of 4 pairs")
	assert.Contains(t, descriptions, "two tractors of 2 pairs")
	assert.Contains(t, descriptions, "four pairs")
	assert.Equal(t, "a tractor of 4 pairs", descriptions[0])
}

func TestFindViablePlaysTrumpRunThroughNumbers(t *testing.T) {
	trump := domain.Trump{Suit: domain.Hearts, Number: 2}
	cards := domain.MustParseCards("AH AH 2S 2S 2H 2H")
	plays := FindViablePlays(trump, TractorRequirements{}, cards)

	require.NotEmpty(t, plays)
	assert.Equal(t, []TrickUnit{tractorUnit(2, domain.MustParseCards("AH 2S 2H"))}, plays[0])
}

func TestFindViablePlaysMaxCount(t *testing.T) {
	cards := domain.MustParseCards("3S 3S 3S 4S 4S 4S")

	unlimited := FindViablePlays(domain.Trump{}, TractorRequirements{}, cards)
	assert.Equal(t, []TrickUnit{tractorUnit(3, domain.MustParseCards("3S 4S"))}, unlimited[0])

	pairsOnly := FindViablePlays(domain.Trump{}, TractorRequirements{MaxCount: 2}, cards)
	for _, g := range pairsOnly {
		for _, u := range g {
			if u.Kind == Tractor {
				assert.Equal(t, 2, u.Count)
			}
		}
	}
}

func TestFindViablePlaysAcrossSuits(t *testing.T) {
	plays := FindViablePlays(domain.Trump{}, TractorRequirements{}, domain.MustParseCards("5H 3S 3S"))
	require.Len(t, plays, 1)
	assert.Equal(t, []TrickUnit{
		repeatedUnit(domain.NewCard(3, domain.Spades), 2),
		repeatedUnit(domain.NewCard(5, domain.Hearts), 1),
	}, plays[0])
}

func TestFindViablePlaysBoundedOnLargeHands(t *testing.T) {
	var cards []domain.Card
	for _, n := range []domain.Number{3, 4, 5, 6, 7, 8} {
		for _, s := range domain.Suits {
			c := domain.NewCard(n, s)
			cards = append(cards, c, c)
		}
	}
	twoDecks := append(domain.Deck{}.Cards(), domain.Deck{}.Cards()...)

	for name, hand := range map[string][]domain.Card{"pair runs": cards, "two decks": twoDecks} {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			plays := FindViablePlays(domain.Trump{Suit: domain.Hearts, Number: 2}, TractorRequirements{}, hand)
			assert.Less(t, time.Since(start), 5*time.Second)

			require.Len(t, plays, MaxViablePlays)
			for i, g := range plays[:10] {
				assert.ElementsMatch(t, hand, UnitsCards(g), "grouping %d", i)
			}
			for i := 1; i < len(plays); i++ {
				assert.LessOrEqual(t, len(plays[i-1]), len(plays[i]), "grouping %d out of order", i)
			}
		})
	}
}

func TestFindViablePlaysKeepsBestAcrossSuits(t *testing.T) {
	cards := domain.MustParseCards("3S 3S 4S 4S 5S 5S 3D 3D 4D 4D 5D 5D")
	plays := findViablePlays(domain.Trump{}, TractorRequirements{}, cards, 3)

	require.Len(t, plays, 3)
	assert.Equal(t, "two tractors of 3 pairs", MultiDescription(Shapes(plays[0])))
	assert.Len(t, plays[1], 3)
	assert.Len(t, plays[2], 3)
}

func TestFindViablePlaysPrefersWholeTuples(t *testing.T) {
	for _, in := range []string{"3S 3S 3S 4S 4S", "3S 3S 4S 4S 4S"} {
		plays := FindViablePlays(domain.Trump{}, TractorRequirements{}, domain.MustParseCards(in))
		require.NotEmpty(t, plays, in)
		assert.Equal(t, "a triple and a pair", MultiDescription(canonicalShapes(Shapes(plays[0]))), in)
	}
}
