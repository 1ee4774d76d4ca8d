package trick

import (
	"testing"

	"shengji/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tractorFormat(t *testing.T) TrickFormat {
	t.Helper()
	format, units, err := FormatFromCards(domain.Trump{Suit: domain.Hearts, Number: 2}, TractorRequirements{}, domain.MustParseCards("3S 3S 4S 4S"))
	require.NoError(t, err)
	require.Len(t, units, 1)
	return format
}

func TestFormatFromCards(t *testing.T) {
	format := tractorFormat(t)
	assert.Equal(t, domain.EffectiveSpades, format.Suit)
	assert.Equal(t, []UnitLike{pairTractor}, format.Units)
	assert.Equal(t, 4, format.Size())

	_, _, err := FormatFromCards(domain.Trump{}, TractorRequirements{}, domain.MustParseCards("3S 3H"))
	assert.ErrorIs(t, err, ErrMixedSuits)

	_, _, err = FormatFromCards(domain.Trump{}, TractorRequirements{}, nil)
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestDecompositionOfPairTractor(t *testing.T) {
	got := tractorFormat(t).Decomposition(NoProtections)
	want := [][]UnitLike{
		{pairTractor},
		{pair, pair},
		{pair, single, single},
		{single, single, single, single},
	}
	assert.Equal(t, want, got)
}

func TestDecompositionNoFormatBasedDraw(t *testing.T) {
	got := tractorFormat(t).Decomposition(NoFormatBasedDraw)
	assert.Equal(t, [][]UnitLike{{single, single, single, single}}, got)
}

func TestDecompositionOfTripleTractor(t *testing.T) {
	format := TrickFormat{Suit: domain.EffectiveSpades, Units: []UnitLike{{Count: 3, Length: 3}}}
	got := format.Decomposition(LongerTuplesProtected)

	require.NotEmpty(t, got)
	assert.Equal(t, []UnitLike{{Count: 3, Length: 3}}, got[0])
	assert.Equal(t, singles(9), got[len(got)-1])

	seen := map[string]bool{}
	for i, shape := range got {
		size := 0
		for _, u := range shape {
			size += u.Size()
		}
		assert.Equal(t, 9, size, "shape %v", shape)
		key := shapesKey(shape)
		assert.False(t, seen[key], "duplicate shape %v", shape)
		seen[key] = true
		if i > 0 {
			assert.False(t, stricter(shape, got[i-1]), "%v sorted after weaker %v", shape, got[i-1])
		}
	}
	assert.True(t, seen[shapesKey([]UnitLike{{Count: 2, Length: 3}, single, single, single})])
	assert.True(t, seen[shapesKey([]UnitLike{{Count: 3, Length: 2}, {Count: 3, Length: 1}})])
}

func TestFormatFromCardsKeepsHeldTuples(t *testing.T) {
	for _, lead := range []string{"3S 3S 3S 4S 4S", "3S 3S 4S 4S 4S"} {
		t.Run(lead, func(t *testing.T) {
			format, units, err := FormatFromCards(domain.Trump{}, TractorRequirements{}, domain.MustParseCards(lead))
			require.NoError(t, err)
			assert.Equal(t, []UnitLike{{Count: 3, Length: 1}, pair}, format.Units)
			for _, u := range units {
				assert.Equal(t, Repeated, u.Kind)
			}
		})
	}
}

func TestFollowerHeldToTripleAndPair(t *testing.T) {
	format, _, err := FormatFromCards(domain.Trump{}, TractorRequirements{}, domain.MustParseCards("3S 3S 3S 4S 4S"))
	require.NoError(t, err)

	hand := domain.NewHand(domain.MustParseCards("5S 5S 6S 6S 7S 7S 7S 9S 9S"))
	assert.NoError(t, format.CheckFollow(hand, domain.MustParseCards("7S 7S 7S 9S 9S"), NoProtections))
	assert.ErrorIs(t, format.CheckFollow(hand, domain.MustParseCards("5S 5S 6S 6S 9S"), NoProtections), ErrWrongShape)
}
