package trick

import (
	"testing"

	"shengji/internal/domain"

	"github.com/stretchr/testify/assert"
)

var (
	pair        = UnitLike{Count: 2, Length: 1}
	pairTractor = UnitLike{Count: 2, Length: 2}
)

func TestMultiDescription(t *testing.T) {
	tests := []struct {
		name   string
		shapes []UnitLike
		want   string
	}{
		{"empty", nil, ""},
		{"single", []UnitLike{single}, "a single"},
		{"pairs and single", []UnitLike{pair, single, pair}, "two pairs and a single"},
		{"tractors", []UnitLike{{Count: 2, Length: 3}, {Count: 2, Length: 3}}, "two tractors of 3 pairs"},
		{"mixed", []UnitLike{{Count: 3, Length: 2}, pair, single}, "a tractor of 2 triples, a pair and a single"},
		{"wide tuple", []UnitLike{{Count: 5, Length: 1}}, "a 5-tuple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MultiDescription(tt.shapes))
		})
	}
}

func TestUnitsAreLikeByShapeOnly(t *testing.T) {
	a := tractorUnit(2, domain.MustParseCards("3S 4S"))
	b := tractorUnit(2, domain.MustParseCards("9H 10H"))
	c := tractorUnit(3, domain.MustParseCards("9H 10H"))

	assert.True(t, Like(a, b))
	assert.False(t, Like(a, c))
	assert.Equal(t, pairTractor, a.Shape())
	assert.Equal(t, domain.MustParseCards("3S 3S 4S 4S"), a.Cards())
}
