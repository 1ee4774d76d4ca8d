package bidding

import (
	"testing"

	"shengji/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var players = []domain.Player{
	{ID: "p1", Level: 2},
	{ID: "p2", Level: 5},
}

func card(raw string) domain.Card { return domain.MustParseCards(raw)[0] }

func bid(id domain.PlayerID, raw string, count, epoch int) Bid {
	return Bid{ID: id, Card: card(raw), Count: count, Epoch: epoch}
}

func request(hand string, bids ...Bid) Request {
	return Request{
		ID:       "p1",
		Bids:     bids,
		Hands:    domain.Hands{"p1": domain.NewHand(domain.MustParseCards(hand)), "p2": domain.Hand{}},
		Players:  players,
		Epoch:    0,
		NumDecks: 2,
	}
}

func TestValidBidsOpening(t *testing.T) {
	got, err := ValidBids(request("2H 2H 2S SJ SJ BJ 5C"))
	require.NoError(t, err)

	assert.Equal(t, []Bid{
		bid("p1", "2S", 1, 0),
		bid("p1", "2H", 1, 0),
		bid("p1", "2H", 2, 0),
		bid("p1", "SJ", 2, 0),
	}, got)
}

func TestValidBidsOverOpponent(t *testing.T) {
	existing := bid("p2", "2D", 1, 0)

	tests := []struct {
		name   string
		policy BidPolicy
		want   []Bid
	}{
		{"higher suit", JokerOrHigherSuit, []Bid{bid("p1", "2S", 1, 0), bid("p1", "2H", 1, 0), bid("p1", "2H", 2, 0), bid("p1", "SJ", 2, 0)}},
		{"greater length", GreaterLength, []Bid{bid("p1", "2H", 2, 0), bid("p1", "SJ", 2, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("2H 2H 2S SJ SJ", existing)
			req.Policy = tt.policy
			got, err := ValidBids(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidBidsStrictlyDominate(t *testing.T) {
	for _, policy := range []BidPolicy{JokerOrHigherSuit, JokerOrGreaterLength, GreaterLength} {
		t.Run(policy.String(), func(t *testing.T) {
			winning := bid("p2", "2S", 2, 0)
			req := request("2C 2C 2H 2H 2H SJ SJ BJ BJ", winning)
			req.Policy = policy
			got, err := ValidBids(req)
			require.NoError(t, err)
			for _, b := range got {
				assert.True(t, Dominates(policy, b, winning), "%+v does not beat %+v", b, winning)
			}
		})
	}
}

func TestValidBidsIgnoresStaleEpoch(t *testing.T) {
	req := request("2H", bid("p2", "BJ", 2, 0))
	req.Epoch = 1
	got, err := ValidBids(req)
	require.NoError(t, err)
	assert.Equal(t, []Bid{bid("p1", "2H", 1, 1)}, got)
}

func TestValidBidsWhileWinning(t *testing.T) {
	own := bid("p1", "2H", 1, 0)

	tests := []struct {
		name   string
		policy BidReinforcementPolicy
		want   []Bid
	}{
		{"reinforce only", ReinforceWhileWinning, []Bid{bid("p1", "2H", 2, 0)}},
		{"overturn", OverturnOrReinforceWhileWinning, []Bid{bid("p1", "2H", 2, 0), bid("p1", "SJ", 2, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("2H 2H 2S SJ SJ", own)
			req.Reinforcement = tt.policy
			got, err := ValidBids(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidBidsReinforceWhileEquivalent(t *testing.T) {
	history := []Bid{bid("p1", "2S", 1, 0), bid("p2", "2H", 2, 0)}

	req := request("2S 2S", history...)
	req.Policy = GreaterLength
	req.Reinforcement = ReinforceWhileEquivalent
	got, err := ValidBids(req)
	require.NoError(t, err)
	assert.Equal(t, []Bid{bid("p1", "2S", 2, 0)}, got)

	req.Reinforcement = ReinforceWhileWinning
	got, err = ValidBids(req)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidBidsJokerPolicies(t *testing.T) {
	tests := []struct {
		policy JokerBidPolicy
		want   []Bid
	}{
		{BothTwoOrMore, []Bid{bid("p1", "SJ", 2, 0), bid("p1", "SJ", 3, 0), bid("p1", "BJ", 2, 0), bid("p1", "BJ", 3, 0)}},
		{BothNumDecks, []Bid{bid("p1", "SJ", 3, 0), bid("p1", "BJ", 3, 0)}},
		{LJNumDecksHJNumDecksLessOne, []Bid{bid("p1", "SJ", 3, 0), bid("p1", "BJ", 2, 0), bid("p1", "BJ", 3, 0)}},
		{Disabled, []Bid{}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			req := request("SJ SJ SJ BJ BJ BJ")
			req.JokerPolicy = tt.policy
			req.NumDecks = 3
			got, err := ValidBids(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidBidsUsesLandlordLevel(t *testing.T) {
	landlord := domain.PlayerID("p2")
	req := request("2H 5C")
	req.Landlord = &landlord
	got, err := ValidBids(req)
	require.NoError(t, err)
	assert.Equal(t, []Bid{bid("p1", "5C", 1, 0)}, got)
}

func TestValidBidsErrors(t *testing.T) {
	req := request("2H")
	req.ID = "ghost"
	_, err := ValidBids(req)
	assert.ErrorIs(t, err, domain.ErrUnknownPlayer)

	ghost := domain.PlayerID("ghost")
	req = request("2H")
	req.Landlord = &ghost
	_, err = ValidBids(req)
	assert.ErrorIs(t, err, domain.ErrUnknownPlayer)

	req = request("2H")
	req.NumDecks = 0
	_, err = ValidBids(req)
	assert.ErrorIs(t, err, ErrInvalidNumDecks)
}

func TestWinningUsesLastBidOfEpoch(t *testing.T) {
	bids := []Bid{bid("p1", "2H", 1, 0), bid("p2", "5S", 2, 0), bid("p1", "2C", 1, 1)}

	w, ok := Winning(bids, 0)
	require.True(t, ok)
	assert.Equal(t, domain.PlayerID("p2"), w.ID)

	_, ok = Winning(bids, 2)
	assert.False(t, ok)
}

func TestPolicyMarshalUnknownNamesValue(t *testing.T) {
	_, err := BidPolicy(42).MarshalText()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown policy 42")

	_, err = JokerBidPolicy(9).MarshalText()
	assert.EqualError(t, err, "unknown policy 9")

	text, err := GreaterLength.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "GreaterLength", string(text))
}
