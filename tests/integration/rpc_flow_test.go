package integration

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viablePlaysResponse struct {
	Results []struct {
		Description string `json:"description"`
	} `json:"results"`
}

type computeScoreResponse struct {
	ScoreResult struct {
		LandlordWon   bool `json:"landlord_won"`
		LandlordDelta int  `json:"landlord_delta"`
	} `json:"score_result"`
	NextThreshold *int `json:"next_threshold"`
}

func TestViablePlaysOverHTTP(t *testing.T) {
	client := NewRPCClient(t)

	body, status := client.Call(t, "find_viable_plays", `{"trump":{"suit":"hearts","number":"2"},"cards":["3S","3S","4S","4S"]}`)
	require.Equal(t, http.StatusOK, status, body)

	var resp viablePlaysResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a tractor of 2 pairs", resp.Results[0].Description)
}

func TestScoringOverHTTP(t *testing.T) {
	client := NewRPCClient(t)

	body, status := client.Call(t, "compute_deck_len", `[{},{}]`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "108", body)

	body, status = client.Call(t, "compute_score", `{"decks":[{},{}],"non_landlord_points":0}`)
	require.Equal(t, http.StatusOK, status, body)
	var score computeScoreResponse
	require.NoError(t, json.Unmarshal([]byte(body), &score))
	assert.True(t, score.ScoreResult.LandlordWon)
	require.NotNil(t, score.NextThreshold)
	assert.Equal(t, 40, *score.NextThreshold)

	_, status = client.Call(t, "compute_score", `{"decks":[]}`)
	assert.NotEqual(t, http.StatusOK, status)
}

func TestFindValidBidsOverHTTPNeverFails(t *testing.T) {
	client := NewRPCClient(t)

	body, status := client.Call(t, "find_valid_bids", `{"player_id":"nobody","hands":{},"players":[],"num_decks":2}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.JSONEq(t, `{"results":[]}`, body)
}
