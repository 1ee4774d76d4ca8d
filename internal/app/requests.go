package app

import (
	"shengji/internal/bidding"
	"shengji/internal/domain"
	"shengji/internal/scoring"
	"shengji/internal/trick"
)

type FindViablePlaysRequest struct {
	Trump               domain.Trump              `json:"trump"`
	TractorRequirements trick.TractorRequirements `json:"tractor_requirements"`
	Cards               []domain.Card             `json:"cards"`
	RulesToken          string                    `json:"rules_token,omitempty"`
}

type FoundViablePlay struct {
	Grouping    []trick.TrickUnit `json:"grouping"`
	Description string            `json:"description"`
}

type FindViablePlaysResponse struct {
	Results []FoundViablePlay `json:"results"`
}

type DecomposeTrickFormatRequest struct {
	TrickFormat     trick.TrickFormat     `json:"trick_format"`
	Hands           domain.Hands          `json:"hands"`
	PlayerID        domain.PlayerID       `json:"player_id"`
	TrickDrawPolicy trick.TrickDrawPolicy `json:"trick_draw_policy"`
	RulesToken      string                `json:"rules_token,omitempty"`
}

// DecomposedTrickFormat is one acceptable shape for following a trick, with
// the first set of cards from the player's hand that fills it.
type DecomposedTrickFormat struct {
	Format      []trick.UnitLike `json:"format"`
	Description string           `json:"description"`
	Playable    []domain.Card    `json:"playable"`
}

type DecomposeTrickFormatResponse struct {
	Results []DecomposedTrickFormat `json:"results"`
}

type CanPlayCardsRequest struct {
	Trick           trick.Trick           `json:"trick"`
	PlayerID        domain.PlayerID       `json:"player_id"`
	Hands           domain.Hands          `json:"hands"`
	Cards           []domain.Card         `json:"cards"`
	TrickDrawPolicy trick.TrickDrawPolicy `json:"trick_draw_policy"`
	RulesToken      string                `json:"rules_token,omitempty"`
}

type CanPlayCardsResponse struct {
	Playable bool `json:"playable"`
	// Reason is why the play was refused. It is logged, never returned.
	Reason error `json:"-"`
}

type FindValidBidsRequest struct {
	PlayerID            domain.PlayerID                `json:"player_id"`
	BidHistory          []bidding.Bid                  `json:"bid_history"`
	Hands               domain.Hands                   `json:"hands"`
	Players             []domain.Player                `json:"players"`
	Landlord            *domain.PlayerID               `json:"landlord,omitempty"`
	Epoch               int                            `json:"epoch"`
	BidPolicy           bidding.BidPolicy              `json:"bid_policy"`
	ReinforcementPolicy bidding.BidReinforcementPolicy `json:"reinforcement_policy"`
	JokerBidPolicy      bidding.JokerBidPolicy         `json:"joker_bid_policy"`
	NumDecks            int                            `json:"num_decks"`
	RulesToken          string                         `json:"rules_token,omitempty"`
}

type FindValidBidsResponse struct {
	Results []bidding.Bid `json:"results"`
}

type SortAndGroupCardsRequest struct {
	Trump domain.Trump  `json:"trump"`
	Cards []domain.Card `json:"cards"`
}

type SortAndGroupCardsResponse struct {
	Results []domain.SuitGroup `json:"results"`
}

type NextThresholdReachableRequest struct {
	Decks             []domain.Deck                 `json:"decks"`
	Params            scoring.GameScoringParameters `json:"params"`
	NonLandlordPoints int                           `json:"non_landlord_points"`
	ObservedPoints    int                           `json:"observed_points"`
	RulesToken        string                        `json:"rules_token,omitempty"`
}

type ExplainScoringRequest struct {
	Decks                   []domain.Deck                 `json:"decks"`
	Params                  scoring.GameScoringParameters `json:"params"`
	SmallerLandlordTeamSize bool                          `json:"smaller_landlord_team_size"`
	RulesToken              string                        `json:"rules_token,omitempty"`
}

type ExplainScoringResponse struct {
	Results     []scoring.Segment `json:"results"`
	TotalPoints int               `json:"total_points"`
	StepSize    int               `json:"step_size"`
}

type ComputeScoreRequest struct {
	Decks                   []domain.Deck                 `json:"decks"`
	Params                  scoring.GameScoringParameters `json:"params"`
	SmallerLandlordTeamSize bool                          `json:"smaller_landlord_team_size"`
	NonLandlordPoints       int                           `json:"non_landlord_points"`
	RulesToken              string                        `json:"rules_token,omitempty"`
}

type ComputeScoreResponse struct {
	ScoreResult scoring.GameScoreResult `json:"score_result"`
	// NextThreshold is nil when no higher point total changes the result.
	NextThreshold *int `json:"next_threshold"`
}

type IssueRulesTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

func (r *FindViablePlaysRequest) applyRules(g GameRules) {
	if g.TractorRequirements != nil {
		r.TractorRequirements = *g.TractorRequirements
	}
}

func (r *DecomposeTrickFormatRequest) applyRules(g GameRules) {
	if g.TractorRequirements != nil {
		r.TrickFormat.TractorRequirements = *g.TractorRequirements
	}
	if g.TrickDrawPolicy != nil {
		r.TrickDrawPolicy = *g.TrickDrawPolicy
	}
}

func (r *CanPlayCardsRequest) applyRules(g GameRules) {
	if g.TractorRequirements != nil {
		r.Trick.TractorRequirements = *g.TractorRequirements
		if r.Trick.Format != nil {
			format := *r.Trick.Format
			format.TractorRequirements = *g.TractorRequirements
			r.Trick.Format = &format
		}
	}
	if g.TrickDrawPolicy != nil {
		r.TrickDrawPolicy = *g.TrickDrawPolicy
	}
}

func (r *FindValidBidsRequest) applyRules(g GameRules) {
	if g.BidPolicy != nil {
		r.BidPolicy = *g.BidPolicy
	}
	if g.ReinforcementPolicy != nil {
		r.ReinforcementPolicy = *g.ReinforcementPolicy
	}
	if g.JokerBidPolicy != nil {
		r.JokerBidPolicy = *g.JokerBidPolicy
	}
}

func (r *NextThresholdReachableRequest) applyRules(g GameRules) {
	if g.ScoringParameters != nil {
		r.Params = *g.ScoringParameters
	}
}

func (r *ExplainScoringRequest) applyRules(g GameRules) {
	if g.ScoringParameters != nil {
		r.Params = *g.ScoringParameters
	}
}

func (r *ComputeScoreRequest) applyRules(g GameRules) {
	if g.ScoringParameters != nil {
		r.Params = *g.ScoringParameters
	}
}
