package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"shengji/internal/bidding"
	"shengji/internal/domain"
	"shengji/internal/scoring"
	"shengji/internal/trick"
)

var ErrTooManyCards = errors.New("too many cards in request")

// Service exposes the rules engine use-cases. It holds no game state and is
// safe for concurrent use.
type Service struct {
	signer         *RulesSigner
	defaultScoring scoring.GameScoringParameters
	explainCache   *expirable.LRU[string, ExplainScoringResponse]
}

type Option func(*Service)

// WithRulesSigner enables rules tokens on every request that accepts one.
func WithRulesSigner(signer *RulesSigner) Option {
	return func(s *Service) { s.signer = signer }
}

// WithDefaultScoring sets the parameters request decoding starts from.
func WithDefaultScoring(params scoring.GameScoringParameters) Option {
	return func(s *Service) { s.defaultScoring = params }
}

// WithExplainCache sizes the explain_scoring cache. A size <= 0 disables it.
func WithExplainCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		if size <= 0 {
			s.explainCache = nil
			return
		}
		s.explainCache = expirable.NewLRU[string, ExplainScoringResponse](size, nil, ttl)
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		defaultScoring: scoring.DefaultParameters(),
		explainCache:   expirable.NewLRU[string, ExplainScoringResponse](DefaultExplainCacheSize, nil, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultScoring returns a copy of the scoring parameters requests start from.
func (s *Service) DefaultScoring() scoring.GameScoringParameters {
	params := s.defaultScoring
	if s.defaultScoring.StepAdjustments != nil {
		params.StepAdjustments = make(map[int]int, len(s.defaultScoring.StepAdjustments))
		for k, v := range s.defaultScoring.StepAdjustments {
			params.StepAdjustments[k] = v
		}
	}
	return params
}

func (s *Service) rules(token string) (GameRules, error) {
	if token == "" {
		return GameRules{}, nil
	}
	return s.signer.Verify(token)
}

func checkCardCount(n int) error {
	if n > MaxCardsPerRequest {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCards, n, MaxCardsPerRequest)
	}
	return nil
}

// FindViablePlays lists the groupings of cards as trick units, most grouped
// first, capped at trick.MaxViablePlays.
func (s *Service) FindViablePlays(req FindViablePlaysRequest) (FindViablePlaysResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return FindViablePlaysResponse{}, err
	}
	req.applyRules(rules)
	if err := checkCardCount(len(req.Cards)); err != nil {
		return FindViablePlaysResponse{}, err
	}

	plays := trick.FindViablePlays(req.Trump, req.TractorRequirements, req.Cards)
	results := make([]FoundViablePlay, 0, len(plays))
	for _, grouping := range plays {
		results = append(results, FoundViablePlay{
			Grouping:    grouping,
			Description: trick.MultiDescription(trick.Shapes(grouping)),
		})
	}
	return FindViablePlaysResponse{Results: results}, nil
}

// DecomposeTrickFormat lists the shapes a follower may be held to, strictest
// first, each with the cards from the player's hand that would satisfy it.
func (s *Service) DecomposeTrickFormat(req DecomposeTrickFormatRequest) (DecomposeTrickFormatResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return DecomposeTrickFormatResponse{}, err
	}
	req.applyRules(rules)

	hand, err := req.Hands.Get(req.PlayerID)
	if err != nil {
		return DecomposeTrickFormatResponse{}, err
	}
	if err := checkCardCount(hand.Len()); err != nil {
		return DecomposeTrickFormatResponse{}, err
	}

	format := req.TrickFormat
	available := hand.Filter(func(c domain.Card) bool {
		return format.Trump.EffectiveSuit(c) == format.Suit
	})

	shapes := format.Decomposition(req.TrickDrawPolicy)
	results := make([]DecomposedTrickFormat, 0, len(shapes))
	for _, shape := range shapes {
		playable := []domain.Card{}
		if groupings := format.Playable(available, shape, req.TrickDrawPolicy); len(groupings) > 0 {
			playable = trick.UnitsCards(groupings[0])
		}
		results = append(results, DecomposedTrickFormat{
			Format:      shape,
			Description: trick.MultiDescription(shape),
			Playable:    playable,
		})
	}
	return DecomposeTrickFormatResponse{Results: results}, nil
}

// CanPlayCards judges a single play. Illegal plays are not errors: they come
// back with Playable false and the Reason set.
func (s *Service) CanPlayCards(req CanPlayCardsRequest) (CanPlayCardsResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return CanPlayCardsResponse{}, err
	}
	req.applyRules(rules)
	if err := checkCardCount(len(req.Cards)); err != nil {
		return CanPlayCardsResponse{}, err
	}

	reason := req.Trick.CanPlayCards(req.PlayerID, req.Hands, req.Cards, req.TrickDrawPolicy)
	return CanPlayCardsResponse{Playable: reason == nil, Reason: reason}, nil
}

// FindValidBids lists the bids the player may make now.
func (s *Service) FindValidBids(req FindValidBidsRequest) (FindValidBidsResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return FindValidBidsResponse{}, err
	}
	req.applyRules(rules)

	bids, err := bidding.ValidBids(bidding.Request{
		ID:            req.PlayerID,
		Bids:          req.BidHistory,
		Hands:         req.Hands,
		Players:       req.Players,
		Landlord:      req.Landlord,
		Epoch:         req.Epoch,
		Policy:        req.BidPolicy,
		Reinforcement: req.ReinforcementPolicy,
		JokerPolicy:   req.JokerBidPolicy,
		NumDecks:      req.NumDecks,
	})
	if err != nil {
		return FindValidBidsResponse{Results: []bidding.Bid{}}, err
	}
	return FindValidBidsResponse{Results: bids}, nil
}

func (s *Service) SortAndGroupCards(req SortAndGroupCardsRequest) (SortAndGroupCardsResponse, error) {
	if err := checkCardCount(len(req.Cards)); err != nil {
		return SortAndGroupCardsResponse{}, err
	}
	return SortAndGroupCardsResponse{Results: domain.SortAndGroup(req.Trump, req.Cards)}, nil
}

// NextThresholdReachable reports whether the attackers can still reach the
// next score boundary with the points left in play.
func (s *Service) NextThresholdReachable(req NextThresholdReachableRequest) (bool, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return false, err
	}
	req.applyRules(rules)
	return scoring.NextThresholdReachable(req.Params, req.Decks, req.NonLandlordPoints, req.ObservedPoints)
}

type explainKey struct {
	Decks   []domain.Deck                 `json:"decks"`
	Params  scoring.GameScoringParameters `json:"params"`
	Smaller bool                          `json:"smaller"`
}

// ExplainScoring tabulates the result at every step boundary. Results are
// cached by their resolved inputs.
func (s *Service) ExplainScoring(req ExplainScoringRequest) (ExplainScoringResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return ExplainScoringResponse{}, err
	}
	req.applyRules(rules)

	var key string
	if s.explainCache != nil {
		raw, err := json.Marshal(explainKey{Decks: req.Decks, Params: req.Params, Smaller: req.SmallerLandlordTeamSize})
		if err != nil {
			return ExplainScoringResponse{}, fmt.Errorf("failed to build cache key: %w", err)
		}
		key = string(raw)
		if cached, ok := s.explainCache.Get(key); ok {
			return cached, nil
		}
	}

	m, err := req.Params.Materialize(req.Decks)
	if err != nil {
		return ExplainScoringResponse{}, err
	}
	segments, err := scoring.ExplainLevelDeltas(req.Params, req.Decks, req.SmallerLandlordTeamSize)
	if err != nil {
		return ExplainScoringResponse{}, err
	}
	resp := ExplainScoringResponse{
		Results:     segments,
		TotalPoints: m.TotalPoints,
		StepSize:    m.StepSize,
	}
	if s.explainCache != nil {
		s.explainCache.Add(key, resp)
	}
	return resp, nil
}

func (s *Service) ComputeDeckLen(decks []domain.Deck) int {
	return domain.DecksLen(decks)
}

// ComputeScore scores the attackers' points and finds the next point total
// that would change the outcome.
func (s *Service) ComputeScore(req ComputeScoreRequest) (ComputeScoreResponse, error) {
	rules, err := s.rules(req.RulesToken)
	if err != nil {
		return ComputeScoreResponse{}, err
	}
	req.applyRules(rules)

	m, err := req.Params.Materialize(req.Decks)
	if err != nil {
		return ComputeScoreResponse{}, err
	}
	resp := ComputeScoreResponse{ScoreResult: m.Score(req.NonLandlordPoints, req.SmallerLandlordTeamSize)}
	if next, _, ok := m.NextRelevantScore(req.NonLandlordPoints, req.SmallerLandlordTeamSize); ok {
		resp.NextThreshold = &next
	}
	return resp, nil
}

// IssueRulesToken signs rules on behalf of subject.
func (s *Service) IssueRulesToken(subject string, rules GameRules) (IssueRulesTokenResponse, error) {
	token, expiresAt, err := s.signer.Issue(subject, rules)
	if err != nil {
		return IssueRulesTokenResponse{}, err
	}
	return IssueRulesTokenResponse{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}
