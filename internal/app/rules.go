package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"shengji/internal/bidding"
	"shengji/internal/scoring"
	"shengji/internal/trick"
)

var (
	ErrRulesTokensDisabled = errors.New("rules tokens are not configured")
	ErrInvalidRulesToken   = errors.New("invalid rules token")
)

const rulesClaim = "rules"

// GameRules are a table's house rules. Unset fields leave the request's own
// values in place.
type GameRules struct {
	TractorRequirements *trick.TractorRequirements      `json:"tractor_requirements,omitempty"`
	TrickDrawPolicy     *trick.TrickDrawPolicy          `json:"trick_draw_policy,omitempty"`
	BidPolicy           *bidding.BidPolicy              `json:"bid_policy,omitempty"`
	ReinforcementPolicy *bidding.BidReinforcementPolicy `json:"reinforcement_policy,omitempty"`
	JokerBidPolicy      *bidding.JokerBidPolicy         `json:"joker_bid_policy,omitempty"`
	ScoringParameters   *scoring.GameScoringParameters  `json:"scoring_parameters,omitempty"`
}

// RulesSigner issues and verifies HS256 tokens carrying GameRules, so a
// table's rules can be fixed once and replayed on every request.
type RulesSigner struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewRulesSigner(secret, issuer string, ttl time.Duration) *RulesSigner {
	return &RulesSigner{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs rules for subject and returns the token and its expiry.
func (s *RulesSigner) Issue(subject string, rules GameRules) (string, time.Time, error) {
	if s == nil {
		return "", time.Time{}, ErrRulesTokensDisabled
	}
	if s.secret == "" || s.issuer == "" {
		return "", time.Time{}, fmt.Errorf("rules signer config is incomplete")
	}
	if s.ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("rules token ttl must be positive")
	}

	encoded, err := json.Marshal(rules)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode rules: %w", err)
	}
	var rulesMap map[string]interface{}
	if err := json.Unmarshal(encoded, &rulesMap); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode rules: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"iss":      s.issuer,
		"sub":      subject,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"jti":      uuid.NewString(),
		rulesClaim: rulesMap,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the token signature, issuer and expiry and returns its rules.
func (s *RulesSigner) Verify(tokenString string) (GameRules, error) {
	if s == nil {
		return GameRules{}, ErrRulesTokensDisabled
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return GameRules{}, fmt.Errorf("%w: %v", ErrInvalidRulesToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return GameRules{}, ErrInvalidRulesToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return GameRules{}, fmt.Errorf("%w: unexpected issuer", ErrInvalidRulesToken)
	}

	raw, ok := claims[rulesClaim]
	if !ok {
		return GameRules{}, fmt.Errorf("%w: missing rules claim", ErrInvalidRulesToken)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return GameRules{}, fmt.Errorf("%w: %v", ErrInvalidRulesToken, err)
	}
	var rules GameRules
	if err := json.Unmarshal(encoded, &rules); err != nil {
		return GameRules{}, fmt.Errorf("%w: %v", ErrInvalidRulesToken, err)
	}
	return rules, nil
}
