package scoring

import (
	"errors"
	"fmt"

	"shengji/internal/domain"
)

var (
	ErrNoDecks         = errors.New("no decks in play")
	ErrInvalidStepSize = errors.New("step size must be positive")
	ErrStepNotMultiple = errors.New("step size must be a multiple of 5")
	ErrInvalidTurnover = errors.New("turnover must take at least one step")
	ErrInvalidDeadzone = errors.New("deadzone size cannot be negative")
)

// BonusLevelPolicy decides whether a short-handed landlord team earns an
// extra level when it defends.
type BonusLevelPolicy uint8

const (
	NoBonusLevel BonusLevelPolicy = iota
	BonusLevelForSmallerLandlordTeam
)

func (p BonusLevelPolicy) String() string {
	switch p {
	case NoBonusLevel:
		return "NoBonusLevel"
	case BonusLevelForSmallerLandlordTeam:
		return "BonusLevelForSmallerLandlordTeam"
	}
	return "unknown"
}

func (p BonusLevelPolicy) MarshalText() ([]byte, error) {
	if p > BonusLevelForSmallerLandlordTeam {
		return nil, fmt.Errorf("unknown bonus level policy %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *BonusLevelPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "NoBonusLevel":
		*p = NoBonusLevel
	case "BonusLevelForSmallerLandlordTeam":
		*p = BonusLevelForSmallerLandlordTeam
	default:
		return fmt.Errorf("unknown bonus level policy %q", string(text))
	}
	return nil
}

// GameScoringParameters convert captured points into level changes.
type GameScoringParameters struct {
	// StepSizePerDeck is the width of one scoring step per deck in play.
	StepSizePerDeck int `json:"step_size_per_deck" mapstructure:"step_size_per_deck"`
	// NumStepsToNonLandlordTurnover is how many steps the attackers need
	// before they take over as landlord.
	NumStepsToNonLandlordTurnover int `json:"num_steps_to_non_landlord_turnover" mapstructure:"num_steps_to_non_landlord_turnover"`
	// DeadzoneSize is the number of steps past turnover that earn no levels.
	DeadzoneSize int `json:"deadzone_size" mapstructure:"deadzone_size"`
	// StepAdjustments adds to the step size for a given number of decks.
	StepAdjustments  map[int]int      `json:"step_adjustments,omitempty" mapstructure:"step_adjustments"`
	BonusLevelPolicy BonusLevelPolicy `json:"bonus_level_policy" mapstructure:"bonus_level_policy"`
}

// DefaultParameters returns the standard scoring: 20 points per deck per
// step, two steps to turnover and a one-step deadzone.
func DefaultParameters() GameScoringParameters {
	return GameScoringParameters{
		StepSizePerDeck:               20,
		NumStepsToNonLandlordTurnover: 2,
		DeadzoneSize:                  1,
		BonusLevelPolicy:              BonusLevelForSmallerLandlordTeam,
	}
}

// StepSize is the number of points in one scoring step for decks.
func (p GameScoringParameters) StepSize(decks []domain.Deck) (int, error) {
	if len(decks) == 0 {
		return 0, ErrNoDecks
	}
	step := p.StepSizePerDeck*len(decks) + p.StepAdjustments[len(decks)]
	if step <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidStepSize, step)
	}
	if step%5 != 0 {
		return 0, fmt.Errorf("%w: got %d", ErrStepNotMultiple, step)
	}
	return step, nil
}

// Materialize resolves the parameters against the decks in play.
func (p GameScoringParameters) Materialize(decks []domain.Deck) (Materialized, error) {
	step, err := p.StepSize(decks)
	if err != nil {
		return Materialized{}, err
	}
	if p.NumStepsToNonLandlordTurnover <= 0 {
		return Materialized{}, ErrInvalidTurnover
	}
	if p.DeadzoneSize < 0 {
		return Materialized{}, ErrInvalidDeadzone
	}
	return Materialized{
		StepSize:     step,
		TotalPoints:  domain.DecksPoints(decks),
		Turnover:     step * p.NumStepsToNonLandlordTurnover,
		NumSteps:     p.NumStepsToNonLandlordTurnover,
		DeadzoneSize: p.DeadzoneSize,
		BonusPolicy:  p.BonusLevelPolicy,
	}, nil
}
