package scoring

import "shengji/internal/domain"

// GameScoreResult is the outcome of a hand for one point total.
type GameScoreResult struct {
	LandlordWon      bool `json:"landlord_won"`
	LandlordDelta    int  `json:"landlord_delta"`
	NonLandlordDelta int  `json:"non_landlord_delta"`
	LandlordBonus    bool `json:"landlord_bonus"`
}

// Materialized holds parameters resolved for a concrete set of decks.
type Materialized struct {
	StepSize     int
	TotalPoints  int
	Turnover     int
	NumSteps     int
	DeadzoneSize int
	BonusPolicy  BonusLevelPolicy
}

func (m Materialized) clamp(points int) int {
	return max(0, min(points, m.TotalPoints))
}

// Score maps attacker points to a result. Points outside [0, total] are
// clamped. The result only depends on which step the points fall in.
func (m Materialized) Score(nonLandlordPoints int, smallerLandlordTeam bool) GameScoreResult {
	p := m.clamp(nonLandlordPoints)
	if p < m.Turnover {
		res := GameScoreResult{LandlordWon: true, LandlordDelta: m.NumSteps - p/m.StepSize}
		if smallerLandlordTeam && m.BonusPolicy == BonusLevelForSmallerLandlordTeam {
			res.LandlordDelta++
			res.LandlordBonus = true
		}
		return res
	}
	steps := (p - m.Turnover) / m.StepSize
	return GameScoreResult{NonLandlordDelta: max(0, steps+1-m.DeadzoneSize)}
}

// Thresholds lists every step boundary from 0 up to the total points.
func (m Materialized) Thresholds() []int {
	var out []int
	for t := 0; t <= m.TotalPoints; t += m.StepSize {
		out = append(out, t)
	}
	return out
}

// NextRelevantScore finds the lowest threshold above points where the result
// differs from the result at points.
func (m Materialized) NextRelevantScore(points int, smallerLandlordTeam bool) (int, GameScoreResult, bool) {
	current := m.Score(points, smallerLandlordTeam)
	p := m.clamp(points)
	for _, t := range m.Thresholds() {
		if t <= p {
			continue
		}
		if res := m.Score(t, smallerLandlordTeam); res != current {
			return t, res, true
		}
	}
	return 0, GameScoreResult{}, false
}

// ComputeLevelDeltas scores a single point total.
func ComputeLevelDeltas(params GameScoringParameters, decks []domain.Deck, nonLandlordPoints int, smallerLandlordTeam bool) (GameScoreResult, error) {
	m, err := params.Materialize(decks)
	if err != nil {
		return GameScoreResult{}, err
	}
	return m.Score(nonLandlordPoints, smallerLandlordTeam), nil
}

// NextThresholdReachable reports whether the attackers, holding
// nonLandlordPoints with observedPoints of the deck already seen, can still
// reach the next threshold that changes the result.
func NextThresholdReachable(params GameScoringParameters, decks []domain.Deck, nonLandlordPoints, observedPoints int) (bool, error) {
	m, err := params.Materialize(decks)
	if err != nil {
		return false, err
	}
	next, _, ok := m.NextRelevantScore(nonLandlordPoints, false)
	if !ok {
		return false, nil
	}
	remaining := m.TotalPoints - m.clamp(observedPoints)
	return nonLandlordPoints+remaining >= next, nil
}

// Segment is the result at one point threshold.
type Segment struct {
	PointThreshold int             `json:"point_threshold"`
	ScoreResult    GameScoreResult `json:"score_result"`
}

// ExplainLevelDeltas scores every threshold from 0 to the total points.
func ExplainLevelDeltas(params GameScoringParameters, decks []domain.Deck, smallerLandlordTeam bool) ([]Segment, error) {
	m, err := params.Materialize(decks)
	if err != nil {
		return nil, err
	}
	thresholds := m.Thresholds()
	segments := make([]Segment, len(thresholds))
	for i, t := range thresholds {
		segments[i] = Segment{PointThreshold: t, ScoreResult: m.Score(t, smallerLandlordTeam)}
	}
	return segments, nil
}
