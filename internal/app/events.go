package app

import "strconv"

// EventKind names the analytics event emitted after a successful request.
type EventKind string

const (
	EventViablePlaysFound      EventKind = "find_viable_plays"
	EventTrickFormatDecomposed EventKind = "decompose_trick_format"
	EventPlayChecked           EventKind = "can_play_cards"
	EventValidBidsFound        EventKind = "find_valid_bids"
	EventCardsGrouped          EventKind = "sort_and_group_cards"
	EventThresholdChecked      EventKind = "next_threshold_reachable"
	EventScoringExplained      EventKind = "explain_scoring"
	EventDeckLenComputed       EventKind = "compute_deck_len"
	EventScoreComputed         EventKind = "compute_score"
	EventPayloadDecompressed   EventKind = "zstd_decompress"
	EventRulesTokenIssued      EventKind = "issue_rules_token"
)

// Event is a flat summary of one request outcome.
type Event struct {
	Kind       EventKind
	Properties map[string]string
}

func newEvent(kind EventKind, props ...string) Event {
	e := Event{Kind: kind, Properties: make(map[string]string, len(props)/2)}
	for i := 0; i+1 < len(props); i += 2 {
		e.Properties[props[i]] = props[i+1]
	}
	return e
}

func (r FindViablePlaysResponse) Event() Event {
	return newEvent(EventViablePlaysFound, "results", strconv.Itoa(len(r.Results)))
}

func (r DecomposeTrickFormatResponse) Event() Event {
	return newEvent(EventTrickFormatDecomposed, "results", strconv.Itoa(len(r.Results)))
}

func (r CanPlayCardsResponse) Event() Event {
	return newEvent(EventPlayChecked, "playable", strconv.FormatBool(r.Playable))
}

func (r FindValidBidsResponse) Event() Event {
	return newEvent(EventValidBidsFound, "results", strconv.Itoa(len(r.Results)))
}

func (r SortAndGroupCardsResponse) Event() Event {
	return newEvent(EventCardsGrouped, "results", strconv.Itoa(len(r.Results)))
}

func (r ExplainScoringResponse) Event() Event {
	return newEvent(EventScoringExplained,
		"results", strconv.Itoa(len(r.Results)),
		"total_points", strconv.Itoa(r.TotalPoints),
	)
}

func (r ComputeScoreResponse) Event() Event {
	return newEvent(EventScoreComputed,
		"landlord_won", strconv.FormatBool(r.ScoreResult.LandlordWon),
		"has_next_threshold", strconv.FormatBool(r.NextThreshold != nil),
	)
}

func (r IssueRulesTokenResponse) Event() Event {
	return newEvent(EventRulesTokenIssued, "expires_at", strconv.FormatInt(r.ExpiresAt, 10))
}

// ReachableEvent summarizes a next_threshold_reachable answer.
func ReachableEvent(reachable bool) Event {
	return newEvent(EventThresholdChecked, "reachable", strconv.FormatBool(reachable))
}

// DeckLenEvent summarizes a compute_deck_len answer.
func DeckLenEvent(n int) Event {
	return newEvent(EventDeckLenComputed, "cards", strconv.Itoa(n))
}

// DecompressedEvent summarizes a zstd_decompress answer.
func DecompressedEvent(compressed, text int) Event {
	return newEvent(EventPayloadDecompressed,
		"compressed_bytes", strconv.Itoa(compressed),
		"text_bytes", strconv.Itoa(text),
	)
}
