package nakama

// RPC ids registered with Nakama. Each id is also the event suffix emitted
// after a successful call.
const (
	RpcFindViablePlays        = "find_viable_plays"
	RpcDecomposeTrickFormat   = "decompose_trick_format"
	RpcCanPlayCards           = "can_play_cards"
	RpcFindValidBids          = "find_valid_bids"
	RpcSortAndGroupCards      = "sort_and_group_cards"
	RpcNextThresholdReachable = "next_threshold_reachable"
	RpcExplainScoring         = "explain_scoring"
	RpcComputeDeckLen         = "compute_deck_len"
	RpcComputeScore           = "compute_score"
	RpcZstdDecompress         = "zstd_decompress"
	RpcIssueRulesToken        = "issue_rules_token"
)

// EventPrefix namespaces analytics events emitted by this module.
const EventPrefix = "shengji."

// gRPC status codes used in runtime errors.
const (
	codeInvalidArgument    = 3
	codeFailedPrecondition = 9
	codeInternal           = 13
)
