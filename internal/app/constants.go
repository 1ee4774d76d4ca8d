package app

// MaxCardsPerRequest bounds the cards accepted in one request: three full
// decks. Larger inputs are rejected before any work is done; the viable-play
// search is bounded separately by trick.MaxViablePlays.
const MaxCardsPerRequest = 3 * 54

// DefaultExplainCacheSize is used when the service is built without an
// explicit cache option.
const DefaultExplainCacheSize = 128
