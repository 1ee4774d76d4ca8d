package ports

import "context"

// EventSink receives analytics events describing completed requests.
type EventSink interface {
	// Emit records one event. name is fully qualified, e.g. "shengji.compute_score".
	// Returns an error if the event could not be delivered; callers treat this as
	// non-fatal.
	Emit(ctx context.Context, name string, properties map[string]string) error
}
