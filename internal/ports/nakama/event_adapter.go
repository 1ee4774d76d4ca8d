package nakama

import (
	"context"
	"time"

	"shengji/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaEventAdapter implements ports.EventSink using Nakama's event API.
type NakamaEventAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaEventAdapter creates a new event adapter.
func NewNakamaEventAdapter(nk runtime.NakamaModule) *NakamaEventAdapter {
	return &NakamaEventAdapter{nk: nk, now: time.Now}
}

// Emit hands the event to Nakama's event processor.
func (a *NakamaEventAdapter) Emit(ctx context.Context, name string, properties map[string]string) error {
	return a.nk.Event(ctx, toEvent(name, properties, a.now()))
}

var _ ports.EventSink = (*NakamaEventAdapter)(nil)
