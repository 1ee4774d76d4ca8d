package nakama

import (
	"time"

	"shengji/internal/app"

	"github.com/heroiclabs/nakama-common/api"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func toEvent(name string, properties map[string]string, at time.Time) *api.Event {
	return &api.Event{
		Name:       name,
		Properties: properties,
		Timestamp:  timestamppb.New(at),
	}
}

// eventName qualifies an app event kind for the analytics stream.
func eventName(kind app.EventKind) string {
	return EventPrefix + string(kind)
}

// eventProperties copies the event properties and tags them with requestID.
func eventProperties(ev app.Event, requestID string) map[string]string {
	props := make(map[string]string, len(ev.Properties)+1)
	for k, v := range ev.Properties {
		props[k] = v
	}
	props["request_id"] = requestID
	return props
}
