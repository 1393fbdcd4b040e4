package events

import (
	"time"
)

// Event is one record of a plan run's trail. Payloads are the typed structs
// in plan_events.go; consumers switch on Type before asserting the payload.
type Event interface {
	Type() string
	StreamID() string
	Payload() any
	Timestamp() time.Time
	Version() int
}

// Store is an append-only event log keyed by stream. Plan runs use the run ID
// as the stream ID so one run's trail can be read back in order.
type Store interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
}

// record is the stored form of an event. The store stamps the version when
// the event is appended; until then it is 1.
type record struct {
	eventType string
	stream    string
	payload   any
	at        time.Time
	version   int
}

func (r record) Type() string {
	return r.eventType
}

func (r record) StreamID() string {
	return r.stream
}

func (r record) Payload() any {
	return r.payload
}

func (r record) Timestamp() time.Time {
	return r.at
}

func (r record) Version() int {
	return r.version
}

// NewEvent wraps a payload as an event on the given stream, timestamped now.
func NewEvent(eventType, streamID string, payload any) Event {
	return record{
		eventType: eventType,
		stream:    streamID,
		payload:   payload,
		at:        time.Now(),
		version:   1,
	}
}
