package events

import "time"

// Event is anything the backend announces on the bus: document lifecycle
// transitions and summary completions. Consumers outside this process (see
// cmd/eventwatch) receive the same envelope.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the concrete event used by every constructor in this package.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string { return e.Type }

func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

func (e BaseEvent) Timestamp() time.Time { return e.OccurredAt }
