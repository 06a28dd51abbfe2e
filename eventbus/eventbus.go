package eventbus

import (
	"context"
	"encoding/json"
)

// Topic manages a base topic name and its DLQ companion.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ returns the dead-letter topic name (e.g. my_topic.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// Event is the payload envelope published to Kafka.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent wraps an arbitrary payload into an envelope.
func NewEvent(id string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: id, Payload: raw}, nil
}

// Publisher is the outbound side of the bus. The pipeline only publishes;
// consuming is the export collaborator's concern.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}
