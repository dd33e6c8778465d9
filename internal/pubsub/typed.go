package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks a message that can never be processed. Subscribers acknowledge
// and drop such messages instead of asking for redelivery.
var ErrMalformed = errors.New("malformed message")

// Event[T] binds a topic name to its payload type so publishers and subscribers
// agree on the encoding.
type Event[T any] struct {
	topicName string
}

// NewEvent declares a typed event on topic name.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Publish sends a typed event. The compiler ensures payload matches T.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], cin string, metadata map[string]string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:    event.Name(),
		CIN:      cin,
		Payload:  data,
		Metadata: metadata,
	})
}

// Decode unmarshals msg into the event's payload type.
func Decode[T any](event Event[T], msg Message) (T, error) {
	var out T
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w: %w", event.Name(), ErrMalformed, err)
	}
	return out, nil
}
