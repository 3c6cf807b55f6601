package ports

import "context"

// TopicPaymentCreated carries the persisted payment after a successful create.
const TopicPaymentCreated = "payments.created"

// Event is a generic wrapper for any event payload
type Event struct {
	Topic string
	Data  interface{}
}

// EventHandler is a function that can handle a specific event
type EventHandler func(ctx context.Context, event Event) error

// EventPublisher is the write side of the event system. Publishing is
// best-effort from the caller's point of view: a failed publish never
// rolls back the work that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
}

// EventBus is an in-process pub/sub system: a publisher that also
// dispatches to subscribed handlers.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for a specific topic
	Subscribe(topic string, handler EventHandler)
}
