package eventbus

import (
	"FinPay/internal/core/ports"
	"context"
	"sync"

	"github.com/rs/zerolog"
)

var _ ports.EventBus = (*inMemoryEventBus)(nil)

// inMemoryEventBus is the in-process ports.EventBus used when no broker
// is configured.
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers map[string][]ports.EventHandler
	mu          sync.RWMutex
}

// NewInMemoryEventBus creates a new, empty event bus.
func NewInMemoryEventBus(baseLogger *zerolog.Logger) ports.EventBus {
	return &inMemoryEventBus{
		log:         baseLogger.With().Str("component", "in_memory_bus").Logger(),
		subscribers: make(map[string][]ports.EventHandler),
	}
}

// Publish dispatches the event to every handler subscribed to the topic.
// Each handler runs in its own goroutine so a slow handler cannot block
// the publisher; handlers get a fresh context because the publisher's
// request may complete before they do.
func (b *inMemoryEventBus) Publish(ctx context.Context, topic string, data interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers, ok := b.subscribers[topic]
	if !ok {
		b.log.Debug().Str("topic", topic).Msg("Published event with no subscribers")
		return nil
	}

	event := ports.Event{
		Topic: topic,
		Data:  data,
	}

	for _, handler := range handlers {
		go func(h ports.EventHandler) {
			if err := h(context.Background(), event); err != nil {
				b.log.Error().Err(err).Str("topic", topic).Msg("Event handler failed")
			}
		}(handler)
	}

	b.log.Info().Str("topic", topic).Int("handlers", len(handlers)).Msg("Event published")
	return nil
}

// Subscribe registers a handler for a specific topic.
func (b *inMemoryEventBus) Subscribe(topic string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], handler)
	b.log.Info().Str("topic", topic).Msg("New handler subscribed to topic")
}
