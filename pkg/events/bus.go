// Package events is an in-process publish/subscribe bus for model lifecycle
// events such as member.added.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event describes a change to a model. Current and Previous are snapshots of
// the model after and before the change; either may be nil.
type Event struct {
	Name       string
	Model      string
	Current    any
	Previous   any
	OccurredAt time.Time
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, event Event) error

// Bus dispatches events to the handlers subscribed to their name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus returns an empty bus. A nil logger discards handler errors.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers handler for events named name.
func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Publish runs the subscribed handlers synchronously in subscription order.
// Handler errors are logged and never reach the publisher.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Name]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event", event.Name),
				zap.Error(err),
			)
		}
	}
}
