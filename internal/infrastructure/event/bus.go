package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gestock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events synchronously to subscribed
// handlers within the publishing goroutine. A failing or panicking handler
// is logged and skipped so one subscriber can never poison delivery to the
// others.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	wildcard []shared.EventHandler

	logger  *zap.Logger
	running atomic.Bool
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		byType: make(map[string][]shared.EventHandler),
		logger: logger,
	}
}

// Subscribe registers handler for the given event types. When none are
// given the handler's own EventTypes decides; if that is empty too, the
// handler receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		b.wildcard = append(b.wildcard, handler)
	} else {
		for _, eventType := range eventTypes {
			b.byType[eventType] = append(b.byType[eventType], handler)
		}
	}

	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes handler from every subscription.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.wildcard = without(b.wildcard, handler)
	for eventType, handlers := range b.byType {
		if remaining := without(handlers, handler); len(remaining) > 0 {
			b.byType[eventType] = remaining
		} else {
			delete(b.byType, eventType)
		}
	}
}

// Publish delivers each event to its type's handlers and to the wildcard
// handlers, in subscription order. Handler errors are logged, never
// returned: publication happens after the fact and must not fail the
// operation that raised the event.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, handler := range b.handlersFor(ev.EventType()) {
			if err := b.deliver(ctx, handler, ev); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Start marks the bus as running.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

// Stop marks the bus as stopped. Delivery is synchronous so there is
// nothing in flight to drain.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped")
	return nil
}

func (b *InMemoryEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.byType[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(b.wildcard))
	out = append(out, typed...)
	out = append(out, b.wildcard...)
	return out
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, ev)
}

func without(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := handlers[:0:0]
	for _, h := range handlers {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}
