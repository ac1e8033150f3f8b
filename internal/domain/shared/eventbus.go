package shared

import "context"

// EventHandler consumes domain events. EventTypes narrows delivery to the
// named types; an empty slice subscribes the handler to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the side of the bus aggregates' callers see: publish
// the events collected during a unit of work after it commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers and removes handlers. Passing no event types
// subscribes the handler to every event.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full in-process bus contract with lifecycle control.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
