package shared

import "context"

// EventHandler consumes domain events. EventTypes narrows what the handler
// receives; an empty slice subscribes it to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the write side of the bus. Aggregates buffer events and
// services publish them only after a successful repository write.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the read side of the bus
type EventSubscriber interface {
	// Subscribe registers a handler; with no event types it receives all events
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is a full publish/subscribe bus with a lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
