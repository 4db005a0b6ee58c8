package shared

import "context"

// EventHandler processes domain events
type EventHandler interface {
	// Handle processes a single event
	Handle(ctx context.Context, event DomainEvent) error

	// EventTypes returns the event types this handler is interested in
	EventTypes() []string
}

// EventBus publishes domain events to subscribed handlers
type EventBus interface {
	// Publish delivers events to all registered handlers
	Publish(ctx context.Context, events ...DomainEvent) error

	// Subscribe registers a handler, optionally overriding its event types
	Subscribe(handler EventHandler, eventTypes ...string)

	// Unsubscribe removes a handler
	Unsubscribe(handler EventHandler)

	// Start starts the bus
	Start(ctx context.Context) error

	// Stop stops the bus gracefully
	Stop(ctx context.Context) error
}
