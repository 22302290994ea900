package shared

import "context"

// UnitOfWork manages the transaction boundary and outbox event collection.
// The application layer registers the events returned by aggregate mutators;
// the unit of work writes them to the outbox table before commit so that
// state change and events are atomic.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterEvents(events ...DomainEvent)
}

// UnitOfWorkFactory creates a fresh unit of work per request.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
