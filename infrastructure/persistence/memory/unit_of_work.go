package memory

import (
	"context"
	"sync"

	"commerce/domain/shared"
	"commerce/pkg/logger"

	"go.uber.org/zap"
)

// UnitOfWork is the in-process unit of work. There is no transaction to
// manage; registered events are handed to the bus right after fn succeeds.
type UnitOfWork struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	bus    shared.DomainEventPublisher
}

// NewUnitOfWork creates a unit of work publishing to the given bus. A nil
// bus logs events instead.
func NewUnitOfWork(bus shared.DomainEventPublisher) *UnitOfWork {
	return &UnitOfWork{bus: bus}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = u.events[:0]

	if err := fn(ctx); err != nil {
		return err
	}

	for _, event := range u.events {
		logger.Info("Domain event",
			zap.String("event_name", event.EventName()),
			zap.String("aggregate_id", event.GetAggregateID()),
		)
		if u.bus == nil {
			continue
		}
		if err := u.bus.Publish(event); err != nil {
			logger.Error("Failed to publish domain event",
				zap.String("event_name", event.EventName()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (u *UnitOfWork) RegisterEvents(events ...shared.DomainEvent) {
	for _, event := range events {
		if event == nil {
			continue
		}
		u.events = append(u.events, event)
	}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkFactory hands out units of work sharing one event bus.
type UnitOfWorkFactory struct {
	bus shared.DomainEventPublisher
}

func NewUnitOfWorkFactory(bus shared.DomainEventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{bus: bus}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.bus)
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
