package mysql

import (
	"context"
	"fmt"

	"commerce/domain/shared"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork runs application operations inside one database transaction
// and writes the registered domain events to the outbox before commit, so
// state change and events are atomic.
type UnitOfWork struct {
	db               *gorm.DB
	events           []shared.DomainEvent
	outboxRepository *OutboxRepository
	retryConfig      retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:               db,
		events:           make([]shared.DomainEvent, 0),
		outboxRepository: NewOutboxRepository(db),
		retryConfig:      retry.DefaultConfig,
	}
}

// SetRetryConfig overrides the retry policy for this unit of work.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute begins a transaction, injects it into the context for the
// repositories, runs fn, flushes registered events to the outbox and
// commits. Retryable failures (optimistic lock conflicts, deadlocks) rerun
// fn from scratch with a fresh event buffer.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		// Each attempt starts clean; a retried fn re-registers its events.
		u.events = u.events[:0]

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		for _, event := range u.events {
			if err := u.outboxRepository.SaveEvent(txCtx, event); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to save event to outbox: %w", err)
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

// RegisterEvents queues events returned by aggregate mutators for the
// outbox flush at commit time.
func (u *UnitOfWork) RegisterEvents(events ...shared.DomainEvent) {
	for _, event := range events {
		if event == nil {
			continue
		}
		u.events = append(u.events, event)
	}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
