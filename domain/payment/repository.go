package payment

import "context"

// Repository persists Payment aggregates with optimistic concurrency.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
}
