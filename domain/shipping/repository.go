package shipping

import "context"

// Repository persists Shipping aggregates with optimistic concurrency.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, s *Shipping) error
	FindByID(ctx context.Context, id string) (*Shipping, error)
	FindByOrderID(ctx context.Context, orderID string) (*Shipping, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipping, error)
}
