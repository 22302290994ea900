package order

import (
	"context"

	"commerce/domain/shared"
)

// Repository persists Order aggregates. Save must enforce the optimistic
// concurrency token: an update whose version does not match the stored row
// fails with ErrConcurrentModification and the caller retries with a freshly
// loaded aggregate. Remove is a soft delete; orders are never hard-deleted.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
	FindBySpecification(ctx context.Context, spec shared.Specification[*Order]) ([]*Order, error)
	Remove(ctx context.Context, id string) error
}

// CouponRepository loads and persists coupons. Lookup is by the customer
// facing code.
type CouponRepository interface {
	Save(ctx context.Context, c *Coupon) error
	FindByCode(ctx context.Context, code string) (*Coupon, error)
}
