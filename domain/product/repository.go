package product

import "context"

// Repository persists Product aggregates. Save must enforce the optimistic
// concurrency token and return ErrConcurrentModification on a version
// mismatch so the caller can reload and retry.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
}
