package order

import (
	"context"

	"commerce/domain/product"
)

// ProductProvider loads products for availability checks. Defined here to
// keep the order package free of repository wiring concerns.
type ProductProvider interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
}

// DomainService hosts order business rules that span aggregates. It reads
// through repositories but never persists; state changes and saves belong
// to the application layer.
type DomainService struct {
	products ProductProvider
	orders   Repository
}

// NewDomainService creates the order domain service.
func NewDomainService(products ProductProvider, orders Repository) *DomainService {
	return &DomainService{products: products, orders: orders}
}

// CanCheckOut verifies that every line of a pending order still refers to
// an active product. Returns the loaded order on success. Stock was already
// reserved when each line was added, so confirming must not demand the
// quantity a second time.
func (s *DomainService) CanCheckOut(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status() != StatusPending {
		return nil, NewNotPendingError(o.Status())
	}
	if len(o.Items()) == 0 {
		return nil, ErrEmptyOrderItems
	}

	for _, item := range o.Items() {
		p, err := s.products.FindByID(ctx, item.ProductID())
		if err != nil {
			return nil, err
		}
		if !p.IsActive() {
			return nil, product.NewProductInactiveError(p.ID())
		}
	}

	return o, nil
}
