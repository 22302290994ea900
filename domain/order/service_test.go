package order

import (
	"context"
	"testing"

	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductProvider struct {
	products map[string]*product.Product
}

func (s *stubProductProvider) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return p, nil
}

type stubOrderRepo struct {
	orders map[string]*Order
}

func (s *stubOrderRepo) NextIdentity() string { return "order-next" }

func (s *stubOrderRepo) Save(_ context.Context, o *Order) error {
	s.orders[o.ID()] = o
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id string) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, NewOrderNotFoundError(id)
	}
	return o, nil
}

func (s *stubOrderRepo) FindByOrderNumber(_ context.Context, number string) (*Order, error) {
	for _, o := range s.orders {
		if o.OrderNumber() == number {
			return o, nil
		}
	}
	return nil, NewOrderNotFoundError(number)
}

func (s *stubOrderRepo) FindByUserID(_ context.Context, userID string) ([]*Order, error) {
	var out []*Order
	for _, o := range s.orders {
		if o.UserID() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) FindBySpecification(ctx context.Context, spec shared.Specification[*Order]) ([]*Order, error) {
	var out []*Order
	for _, o := range s.orders {
		if spec.IsSatisfiedBy(ctx, o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) Remove(_ context.Context, id string) error {
	if o, ok := s.orders[id]; ok {
		o.MarkDeleted()
	}
	return nil
}

func TestCanCheckOut(t *testing.T) {
	ctx := context.Background()
	p := testProduct(t, "keyboard", "100", 5)
	o := testOrder(t)
	require.NoError(t, o.AddItem(p, 2))

	repo := &stubOrderRepo{orders: map[string]*Order{o.ID(): o}}
	provider := &stubProductProvider{products: map[string]*product.Product{p.ID(): p}}
	svc := NewDomainService(provider, repo)

	got, err := svc.CanCheckOut(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.ID(), got.ID())

	// stock reserved at add time is not demanded again, even when the
	// shelf has since emptied
	require.NoError(t, p.ReduceStock(5))
	got, err = svc.CanCheckOut(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.ID(), got.ID())

	// a deactivated product blocks checkout
	p.Deactivate()
	_, err = svc.CanCheckOut(ctx, o.ID())
	assert.ErrorIs(t, err, product.ErrProductInactive)
}

func TestCanCheckOutRejections(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{orders: map[string]*Order{}}
	provider := &stubProductProvider{products: map[string]*product.Product{}}
	svc := NewDomainService(provider, repo)

	_, err := svc.CanCheckOut(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	empty := testOrder(t)
	repo.orders[empty.ID()] = empty
	_, err = svc.CanCheckOut(ctx, empty.ID())
	assert.ErrorIs(t, err, ErrEmptyOrderItems)

	confirmed := testOrder(t)
	p := testProduct(t, "mouse", "40", 5)
	provider.products[p.ID()] = p
	require.NoError(t, confirmed.AddItem(p, 1))
	_, err = confirmed.Confirm()
	require.NoError(t, err)
	repo.orders[confirmed.ID()] = confirmed
	_, err = svc.CanCheckOut(ctx, confirmed.ID())
	assert.ErrorIs(t, err, ErrOrderNotPending)
}
