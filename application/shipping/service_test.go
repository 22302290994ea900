package shipping

import (
	"context"
	"testing"
	"time"

	"commerce/domain/order"
	"commerce/domain/product"
	"commerce/domain/shared"
	"commerce/domain/shipping"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUoW struct {
	events []shared.DomainEvent
}

func (u *fakeUoW) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (u *fakeUoW) RegisterEvents(events ...shared.DomainEvent) {
	u.events = append(u.events, events...)
}

// fakeUoWFactory hands every operation the same recording unit of work so
// tests can inspect registered events.
type fakeUoWFactory struct {
	uow *fakeUoW
}

func (f *fakeUoWFactory) New() shared.UnitOfWork { return f.uow }

type memShipments struct {
	byID map[string]*shipping.Shipping
}

func (r *memShipments) NextIdentity() string { return "shipping-next" }

func (r *memShipments) Save(_ context.Context, sh *shipping.Shipping) error {
	r.byID[sh.ID()] = sh
	return nil
}

func (r *memShipments) FindByID(_ context.Context, id string) (*shipping.Shipping, error) {
	sh, ok := r.byID[id]
	if !ok {
		return nil, shipping.NewShippingNotFoundError(id)
	}
	return sh, nil
}

func (r *memShipments) FindByOrderID(_ context.Context, orderID string) (*shipping.Shipping, error) {
	for _, sh := range r.byID {
		if sh.OrderID() == orderID {
			return sh, nil
		}
	}
	return nil, shipping.NewShippingNotFoundError(orderID)
}

func (r *memShipments) FindByTrackingNumber(_ context.Context, trackingNumber string) (*shipping.Shipping, error) {
	for _, sh := range r.byID {
		if sh.TrackingNumber() == trackingNumber {
			return sh, nil
		}
	}
	return nil, shipping.NewShippingNotFoundError(trackingNumber)
}

type memOrders struct {
	byID map[string]*order.Order
}

func (r *memOrders) NextIdentity() string { return "order-next" }

func (r *memOrders) Save(_ context.Context, o *order.Order) error {
	r.byID[o.ID()] = o
	return nil
}

func (r *memOrders) FindByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (r *memOrders) FindByOrderNumber(_ context.Context, number string) (*order.Order, error) {
	return nil, order.NewOrderNotFoundError(number)
}

func (r *memOrders) FindByUserID(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, nil
}

func (r *memOrders) FindBySpecification(_ context.Context, _ shared.Specification[*order.Order]) ([]*order.Order, error) {
	return nil, nil
}

func (r *memOrders) Remove(_ context.Context, _ string) error { return nil }

type fixture struct {
	svc       *ApplicationService
	uow       *fakeUoW
	shipments *memShipments
	orders    *memOrders
}

// newFixture builds a confirmed order in Processing with a shipment in
// Preparing, the state checkout leaves behind.
func newFixture(t *testing.T) (*fixture, *order.Order, *shipping.Shipping) {
	t.Helper()
	f := &fixture{
		uow:       &fakeUoW{},
		shipments: &memShipments{byID: map[string]*shipping.Shipping{}},
		orders:    &memOrders{byID: map[string]*order.Order{}},
	}
	f.svc = NewApplicationService(f.shipments, f.orders, &fakeUoWFactory{uow: f.uow})

	price, err := shared.NewMoney(decimal.RequireFromString("100"), shared.DefaultCurrency)
	require.NoError(t, err)
	p, err := product.NewProduct("keyboard", "SKU-KB", price, 10)
	require.NoError(t, err)

	o, _, err := order.NewOrder("user-1", "addr-1")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(p, 1))
	_, err = o.Confirm()
	require.NoError(t, err)
	f.orders.byID[o.ID()] = o

	sh, err := shipping.NewShipping(o.ID(), "ups", o.ShippingCost())
	require.NoError(t, err)
	f.shipments.byID[sh.ID()] = sh

	return f, o, sh
}

func TestDispatchMovesOrderToShipped(t *testing.T) {
	f, o, sh := newFixture(t)
	eta := time.Now().Add(72 * time.Hour)

	resp, err := f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{
		TrackingNumber:      "TRACK-1",
		EstimatedDeliveryAt: &eta,
	})
	require.NoError(t, err)

	assert.Equal(t, "SHIPPED", resp.Status)
	assert.Equal(t, "TRACK-1", resp.TrackingNumber)
	require.NotNil(t, resp.ShippedAt)
	require.NotNil(t, resp.EstimatedDeliveryAt)

	assert.Equal(t, order.StatusShipped, o.Status())
	require.NotNil(t, o.ShippedAt())

	var names []string
	for _, evt := range f.uow.events {
		names = append(names, evt.EventName())
	}
	assert.Equal(t, []string{"shipping.dispatched", "order.shipped"}, names)
}

func TestDispatchRequiresPreparing(t *testing.T) {
	f, _, sh := newFixture(t)
	_, err := f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{TrackingNumber: "TRACK-1"})
	require.NoError(t, err)

	_, err = f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{TrackingNumber: "TRACK-2"})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestDeliverMovesOrderToDelivered(t *testing.T) {
	f, o, sh := newFixture(t)
	_, err := f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{TrackingNumber: "TRACK-1"})
	require.NoError(t, err)
	_, err = f.svc.MarkInTransit(context.Background(), sh.ID())
	require.NoError(t, err)
	_, err = f.svc.MarkOutForDelivery(context.Background(), sh.ID())
	require.NoError(t, err)

	resp, err := f.svc.Deliver(context.Background(), sh.ID())
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	assert.Equal(t, order.StatusDelivered, o.Status())

	// replayed carrier scan: nothing changes, no extra events
	before := len(f.uow.events)
	firstStamp := *sh.DeliveredAt()
	resp, err = f.svc.Deliver(context.Background(), sh.ID())
	require.NoError(t, err)
	assert.Equal(t, before, len(f.uow.events))
	assert.Equal(t, firstStamp, *sh.DeliveredAt())
}

func TestReturnAndFail(t *testing.T) {
	f, _, sh := newFixture(t)
	_, err := f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{TrackingNumber: "TRACK-1"})
	require.NoError(t, err)
	_, err = f.svc.MarkInTransit(context.Background(), sh.ID())
	require.NoError(t, err)

	resp, err := f.svc.Return(context.Background(), sh.ID(), ReturnRequest{Reason: "refused"})
	require.NoError(t, err)
	assert.Equal(t, "RETURNED", resp.Status)

	// a returned shipment cannot fail afterwards
	_, err = f.svc.Fail(context.Background(), sh.ID(), FailRequest{Reason: "lost"})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestTrack(t *testing.T) {
	f, _, sh := newFixture(t)
	_, err := f.svc.Dispatch(context.Background(), sh.ID(), DispatchRequest{TrackingNumber: "TRACK-42"})
	require.NoError(t, err)

	resp, err := f.svc.Track(context.Background(), "TRACK-42")
	require.NoError(t, err)
	assert.Equal(t, sh.ID(), resp.ID)

	byOrder, err := f.svc.GetShipmentByOrderID(context.Background(), sh.OrderID())
	require.NoError(t, err)
	assert.Equal(t, sh.ID(), byOrder.ID)

	_, err = f.svc.Track(context.Background(), "MISSING")
	assert.ErrorIs(t, err, shipping.ErrShippingNotFound)
}
