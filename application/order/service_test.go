package order

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

// fakeUoW runs the work function inline and records registered events.
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

type memOrders struct {
	byID map[string]*order.Order
}

func newMemOrders() *memOrders { return &memOrders{byID: map[string]*order.Order{}} }

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
	for _, o := range r.byID {
		if o.OrderNumber() == number {
			return o, nil
		}
	}
	return nil, order.NewOrderNotFoundError(number)
}

func (r *memOrders) FindByUserID(_ context.Context, userID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.byID {
		if o.UserID() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrders) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.byID {
		if spec.IsSatisfiedBy(ctx, o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrders) Remove(_ context.Context, id string) error {
	o, ok := r.byID[id]
	if !ok {
		return order.NewOrderNotFoundError(id)
	}
	o.MarkDeleted()
	return nil
}

type memCoupons struct {
	byCode map[string]*order.Coupon
}

func (r *memCoupons) Save(_ context.Context, c *order.Coupon) error {
	r.byCode[c.Code()] = c
	return nil
}

func (r *memCoupons) FindByCode(_ context.Context, code string) (*order.Coupon, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, order.NewCouponNotFoundError(code)
	}
	return c, nil
}

type memProducts struct {
	byID map[string]*product.Product
}

func (r *memProducts) NextIdentity() string { return "product-next" }

func (r *memProducts) Save(_ context.Context, p *product.Product) error {
	r.byID[p.ID()] = p
	return nil
}

func (r *memProducts) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return p, nil
}

func (r *memProducts) FindBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.byID {
		if p.SKU() == sku {
			return p, nil
		}
	}
	return nil, product.NewProductNotFoundError(sku)
}

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

type fixture struct {
	svc       *ApplicationService
	uow       *fakeUoW
	orders    *memOrders
	coupons   *memCoupons
	products  *memProducts
	shipments *memShipments
}

func newFixture() *fixture {
	f := &fixture{
		uow:       &fakeUoW{},
		orders:    newMemOrders(),
		coupons:   &memCoupons{byCode: map[string]*order.Coupon{}},
		products:  &memProducts{byID: map[string]*product.Product{}},
		shipments: &memShipments{byID: map[string]*shipping.Shipping{}},
	}
	f.svc = NewApplicationService(f.orders, f.coupons, f.products, f.shipments, &fakeUoWFactory{uow: f.uow})
	return f
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) *product.Product {
	t.Helper()
	m, err := shared.NewMoney(decimal.RequireFromString(price), shared.DefaultCurrency)
	require.NoError(t, err)
	p, err := product.NewProduct(name, "SKU-"+name, m, stock)
	require.NoError(t, err)
	f.products.byID[p.ID()] = p
	return p
}

func (f *fixture) createOrder(t *testing.T) *OrderResponse {
	t.Helper()
	resp, err := f.svc.CreateOrder(context.Background(), CreateOrderRequest{UserID: "user-1", AddressID: "addr-1"})
	require.NoError(t, err)
	return resp
}

func TestCreateOrder(t *testing.T) {
	f := newFixture()

	resp := f.createOrder(t)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "0.00", resp.TotalAmount.Amount)

	require.Len(t, f.uow.events, 1)
	assert.Equal(t, "order.created", f.uow.events[0].EventName())
	_, ok := f.orders.byID[resp.ID]
	assert.True(t, ok, "order persisted")
}

func TestAddItemReducesStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)

	resp, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "200.00", resp.TotalAmount.Amount)
	assert.Equal(t, 3, p.Stock(), "stock reduced with the order write")
}

func TestAddItemInsufficientStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 1)
	o := f.createOrder(t)

	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 1, p.Stock())
}

func TestRemoveItemRestocks(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)

	resp, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock())

	resp, err = f.svc.RemoveItem(context.Background(), o.ID, resp.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 5, p.Stock(), "stock restored")
}

func TestUpdateItemQuantityAdjustsStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)

	resp, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	// grow the line: three more units leave the shelf
	resp, err = f.svc.UpdateItemQuantity(context.Background(), o.ID, itemID, UpdateItemQuantityRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock())
	assert.Equal(t, "500.00", resp.TotalAmount.Amount)

	// shrink it back
	resp, err = f.svc.UpdateItemQuantity(context.Background(), o.ID, itemID, UpdateItemQuantityRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock())
	assert.Equal(t, "100.00", resp.TotalAmount.Amount)

	// growing past the shelf fails before the order changes
	_, err = f.svc.UpdateItemQuantity(context.Background(), o.ID, itemID, UpdateItemQuantityRequest{Quantity: 6})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	got, err := f.svc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestApplyCouponBurnsUsage(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)

	discount, err := shared.NewMoney(decimal.RequireFromString("30"), shared.DefaultCurrency)
	require.NoError(t, err)
	c, err := order.NewCoupon("SAVE30", discount, time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	f.coupons.byCode[c.Code()] = c

	resp, err := f.svc.ApplyCoupon(context.Background(), o.ID, ApplyCouponRequest{Code: "SAVE30"})
	require.NoError(t, err)
	assert.Equal(t, "170.00", resp.TotalAmount.Amount)
	assert.Equal(t, 1, c.UsedCount())

	// the single-use coupon is spent
	o2 := f.createOrder(t)
	_, err = f.svc.AddItem(context.Background(), o2.ID, AddItemRequest{ProductID: p.ID(), Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.ApplyCoupon(context.Background(), o2.ID, ApplyCouponRequest{Code: "SAVE30"})
	assert.ErrorIs(t, err, order.ErrCouponNotApplicable)

	_, err = f.svc.ApplyCoupon(context.Background(), o.ID, ApplyCouponRequest{Code: "MISSING"})
	assert.ErrorIs(t, err, order.ErrCouponNotFound)
}

func TestApplyGiftCardAndSetShippingAndTax(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)

	resp, err := f.svc.SetShippingAndTax(context.Background(), o.ID, SetShippingAndTaxRequest{ShippingCost: "15", Tax: "10"})
	require.NoError(t, err)
	assert.Equal(t, "225.00", resp.TotalAmount.Amount)

	resp, err = f.svc.ApplyGiftCard(context.Background(), o.ID, ApplyGiftCardRequest{Amount: "25"})
	require.NoError(t, err)
	assert.Equal(t, "200.00", resp.TotalAmount.Amount)

	_, err = f.svc.ApplyGiftCard(context.Background(), o.ID, ApplyGiftCardRequest{Amount: "not-a-number"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestConfirmOrderOpensShipment(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.SetShippingAndTax(context.Background(), o.ID, SetShippingAndTaxRequest{ShippingCost: "15", Tax: "0"})
	require.NoError(t, err)

	resp, err := f.svc.ConfirmOrder(context.Background(), o.ID, ConfirmOrderRequest{ShippingProvider: "ups"})
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", resp.Status)

	sh, err := f.shipments.FindByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, shipping.StatusPreparing, sh.Status())
	assert.True(t, sh.ShippingCost().Amount().Equal(decimal.RequireFromString("15")))

	var names []string
	for _, evt := range f.uow.events {
		names = append(names, evt.EventName())
	}
	assert.Contains(t, names, "order.confirmed")
}

func TestConfirmOrderRequiresActiveProducts(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 2)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)

	// the product is pulled from sale between add and checkout
	p.Deactivate()
	_, err = f.svc.ConfirmOrder(context.Background(), o.ID, ConfirmOrderRequest{ShippingProvider: "ups"})
	assert.ErrorIs(t, err, product.ErrProductInactive)
}

func TestConfirmOrderWithLastUnitsInStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 2)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock(), "adding the lines reserves the stock")
	_, err = f.svc.SetShippingAndTax(context.Background(), o.ID, SetShippingAndTaxRequest{ShippingCost: "10", Tax: "0"})
	require.NoError(t, err)

	// the reservation made at add time must not be demanded again
	resp, err := f.svc.ConfirmOrder(context.Background(), o.ID, ConfirmOrderRequest{ShippingProvider: "ups"})
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", resp.Status)
}

func TestCancelOrderRestocks(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "keyboard", "100", 5)
	o := f.createOrder(t)
	_, err := f.svc.AddItem(context.Background(), o.ID, AddItemRequest{ProductID: p.ID(), Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock())

	resp, err := f.svc.CancelOrder(context.Background(), o.ID, CancelOrderRequest{Reason: "changed mind"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, 5, p.Stock(), "cancelled lines return to the shelf")

	var names []string
	for _, evt := range f.uow.events {
		names = append(names, evt.EventName())
	}
	assert.Contains(t, names, "order.cancelled")
}

func TestHoldAndResume(t *testing.T) {
	f := newFixture()
	o := f.createOrder(t)

	resp, err := f.svc.HoldOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ON_HOLD", resp.Status)

	resp, err = f.svc.ResumeOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestQueries(t *testing.T) {
	f := newFixture()
	o := f.createOrder(t)

	byNumber, err := f.svc.GetOrderByNumber(context.Background(), o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)

	list, err := f.svc.GetUserOrders(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	pending, err := f.svc.GetUserOrders(context.Background(), "user-1", "PENDING")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	shipped, err := f.svc.GetUserOrders(context.Background(), "user-1", "SHIPPED")
	require.NoError(t, err)
	assert.Empty(t, shipped)

	_, err = f.svc.GetUserOrders(context.Background(), "user-1", "BOGUS")
	assert.Error(t, err)

	_, err = f.svc.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), o.ID))
	assert.NotNil(t, f.orders.byID[o.ID].DeletedAt())
}
