package payment

import (
	"context"
	"testing"

	"commerce/domain/order"
	"commerce/domain/payment"
	"commerce/domain/product"
	"commerce/domain/shared"

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

type memPayments struct {
	byID map[string]*payment.Payment
}

func (r *memPayments) NextIdentity() string { return "payment-next" }

func (r *memPayments) Save(_ context.Context, p *payment.Payment) error {
	r.byID[p.ID()] = p
	return nil
}

func (r *memPayments) FindByID(_ context.Context, id string) (*payment.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, payment.NewPaymentNotFoundError(id)
	}
	return p, nil
}

func (r *memPayments) FindByOrderID(_ context.Context, orderID string) (*payment.Payment, error) {
	for _, p := range r.byID {
		if p.OrderID() == orderID {
			return p, nil
		}
	}
	return nil, payment.NewPaymentNotFoundError(orderID)
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
	svc      *ApplicationService
	uow      *fakeUoW
	payments *memPayments
	orders   *memOrders
}

// newFixture wires the service around an order whose checkout reached a
// 195.00 total, matching the standard checkout fixture.
func newFixture(t *testing.T) (*fixture, *order.Order) {
	t.Helper()
	f := &fixture{
		uow:      &fakeUoW{},
		payments: &memPayments{byID: map[string]*payment.Payment{}},
		orders:   &memOrders{byID: map[string]*order.Order{}},
	}
	f.svc = NewApplicationService(f.payments, f.orders, &fakeUoWFactory{uow: f.uow})

	price, err := shared.NewMoney(decimal.RequireFromString("100"), shared.DefaultCurrency)
	require.NoError(t, err)
	p, err := product.NewProduct("keyboard", "SKU-KB", price, 10)
	require.NoError(t, err)

	o, _, err := order.NewOrder("user-1", "addr-1")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(p, 2))

	thirty, err := shared.NewMoney(decimal.RequireFromString("30"), shared.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, o.ApplyGiftCardDiscount(thirty))
	fifteen, err := shared.NewMoney(decimal.RequireFromString("15"), shared.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, o.SetShippingCost(fifteen))
	ten, err := shared.NewMoney(decimal.RequireFromString("10"), shared.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, o.SetTax(ten))

	f.orders.byID[o.ID()] = o
	return f, o
}

func TestInitiatePayment(t *testing.T) {
	f, o := newFixture(t)

	resp, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)

	assert.Equal(t, "PROCESSING", resp.Status)
	assert.Equal(t, "195.00", resp.Amount.Amount, "amount frozen at the order total")

	_, err = f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: "missing", Method: "CREDIT_CARD", Provider: "stripe",
	})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestInitiatePaymentOncePerOrder(t *testing.T) {
	f, o := newFixture(t)

	_, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)

	_, err = f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "PAYPAL", Provider: "paypal",
	})
	assert.ErrorIs(t, err, payment.ErrPaymentAlreadyExists)
}

func TestCompletePaymentMarksOrderPaid(t *testing.T) {
	f, o := newFixture(t)
	initiated, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)

	resp, err := f.svc.CompletePayment(context.Background(), initiated.ID, CompletePaymentRequest{
		TransactionID: "tx-1", Reference: "charge-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "tx-1", resp.TransactionID)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus())

	require.Len(t, f.uow.events, 1)
	assert.Equal(t, "payment.completed", f.uow.events[0].EventName())
}

func TestFailPayment(t *testing.T) {
	f, o := newFixture(t)
	initiated, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)

	resp, err := f.svc.FailPayment(context.Background(), initiated.ID, FailPaymentRequest{Reason: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, "FAILED", resp.Status)
	assert.Equal(t, "card declined", resp.FailureReason)
	assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus())
}

func TestRefundFlow(t *testing.T) {
	f, o := newFixture(t)
	initiated, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)
	_, err = f.svc.CompletePayment(context.Background(), initiated.ID, CompletePaymentRequest{TransactionID: "tx-1"})
	require.NoError(t, err)

	// a refund above or at the original amount is rejected
	_, err = f.svc.PartiallyRefundPayment(context.Background(), initiated.ID, PartialRefundRequest{Amount: "200"})
	assert.ErrorIs(t, err, payment.ErrRefundExceedsAmount)

	resp, err := f.svc.PartiallyRefundPayment(context.Background(), initiated.ID, PartialRefundRequest{Amount: "50"})
	require.NoError(t, err)
	assert.Equal(t, "PARTIALLY_REFUNDED", resp.Status)
	assert.Equal(t, "50.00", resp.RefundedAmount.Amount)
	assert.Equal(t, order.PaymentStatusPartiallyRefunded, o.PaymentStatus())

	resp, err = f.svc.RefundPayment(context.Background(), initiated.ID)
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", resp.Status)
	assert.Equal(t, "195.00", resp.RefundedAmount.Amount)
	assert.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus())
}

func TestCancelPayment(t *testing.T) {
	f, o := newFixture(t)

	// build a pending payment directly; Initiate moves straight to Processing
	p, err := payment.NewPayment(o.ID(), "CREDIT_CARD", "stripe", o.TotalAmount())
	require.NoError(t, err)
	f.payments.byID[p.ID()] = p

	resp, err := f.svc.CancelPayment(context.Background(), p.ID(), CancelPaymentRequest{Reason: "abandoned"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestGetPaymentByOrderID(t *testing.T) {
	f, o := newFixture(t)
	initiated, err := f.svc.InitiatePayment(context.Background(), InitiatePaymentRequest{
		OrderID: o.ID(), Method: "CREDIT_CARD", Provider: "stripe",
	})
	require.NoError(t, err)

	resp, err := f.svc.GetPaymentByOrderID(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, initiated.ID, resp.ID)

	_, err = f.svc.GetPayment(context.Background(), "missing")
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}
