package order

import (
	"testing"
	"time"

	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoney(decimal.RequireFromString(amount), shared.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func testProduct(t *testing.T, name, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(name, "SKU-"+name, usd(t, price), stock)
	require.NoError(t, err)
	return p
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	o, evt, err := NewOrder("user-1", "addr-1")
	require.NoError(t, err)
	require.NotNil(t, evt)
	return o
}

// assertTotalsIdentity checks the financial invariant the aggregate promises
// after every mutation.
func assertTotalsIdentity(t *testing.T, o *Order) {
	t.Helper()
	sum := shared.ZeroMoney(o.Currency())
	var err error
	for _, item := range o.Items() {
		sum, err = sum.Add(item.TotalPrice())
		require.NoError(t, err)
	}
	assert.True(t, o.SubTotal().Equals(sum), "subTotal %s != item sum %s", o.SubTotal(), sum)

	expected := sum
	expected, err = expected.Subtract(o.CouponDiscount())
	require.NoError(t, err)
	expected, err = expected.Subtract(o.GiftCardDiscount())
	require.NoError(t, err)
	expected, err = expected.Add(o.ShippingCost())
	require.NoError(t, err)
	expected, err = expected.Add(o.Tax())
	require.NoError(t, err)

	assert.True(t, o.TotalAmount().Equals(expected), "total %s != %s", o.TotalAmount(), expected)
	assert.False(t, o.TotalAmount().IsNegative())
}

func TestNewOrder(t *testing.T) {
	o, evt, err := NewOrder("user-1", "addr-1")
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID())
	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, PaymentStatusUnpaid, o.PaymentStatus())
	assert.Empty(t, o.Items())
	assert.True(t, o.TotalAmount().IsZero())
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{10}$`, o.OrderNumber())
	assert.True(t, o.IsNew())

	require.NotNil(t, evt)
	assert.Equal(t, "order.created", evt.EventName())
	assert.Equal(t, o.ID(), evt.GetAggregateID())
}

func TestNewOrderValidation(t *testing.T) {
	_, _, err := NewOrder("", "addr-1")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, _, err = NewOrder("user-1", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestAddItem(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "keyboard", "100", 5)

	require.NoError(t, o.AddItem(p, 2))
	require.Len(t, o.Items(), 1)
	assert.True(t, o.SubTotal().Equals(usd(t, "200")))
	assert.True(t, o.TotalAmount().Equals(usd(t, "200")))
	assertTotalsIdentity(t, o)

	item := o.Items()[0]
	assert.Equal(t, p.ID(), item.ProductID())
	assert.Equal(t, 2, item.Quantity())
	assert.True(t, item.UnitPrice().Equals(usd(t, "100")))
}

func TestAddItemSnapshotsDiscountPrice(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "keyboard", "100", 5)
	require.NoError(t, p.SetDiscountPrice(usd(t, "80")))

	require.NoError(t, o.AddItem(p, 1))
	assert.True(t, o.Items()[0].UnitPrice().Equals(usd(t, "80")))

	// later price changes do not affect the captured line
	p.ClearDiscountPrice()
	assert.True(t, o.Items()[0].UnitPrice().Equals(usd(t, "80")))
}

func TestAddItemGuards(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "keyboard", "100", 3)

	assert.ErrorIs(t, o.AddItem(p, 0), shared.ErrInvalidInput)
	assert.ErrorIs(t, o.AddItem(nil, 1), shared.ErrInvalidInput)
	assert.ErrorIs(t, o.AddItem(p, 4), product.ErrInsufficientStock)

	p.Deactivate()
	assert.ErrorIs(t, o.AddItem(p, 1), ErrProductUnavailable)

	assert.Empty(t, o.Items(), "failed adds leave no items behind")
	assert.True(t, o.TotalAmount().IsZero())
}

func TestRemoveItem(t *testing.T) {
	o := testOrder(t)
	a := testProduct(t, "keyboard", "100", 5)
	b := testProduct(t, "mouse", "40", 5)
	require.NoError(t, o.AddItem(a, 1))
	require.NoError(t, o.AddItem(b, 2))

	assert.ErrorIs(t, o.RemoveItem("nope"), ErrItemNotFound)

	itemID := o.Items()[0].ID()
	require.NoError(t, o.RemoveItem(itemID))
	require.Len(t, o.Items(), 1)
	assert.True(t, o.SubTotal().Equals(usd(t, "80")))
	assertTotalsIdentity(t, o)
}

func TestUpdateItemQuantity(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "keyboard", "100", 5)
	require.NoError(t, o.AddItem(p, 1))
	itemID := o.Items()[0].ID()

	require.NoError(t, o.UpdateItemQuantity(itemID, 3))
	assert.Equal(t, 3, o.Items()[0].Quantity())
	assert.True(t, o.SubTotal().Equals(usd(t, "300")))
	assertTotalsIdentity(t, o)

	assert.ErrorIs(t, o.UpdateItemQuantity(itemID, 0), shared.ErrInvalidInput)
	assert.ErrorIs(t, o.UpdateItemQuantity("nope", 2), ErrItemNotFound)
}

func TestApplyCoupon(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 2))

	from, until := time.Now().Add(-time.Hour), time.Now().Add(time.Hour)
	c, err := NewCoupon("SAVE30", usd(t, "30"), from, until, 0)
	require.NoError(t, err)

	require.NoError(t, o.ApplyCoupon(c, usd(t, "30")))
	assert.Equal(t, c.ID(), o.CouponID())
	assert.True(t, o.TotalAmount().Equals(usd(t, "170")))
	assertTotalsIdentity(t, o)

	require.NoError(t, o.RemoveCoupon())
	assert.Empty(t, o.CouponID())
	assert.True(t, o.TotalAmount().Equals(usd(t, "200")))
}

func TestApplyCouponRejections(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	from, until := time.Now().Add(-time.Hour), time.Now().Add(time.Hour)

	expired, err := NewCoupon("EXPIRED", usd(t, "10"), from.Add(-48*time.Hour), from, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, o.ApplyCoupon(expired, usd(t, "10")), ErrCouponNotApplicable)

	overMinimum, err := NewCoupon("MIN500", usd(t, "10"), from, until, 0)
	require.NoError(t, err)
	require.NoError(t, overMinimum.SetMinimumPurchase(usd(t, "500")))
	assert.ErrorIs(t, o.ApplyCoupon(overMinimum, usd(t, "10")), ErrCouponNotApplicable)

	ok, err := NewCoupon("TOOBIG", usd(t, "150"), from, until, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, o.ApplyCoupon(ok, usd(t, "150")), ErrNegativeTotal)

	assert.True(t, o.TotalAmount().Equals(usd(t, "100")), "rejections leave totals unchanged")
	assert.Empty(t, o.CouponID())
}

func TestApplyGiftCardDiscount(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	assert.ErrorIs(t, o.ApplyGiftCardDiscount(usd(t, "100.01")), ErrDiscountExceedsTotal)
	assert.True(t, o.TotalAmount().Equals(usd(t, "100")))

	require.NoError(t, o.ApplyGiftCardDiscount(usd(t, "100")))
	assert.True(t, o.TotalAmount().IsZero())
	assertTotalsIdentity(t, o)
}

func TestSetShippingCostAndTax(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	require.NoError(t, o.SetShippingCost(usd(t, "15")))
	require.NoError(t, o.SetTax(usd(t, "10")))
	assert.True(t, o.TotalAmount().Equals(usd(t, "125")))
	assertTotalsIdentity(t, o)

	assert.ErrorIs(t, o.SetShippingCost(usd(t, "-1")), shared.ErrInvalidInput)
	assert.ErrorIs(t, o.SetTax(usd(t, "-1")), shared.ErrInvalidInput)
}

func TestTransitionTo(t *testing.T) {
	// success iff the table allows the move, status untouched on failure
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			o := RebuildFromDTO(ReconstructionDTO{
				ID: "order-1", UserID: "user-1", AddressID: "addr-1",
				OrderNumber: "ORD-20260901-0000000001",
				Status:      from, PaymentStatus: PaymentStatusUnpaid,
				Currency: shared.DefaultCurrency,
			})
			err := o.TransitionTo(to)
			if from.CanTransitionTo(to) {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, o.Status())
			} else {
				assert.ErrorIs(t, err, shared.ErrInvalidTransition, "%s -> %s", from, to)
				assert.Equal(t, from, o.Status(), "status unchanged after rejected %s -> %s", from, to)
			}
		}
	}

	o := testOrder(t)
	assert.ErrorIs(t, o.TransitionTo(Status("BOGUS")), shared.ErrInvalidInput)
}

func TestLifecycleHappyPath(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	evt, err := o.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "order.confirmed", evt.EventName())
	assert.Equal(t, StatusProcessing, o.Status())

	evt, err = o.Ship()
	require.NoError(t, err)
	assert.Equal(t, "order.shipped", evt.EventName())
	assert.Equal(t, StatusShipped, o.Status())
	require.NotNil(t, o.ShippedAt())

	evt, err = o.Deliver()
	require.NoError(t, err)
	assert.Equal(t, "order.delivered", evt.EventName())
	require.NotNil(t, o.DeliveredAt())

	evt, err = o.Refund()
	require.NoError(t, err)
	assert.Equal(t, "order.refunded", evt.EventName())
	assert.Equal(t, StatusRefunded, o.Status())
	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus())
}

func TestConfirmRequiresItems(t *testing.T) {
	o := testOrder(t)
	_, err := o.Confirm()
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
	assert.Equal(t, StatusPending, o.Status())
}

func TestCancel(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	evt, err := o.Cancel("customer changed their mind")
	require.NoError(t, err)
	assert.Equal(t, "order.cancelled", evt.EventName())
	assert.Equal(t, StatusCancelled, o.Status())

	// cancelled is terminal
	_, err = o.Confirm()
	assert.Error(t, err)
}

func TestHoldAndResume(t *testing.T) {
	o := testOrder(t)

	require.NoError(t, o.PutOnHold())
	assert.Equal(t, StatusOnHold, o.Status())

	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))
	assert.ErrorIs(t, o.AddItem(testProduct(t, "mouse", "40", 5), 1), ErrOrderNotPending)

	require.NoError(t, o.Resume())
	assert.Equal(t, StatusPending, o.Status())
}

func TestMarkPaidIdempotent(t *testing.T) {
	o := testOrder(t)

	o.MarkPaid()
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus())
	o.MarkPaid()
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus())

	o.MarkPartiallyRefunded()
	assert.Equal(t, PaymentStatusPartiallyRefunded, o.PaymentStatus())
}

func TestMarkDeleted(t *testing.T) {
	o := testOrder(t)

	o.MarkDeleted()
	require.NotNil(t, o.DeletedAt())
	first := *o.DeletedAt()

	o.MarkDeleted()
	assert.Equal(t, first, *o.DeletedAt(), "soft delete stamps once")
}

// TestCheckoutScenario walks an order through the full purchase flow and
// checks the running totals at each step.
func TestCheckoutScenario(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "keyboard", "100", 10)

	require.NoError(t, o.AddItem(p, 2))
	assert.True(t, o.SubTotal().Equals(usd(t, "200")))
	assert.True(t, o.TotalAmount().Equals(usd(t, "200")))

	from, until := time.Now().Add(-time.Hour), time.Now().Add(time.Hour)
	c, err := NewCoupon("SAVE30", usd(t, "30"), from, until, 0)
	require.NoError(t, err)
	require.NoError(t, o.ApplyCoupon(c, usd(t, "30")))
	assert.True(t, o.TotalAmount().Equals(usd(t, "170")))

	require.NoError(t, o.SetShippingCost(usd(t, "15")))
	require.NoError(t, o.SetTax(usd(t, "10")))
	assert.True(t, o.TotalAmount().Equals(usd(t, "195")))

	_, err = o.Confirm()
	require.NoError(t, err)

	err = o.AddItem(p, 1)
	assert.ErrorIs(t, err, ErrOrderNotPending)
	assert.True(t, o.TotalAmount().Equals(usd(t, "195")), "totals frozen after confirm")

	_, err = o.Ship()
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, o.Status())
	require.NotNil(t, o.ShippedAt())

	_, err = o.Cancel("too late")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	assert.Equal(t, StatusShipped, o.Status())
}

func TestItemsReturnsCopy(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.AddItem(testProduct(t, "keyboard", "100", 5), 1))

	items := o.Items()
	items[0] = OrderItem{}
	assert.Equal(t, "keyboard", o.Items()[0].ProductName())
}

func TestRebuildFromDTO(t *testing.T) {
	now := time.Now()
	o := RebuildFromDTO(ReconstructionDTO{
		ID:            "order-1",
		UserID:        "user-1",
		AddressID:     "addr-1",
		OrderNumber:   "ORD-20260901-ABCDEF0123",
		Status:        StatusProcessing,
		PaymentStatus: PaymentStatusPaid,
		Currency:      shared.DefaultCurrency,
		SubTotal:      usd(t, "200"),
		TotalAmount:   usd(t, "195"),
		Version:       4,
		CreatedAt:     now,
		UpdatedAt:     now,
	})

	assert.Equal(t, "order-1", o.ID())
	assert.Equal(t, StatusProcessing, o.Status())
	assert.Equal(t, 4, o.Version())
	assert.False(t, o.IsNew())

	o.IncrementVersionForSave()
	assert.Equal(t, 5, o.Version())
}
