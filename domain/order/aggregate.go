/*
Package order - the Order aggregate, the consistency engine of the platform.

The aggregate owns its line items and enforces the financial invariants on
every mutation:

	subTotal    == sum of item total prices
	totalAmount == subTotal - couponDiscount - giftCardDiscount + shippingCost + tax
	totalAmount >= 0

Every mutator validates first and commits in memory only when the resulting
totals are consistent, so a failed call leaves the order untouched. I/O never
happens inside the aggregate; products, coupons and the like arrive already
loaded.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Order is the aggregate root. All modification of the order and its items
// goes through these methods; fields stay private.
type Order struct {
	id            string
	userID        string
	addressID     string
	orderNumber   string
	status        Status
	paymentStatus PaymentStatus
	items         []OrderItem

	currency         string
	subTotal         shared.Money
	shippingCost     shared.Money
	tax              shared.Money
	couponDiscount   shared.Money
	giftCardDiscount shared.Money
	totalAmount      shared.Money
	couponID         string

	version     int
	createdAt   time.Time
	updatedAt   time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	deletedAt   *time.Time

	isNew bool
}

// NewOrder creates an order in Pending state with no items, zero totals and
// a generated unique order number. Returns the OrderCreated event for the
// caller to dispatch after a successful save.
func NewOrder(userID, addressID string) (*Order, shared.DomainEvent, error) {
	if err := shared.GuardNotEmpty("order", "userID", userID); err != nil {
		return nil, nil, err
	}
	if err := shared.GuardNotEmpty("order", "addressID", addressID); err != nil {
		return nil, nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate order ID: %w", err)
	}
	number, err := generateOrderNumber()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	zero := shared.ZeroMoney(shared.DefaultCurrency)
	o := &Order{
		id:               id.String(),
		userID:           userID,
		addressID:        addressID,
		orderNumber:      number,
		status:           StatusPending,
		paymentStatus:    PaymentStatusUnpaid,
		items:            nil,
		currency:         shared.DefaultCurrency,
		subTotal:         zero,
		shippingCost:     zero,
		tax:              zero,
		couponDiscount:   zero,
		giftCardDiscount: zero,
		totalAmount:      zero,
		version:          0,
		createdAt:        now,
		updatedAt:        now,
		isNew:            true,
	}

	return o, NewOrderCreatedEvent(o.id, userID, number), nil
}

// generateOrderNumber produces a human-readable unique order number.
func generateOrderNumber() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix[len(suffix)-10:]), nil
}

// ============================================================================
// Item Management
// ============================================================================

// AddItem snapshots the product's current effective price, appends a line
// item and recalculates totals. Only allowed while Pending; fails when the
// product cannot serve the requested quantity.
func (o *Order) AddItem(p *product.Product, quantity int) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if err := shared.GuardPositiveInt("order", "quantity", quantity); err != nil {
		return err
	}
	if p == nil {
		return shared.NewValidationError("order", "product", "product is required")
	}
	if !p.IsActive() {
		return ErrProductUnavailable
	}
	if p.Stock() < quantity {
		return product.NewInsufficientStockError(p.ID(), quantity, p.Stock())
	}

	unitPrice := p.CurrentPrice()
	if unitPrice.Currency() != o.currency {
		return shared.NewDomainRuleError("order",
			fmt.Sprintf("product %s is priced in %s, order currency is %s", p.ID(), unitPrice.Currency(), o.currency))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate order item ID: %w", err)
	}

	item := OrderItem{
		id:          id.String(),
		orderID:     o.id,
		productID:   p.ID(),
		productName: p.Name(),
		quantity:    quantity,
		unitPrice:   unitPrice,
		totalPrice:  unitPrice.MultiplyInt(quantity),
	}

	candidate := append(o.copyItems(), item)
	return o.commitItems(candidate)
}

// RemoveItem removes a line item and recalculates totals. Pending only.
func (o *Order) RemoveItem(itemID string) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}

	candidate := o.copyItems()
	idx := -1
	for i, item := range candidate {
		if item.id == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	candidate = append(candidate[:idx], candidate[idx+1:]...)

	return o.commitItems(candidate)
}

// UpdateItemQuantity changes a line's quantity, keeping the snapshotted unit
// price, and recalculates totals. Pending only.
//
// Stock is NOT re-validated here: the aggregate has no access to the live
// product, so the application service re-checks availability and adjusts
// stock around this call.
func (o *Order) UpdateItemQuantity(itemID string, quantity int) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if err := shared.GuardPositiveInt("order", "quantity", quantity); err != nil {
		return err
	}

	candidate := o.copyItems()
	idx := -1
	for i, item := range candidate {
		if item.id == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	candidate[idx].quantity = quantity
	candidate[idx].totalPrice = candidate[idx].unitPrice.MultiplyInt(quantity)

	return o.commitItems(candidate)
}

// ============================================================================
// Discounts, Shipping, Tax
// ============================================================================

// ApplyCoupon validates the coupon against the current subtotal and stores
// the discount. Pending only.
func (o *Order) ApplyCoupon(c *Coupon, discount shared.Money) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if c == nil {
		return shared.NewValidationError("order", "coupon", "coupon is required")
	}
	if err := shared.GuardNonNegativeMoney("order", "couponDiscount", discount); err != nil {
		return err
	}
	if !c.IsValidAt(time.Now()) {
		return NewCouponNotApplicableError(c.ID(), "inactive, expired or over its usage limit")
	}
	if !c.MeetsMinimum(o.subTotal) {
		minimum, _ := c.MinimumPurchase()
		return NewCouponNotApplicableError(c.ID(),
			fmt.Sprintf("subtotal %s is below the minimum purchase amount %s", o.subTotal, minimum))
	}

	subTotal, total, err := o.computeTotals(o.items, discount, o.giftCardDiscount, o.shippingCost, o.tax)
	if err != nil {
		return err
	}

	o.couponID = c.ID()
	o.couponDiscount = discount
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

// RemoveCoupon clears the coupon reference and its discount. Pending only.
func (o *Order) RemoveCoupon() error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}

	zero := shared.ZeroMoney(o.currency)
	subTotal, total, err := o.computeTotals(o.items, zero, o.giftCardDiscount, o.shippingCost, o.tax)
	if err != nil {
		return err
	}

	o.couponID = ""
	o.couponDiscount = zero
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

// ApplyGiftCardDiscount stores a gift-card discount. The amount may not
// exceed the total at the time of application. Pending only.
func (o *Order) ApplyGiftCardDiscount(amount shared.Money) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if err := shared.GuardNonNegativeMoney("order", "giftCardDiscount", amount); err != nil {
		return err
	}
	if amount.GreaterThan(o.totalAmount) {
		return ErrDiscountExceedsTotal
	}

	subTotal, total, err := o.computeTotals(o.items, o.couponDiscount, amount, o.shippingCost, o.tax)
	if err != nil {
		return err
	}

	o.giftCardDiscount = amount
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

// SetShippingCost sets the shipping charge. Pending only, non-negative.
func (o *Order) SetShippingCost(cost shared.Money) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if err := shared.GuardNonNegativeMoney("order", "shippingCost", cost); err != nil {
		return err
	}

	subTotal, total, err := o.computeTotals(o.items, o.couponDiscount, o.giftCardDiscount, cost, o.tax)
	if err != nil {
		return err
	}

	o.shippingCost = cost
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

// SetTax sets the tax amount. Pending only, non-negative.
func (o *Order) SetTax(tax shared.Money) error {
	if o.status != StatusPending {
		return NewNotPendingError(o.status)
	}
	if err := shared.GuardNonNegativeMoney("order", "tax", tax); err != nil {
		return err
	}

	subTotal, total, err := o.computeTotals(o.items, o.couponDiscount, o.giftCardDiscount, o.shippingCost, tax)
	if err != nil {
		return err
	}

	o.tax = tax
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

// ============================================================================
// Recalculation
// ============================================================================

// computeTotals is the pure recalculation:
//
//	subTotal = sum of item total prices
//	total    = subTotal - couponDiscount - giftCardDiscount + shippingCost + tax
//
// It fails when currencies mix or the total would go negative; callers
// commit the returned values only on success, so a failed mutation never
// leaves the order half-updated.
func (o *Order) computeTotals(items []OrderItem, couponDiscount, giftCardDiscount, shippingCost, tax shared.Money) (shared.Money, shared.Money, error) {
	subTotal := shared.ZeroMoney(o.currency)
	var err error
	for _, item := range items {
		subTotal, err = subTotal.Add(item.totalPrice)
		if err != nil {
			return shared.Money{}, shared.Money{}, err
		}
	}

	total := subTotal
	for _, step := range []struct {
		amount   shared.Money
		subtract bool
	}{
		{couponDiscount, true},
		{giftCardDiscount, true},
		{shippingCost, false},
		{tax, false},
	} {
		if step.subtract {
			total, err = total.Subtract(step.amount)
		} else {
			total, err = total.Add(step.amount)
		}
		if err != nil {
			return shared.Money{}, shared.Money{}, err
		}
	}

	if total.IsNegative() {
		return shared.Money{}, shared.Money{}, NewNegativeTotalError(o.id)
	}
	return subTotal, total, nil
}

// commitItems recalculates with the candidate item slice and commits both
// the items and the totals atomically in memory.
func (o *Order) commitItems(candidate []OrderItem) error {
	subTotal, total, err := o.computeTotals(candidate, o.couponDiscount, o.giftCardDiscount, o.shippingCost, o.tax)
	if err != nil {
		return err
	}
	o.items = candidate
	o.subTotal = subTotal
	o.totalAmount = total
	o.updatedAt = time.Now()
	return nil
}

func (o *Order) copyItems() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ============================================================================
// Lifecycle
// ============================================================================

// TransitionTo moves the order to target when the transition table allows
// it. Entering Shipped stamps shippedAt; entering Delivered stamps
// deliveredAt. Status is unchanged on rejection.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("order", "status", "unknown status "+string(target))
	}
	if !o.status.CanTransitionTo(target) {
		return newTransitionError(o.status, target)
	}

	now := time.Now()
	switch target {
	case StatusShipped:
		if o.shippedAt == nil {
			o.shippedAt = &now
		}
	case StatusDelivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	}

	o.status = target
	o.updatedAt = now
	return nil
}

// Confirm moves a pending order with at least one item into Processing.
func (o *Order) Confirm() (shared.DomainEvent, error) {
	if o.status != StatusPending {
		return nil, newTransitionError(o.status, StatusProcessing)
	}
	if len(o.items) == 0 {
		return nil, ErrEmptyOrderItems
	}
	if err := o.TransitionTo(StatusProcessing); err != nil {
		return nil, err
	}
	return NewOrderConfirmedEvent(o.id, o.totalAmount), nil
}

// Ship moves a processing order into Shipped and stamps the ship date.
func (o *Order) Ship() (shared.DomainEvent, error) {
	if o.status != StatusProcessing {
		return nil, newTransitionError(o.status, StatusShipped)
	}
	if err := o.TransitionTo(StatusShipped); err != nil {
		return nil, err
	}
	return NewOrderShippedEvent(o.id, *o.shippedAt), nil
}

// Deliver moves a shipped order into Delivered and stamps the delivery date.
func (o *Order) Deliver() (shared.DomainEvent, error) {
	if o.status != StatusShipped {
		return nil, newTransitionError(o.status, StatusDelivered)
	}
	if err := o.TransitionTo(StatusDelivered); err != nil {
		return nil, err
	}
	return NewOrderDeliveredEvent(o.id, *o.deliveredAt), nil
}

// Cancel aborts the order. Blocked once the order is shipped or delivered;
// that logistics commitment is irreversible.
func (o *Order) Cancel(reason string) (shared.DomainEvent, error) {
	if err := o.TransitionTo(StatusCancelled); err != nil {
		return nil, err
	}
	return NewOrderCancelledEvent(o.id, reason), nil
}

// Refund moves a delivered order into Refunded.
func (o *Order) Refund() (shared.DomainEvent, error) {
	if o.status != StatusDelivered {
		return nil, newTransitionError(o.status, StatusRefunded)
	}
	if err := o.TransitionTo(StatusRefunded); err != nil {
		return nil, err
	}
	o.paymentStatus = PaymentStatusRefunded
	return NewOrderRefundedEvent(o.id, o.totalAmount), nil
}

// PutOnHold parks a pending order.
func (o *Order) PutOnHold() error {
	if o.status != StatusPending {
		return newTransitionError(o.status, StatusOnHold)
	}
	return o.TransitionTo(StatusOnHold)
}

// Resume returns an on-hold order to Pending.
func (o *Order) Resume() error {
	if o.status != StatusOnHold {
		return newTransitionError(o.status, StatusPending)
	}
	return o.TransitionTo(StatusPending)
}

// MarkPaid mirrors a completed payment on the order. Idempotent.
func (o *Order) MarkPaid() {
	if o.paymentStatus == PaymentStatusUnpaid {
		o.paymentStatus = PaymentStatusPaid
		o.updatedAt = time.Now()
	}
}

// MarkPartiallyRefunded mirrors a partial refund on the order.
func (o *Order) MarkPartiallyRefunded() {
	if o.paymentStatus == PaymentStatusPaid {
		o.paymentStatus = PaymentStatusPartiallyRefunded
		o.updatedAt = time.Now()
	}
}

// MarkRefunded mirrors a full payment refund on the order's payment status
// without touching the lifecycle state. Refund drives the lifecycle when
// the order is Delivered.
func (o *Order) MarkRefunded() {
	if o.paymentStatus != PaymentStatusRefunded {
		o.paymentStatus = PaymentStatusRefunded
		o.updatedAt = time.Now()
	}
}

// MarkDeleted soft-deletes the order. Orders are never hard-deleted.
func (o *Order) MarkDeleted() {
	if o.deletedAt == nil {
		now := time.Now()
		o.deletedAt = &now
		o.updatedAt = now
	}
}

// IncrementVersionForSave advances the optimistic lock token after a
// successful persistence write. Repository layer only.
func (o *Order) IncrementVersionForSave() {
	o.version++
	o.isNew = false
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string                       { return o.id }
func (o *Order) UserID() string                   { return o.userID }
func (o *Order) AddressID() string                { return o.addressID }
func (o *Order) OrderNumber() string              { return o.orderNumber }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) PaymentStatus() PaymentStatus     { return o.paymentStatus }
func (o *Order) Currency() string                 { return o.currency }
func (o *Order) SubTotal() shared.Money           { return o.subTotal }
func (o *Order) ShippingCost() shared.Money       { return o.shippingCost }
func (o *Order) Tax() shared.Money                { return o.tax }
func (o *Order) CouponDiscount() shared.Money     { return o.couponDiscount }
func (o *Order) GiftCardDiscount() shared.Money   { return o.giftCardDiscount }
func (o *Order) TotalAmount() shared.Money        { return o.totalAmount }
func (o *Order) CouponID() string                 { return o.couponID }
func (o *Order) Version() int                     { return o.version }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) ShippedAt() *time.Time            { return o.shippedAt }
func (o *Order) DeliveredAt() *time.Time          { return o.deliveredAt }
func (o *Order) DeletedAt() *time.Time            { return o.deletedAt }
func (o *Order) IsNew() bool                      { return o.isNew }

// Items returns a copy; external code cannot mutate aggregate internals.
func (o *Order) Items() []OrderItem { return o.copyItems() }

// Item returns the line with the given ID, or false.
func (o *Order) Item(itemID string) (OrderItem, bool) {
	for _, item := range o.items {
		if item.id == itemID {
			return item, true
		}
	}
	return OrderItem{}, false
}

// ============================================================================
// Reconstruction - Repository Layer Use Only
// ============================================================================

// ReconstructionDTO rebuilds an Order from storage without exposing setters.
type ReconstructionDTO struct {
	ID               string
	UserID           string
	AddressID        string
	OrderNumber      string
	Status           Status
	PaymentStatus    PaymentStatus
	Items            []OrderItem
	Currency         string
	SubTotal         shared.Money
	ShippingCost     shared.Money
	Tax              shared.Money
	CouponDiscount   shared.Money
	GiftCardDiscount shared.Money
	TotalAmount      shared.Money
	CouponID         string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	DeletedAt        *time.Time
}

// RebuildFromDTO reconstructs an Order aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:               dto.ID,
		userID:           dto.UserID,
		addressID:        dto.AddressID,
		orderNumber:      dto.OrderNumber,
		status:           dto.Status,
		paymentStatus:    dto.PaymentStatus,
		items:            dto.Items,
		currency:         dto.Currency,
		subTotal:         dto.SubTotal,
		shippingCost:     dto.ShippingCost,
		tax:              dto.Tax,
		couponDiscount:   dto.CouponDiscount,
		giftCardDiscount: dto.GiftCardDiscount,
		totalAmount:      dto.TotalAmount,
		couponID:         dto.CouponID,
		version:          dto.Version,
		createdAt:        dto.CreatedAt,
		updatedAt:        dto.UpdatedAt,
		shippedAt:        dto.ShippedAt,
		deliveredAt:      dto.DeliveredAt,
		deletedAt:        dto.DeletedAt,
		isNew:            false,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
