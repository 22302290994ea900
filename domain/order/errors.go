/*
Package order - order domain errors.

Design:
1. Sentinel errors support errors.Is() classification.
2. Constructors capture the stack at creation for log-time formatting.
3. No HTTP status codes or other transport concepts.
*/
package order

import (
	"errors"
	"fmt"

	"commerce/domain/shared"
)

var (
	// ErrOrderNotFound order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic lock conflict; callers should
	// reload the order and retry.
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrOrderNotPending items and discounts can only change while the
	// order is pending.
	ErrOrderNotPending = errors.New("invalid state: can only modify pending orders")

	// ErrEmptyOrderItems an order cannot be confirmed without items.
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrItemNotFound line item is not part of this order.
	ErrItemNotFound = errors.New("order item not found")

	// ErrNegativeTotal the requested mutation would drive the total below zero.
	ErrNegativeTotal = errors.New("order total cannot be negative")

	// ErrCouponNotFound no coupon carries the given code.
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponNotApplicable coupon is inactive, outside its validity
	// window, over its usage limit, or below its minimum purchase.
	ErrCouponNotApplicable = errors.New("coupon is not applicable")

	// ErrDiscountExceedsTotal gift-card discount exceeds the current total.
	ErrDiscountExceedsTotal = errors.New("discount exceeds order total")

	// ErrProductUnavailable product is inactive or cannot serve the
	// requested quantity.
	ErrProductUnavailable = errors.New("product is not available")
)

// NewOrderNotFoundError creates an order-not-found error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewCouponNotFoundError creates a coupon-not-found error with stack.
func NewCouponNotFoundError(code string) error {
	return &orderDomainError{
		sentinel: ErrCouponNotFound,
		message:  "coupon not found: " + code,
		stack:    shared.CaptureStack(3),
	}
}

// NewNotPendingError reports a mutation attempted outside the Pending state.
func NewNotPendingError(current Status) error {
	return &orderDomainError{
		sentinel: ErrOrderNotPending,
		message:  fmt.Sprintf("invalid state: can only modify pending orders, current status is %s", current),
		stack:    shared.CaptureStack(3),
	}
}

// NewCouponNotApplicableError reports why a coupon was rejected.
func NewCouponNotApplicableError(couponID, reason string) error {
	return &orderDomainError{
		sentinel: ErrCouponNotApplicable,
		message:  "coupon " + couponID + " is not applicable: " + reason,
		stack:    shared.CaptureStack(3),
	}
}

// NewNegativeTotalError reports a mutation that would produce a negative total.
func NewNegativeTotalError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrNegativeTotal,
		message:  "order " + orderID + ": total cannot be negative",
		stack:    shared.CaptureStack(3),
	}
}

type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string { return e.message }

func (e *orderDomainError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *orderDomainError) Stack() []string { return shared.FormatStack(e.stack) }
