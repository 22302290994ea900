package payment

import (
	"errors"

	"commerce/domain/shared"
)

var (
	// ErrPaymentNotFound payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrRefundExceedsAmount partial refund must stay below the original
	// amount; full refunds go through Refund.
	ErrRefundExceedsAmount = errors.New("partial refund must be less than the payment amount")

	// ErrPaymentAlreadyExists an order carries at most one payment.
	ErrPaymentAlreadyExists = errors.New("payment already exists for order")

	// ErrConcurrentModification optimistic lock conflict.
	ErrConcurrentModification = errors.New("payment was modified by another transaction, please retry")
)

// NewPaymentNotFoundError reports a missing payment.
func NewPaymentNotFoundError(paymentID string) error {
	return &paymentDomainError{
		sentinel: ErrPaymentNotFound,
		message:  "payment not found: " + paymentID,
		stack:    shared.CaptureStack(3),
	}
}

// NewPaymentAlreadyExistsError reports an order that already has a payment.
func NewPaymentAlreadyExistsError(orderID string) error {
	return &paymentDomainError{
		sentinel: ErrPaymentAlreadyExists,
		message:  "payment already exists for order " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError reports an optimistic lock conflict.
func NewConcurrentModificationError(paymentID string) error {
	return &paymentDomainError{
		sentinel: ErrConcurrentModification,
		message:  "payment " + paymentID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type paymentDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *paymentDomainError) Error() string { return e.message }

func (e *paymentDomainError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *paymentDomainError) Stack() []string { return shared.FormatStack(e.stack) }
