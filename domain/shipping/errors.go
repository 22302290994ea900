package shipping

import (
	"errors"

	"commerce/domain/shared"
)

var (
	// ErrShippingNotFound shipment does not exist.
	ErrShippingNotFound = errors.New("shipping not found")

	// ErrConcurrentModification optimistic lock conflict.
	ErrConcurrentModification = errors.New("shipping was modified by another transaction, please retry")
)

// NewShippingNotFoundError reports a missing shipment.
func NewShippingNotFoundError(shippingID string) error {
	return &shippingDomainError{
		sentinel: ErrShippingNotFound,
		message:  "shipping not found: " + shippingID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError reports an optimistic lock conflict.
func NewConcurrentModificationError(shippingID string) error {
	return &shippingDomainError{
		sentinel: ErrConcurrentModification,
		message:  "shipping " + shippingID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type shippingDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *shippingDomainError) Error() string { return e.message }

func (e *shippingDomainError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *shippingDomainError) Stack() []string { return shared.FormatStack(e.stack) }
