package product

import (
	"errors"
	"fmt"

	"commerce/domain/shared"
)

var (
	// ErrProductNotFound product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductInactive product is not available for sale.
	ErrProductInactive = errors.New("product is not active")

	// ErrConcurrentModification optimistic lock conflict; callers retry
	// with a freshly loaded aggregate.
	ErrConcurrentModification = errors.New("product was modified by another transaction, please retry")
)

// NewInsufficientStockError reports a stock shortfall with the requested and
// available quantities.
func NewInsufficientStockError(productID string, requested, available int) error {
	return &productDomainError{
		sentinel: ErrInsufficientStock,
		message: fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
			productID, requested, available),
		stack: shared.CaptureStack(3),
	}
}

// NewProductNotFoundError reports a missing product.
func NewProductNotFoundError(productID string) error {
	return &productDomainError{
		sentinel: ErrProductNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewProductInactiveError reports a product that has been deactivated.
func NewProductInactiveError(productID string) error {
	return &productDomainError{
		sentinel: ErrProductInactive,
		message:  "product is not active: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError reports an optimistic lock conflict.
func NewConcurrentModificationError(productID string) error {
	return &productDomainError{
		sentinel: ErrConcurrentModification,
		message:  "product " + productID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type productDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *productDomainError) Error() string { return e.message }

func (e *productDomainError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *productDomainError) Stack() []string { return shared.FormatStack(e.stack) }
