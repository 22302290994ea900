package order

import "commerce/domain/shared"

// Status is the order lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusOnHold     Status = "ON_HOLD"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

// allowedTransitions is the explicit transition table. Any move not listed
// here is rejected with an invalid-transition error. Cancelled and Refunded
// have no outbound edges; cancellation is blocked once logistics commitment
// is irreversible (Shipped, Delivered).
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled, StatusOnHold},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
	StatusOnHold:     {StatusPending, StatusCancelled},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outbound transitions.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// ParseStatus converts an external status string, rejecting unknown values.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", shared.NewValidationError("order", "status", "unknown status: "+value)
	}
	return s, nil
}

// PaymentStatus mirrors the payment outcome on the order for query purposes.
// The Payment aggregate owns the authoritative payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusUnpaid            PaymentStatus = "UNPAID"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// newTransitionError builds the rejection for an order lifecycle move.
func newTransitionError(from, to Status) error {
	return shared.NewInvalidTransitionError("order", string(from), string(to))
}
