/*
Package shipping - the Shipping aggregate. One shipment per order, created
once the order is confirmed; its status machine advances as the carrier
reports tracking events, independently of the order and payment lifecycles.
*/
package shipping

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Status is the shipment lifecycle state.
type Status string

const (
	StatusPreparing      Status = "PREPARING"
	StatusShipped        Status = "SHIPPED"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusReturned       Status = "RETURNED"
	StatusFailed         Status = "FAILED"
)

// allowedTransitions is the explicit transition table. Delivered, Returned
// and Failed are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPreparing:      {StatusShipped},
	StatusShipped:        {StatusInTransit},
	StatusInTransit:      {StatusOutForDelivery, StatusReturned, StatusFailed},
	StatusOutForDelivery: {StatusDelivered, StatusReturned, StatusFailed},
	StatusDelivered:      {},
	StatusReturned:       {},
	StatusFailed:         {},
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

// Shipping is the aggregate root, one-to-one with an order.
type Shipping struct {
	id                  string
	orderID             string
	provider            string
	trackingNumber      string
	status              Status
	shippingCost        shared.Money
	failureReason       string
	shippedAt           *time.Time
	estimatedDeliveryAt *time.Time
	deliveredAt         *time.Time
	version             int
	createdAt           time.Time
	updatedAt           time.Time

	isNew bool
}

// NewShipping creates a shipment in Preparing state for a confirmed order.
func NewShipping(orderID, provider string, shippingCost shared.Money) (*Shipping, error) {
	if err := shared.GuardNotEmpty("shipping", "orderID", orderID); err != nil {
		return nil, err
	}
	if err := shared.GuardNotEmpty("shipping", "provider", provider); err != nil {
		return nil, err
	}
	if err := shared.GuardNonNegativeMoney("shipping", "shippingCost", shippingCost); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate shipping ID: %w", err)
	}

	now := time.Now()
	return &Shipping{
		id:           id.String(),
		orderID:      orderID,
		provider:     provider,
		status:       StatusPreparing,
		shippingCost: shippingCost,
		version:      0,
		createdAt:    now,
		updatedAt:    now,
		isNew:        true,
	}, nil
}

func (s *Shipping) transitionTo(target Status) error {
	if !s.status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError("shipping", string(s.status), string(target))
	}
	s.status = target
	s.updatedAt = time.Now()
	return nil
}

// Ship hands the parcel to the carrier (Preparing -> Shipped). Requires a
// tracking number and stamps the ship date.
func (s *Shipping) Ship(trackingNumber string) (shared.DomainEvent, error) {
	if err := shared.GuardNotEmpty("shipping", "trackingNumber", trackingNumber); err != nil {
		return nil, err
	}
	if s.status != StatusPreparing {
		return nil, shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusShipped))
	}
	if err := s.transitionTo(StatusShipped); err != nil {
		return nil, err
	}

	now := time.Now()
	s.trackingNumber = trackingNumber
	s.shippedAt = &now
	return NewShipmentDispatchedEvent(s.id, s.orderID, trackingNumber, now), nil
}

// MarkInTransit records the carrier pickup scan (Shipped -> InTransit).
func (s *Shipping) MarkInTransit() error {
	if s.status != StatusShipped {
		return shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusInTransit))
	}
	return s.transitionTo(StatusInTransit)
}

// MarkOutForDelivery records the last-mile scan (InTransit -> OutForDelivery).
func (s *Shipping) MarkOutForDelivery() error {
	if s.status != StatusInTransit {
		return shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusOutForDelivery))
	}
	return s.transitionTo(StatusOutForDelivery)
}

// Deliver records successful delivery (OutForDelivery -> Delivered) and
// stamps the delivery date. A second call on an already delivered shipment
// is a no-op: carriers replay delivery scans, and the original timestamp
// must not be overwritten.
func (s *Shipping) Deliver() (shared.DomainEvent, error) {
	if s.status == StatusDelivered {
		return nil, nil
	}
	if s.status != StatusOutForDelivery {
		return nil, shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusDelivered))
	}
	if err := s.transitionTo(StatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	s.deliveredAt = &now
	return NewShipmentDeliveredEvent(s.id, s.orderID, now), nil
}

// Return records a parcel sent back (InTransit or OutForDelivery -> Returned).
func (s *Shipping) Return(reason string) (shared.DomainEvent, error) {
	if s.status != StatusInTransit && s.status != StatusOutForDelivery {
		return nil, shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusReturned))
	}
	if err := s.transitionTo(StatusReturned); err != nil {
		return nil, err
	}
	s.failureReason = reason
	return NewShipmentReturnedEvent(s.id, s.orderID, reason), nil
}

// MarkAsFailed records a lost or undeliverable parcel (InTransit or
// OutForDelivery -> Failed).
func (s *Shipping) MarkAsFailed(reason string) (shared.DomainEvent, error) {
	if err := shared.GuardNotEmpty("shipping", "reason", reason); err != nil {
		return nil, err
	}
	if s.status != StatusInTransit && s.status != StatusOutForDelivery {
		return nil, shared.NewInvalidTransitionError("shipping", string(s.status), string(StatusFailed))
	}
	if err := s.transitionTo(StatusFailed); err != nil {
		return nil, err
	}
	s.failureReason = reason
	return NewShipmentFailedEvent(s.id, s.orderID, reason), nil
}

// SetEstimatedDelivery records the carrier's delivery estimate.
func (s *Shipping) SetEstimatedDelivery(t time.Time) error {
	if t.IsZero() {
		return shared.NewValidationError("shipping", "estimatedDeliveryAt", "estimated delivery time is required")
	}
	s.estimatedDeliveryAt = &t
	s.updatedAt = time.Now()
	return nil
}

// IncrementVersionForSave advances the optimistic lock token. Repository
// layer only.
func (s *Shipping) IncrementVersionForSave() {
	s.version++
	s.isNew = false
}

func (s *Shipping) ID() string                      { return s.id }
func (s *Shipping) OrderID() string                 { return s.orderID }
func (s *Shipping) Provider() string                { return s.provider }
func (s *Shipping) TrackingNumber() string          { return s.trackingNumber }
func (s *Shipping) Status() Status                  { return s.status }
func (s *Shipping) ShippingCost() shared.Money      { return s.shippingCost }
func (s *Shipping) FailureReason() string           { return s.failureReason }
func (s *Shipping) ShippedAt() *time.Time           { return s.shippedAt }
func (s *Shipping) EstimatedDeliveryAt() *time.Time { return s.estimatedDeliveryAt }
func (s *Shipping) DeliveredAt() *time.Time         { return s.deliveredAt }
func (s *Shipping) Version() int                    { return s.version }
func (s *Shipping) CreatedAt() time.Time            { return s.createdAt }
func (s *Shipping) UpdatedAt() time.Time            { return s.updatedAt }
func (s *Shipping) IsNew() bool                     { return s.isNew }

// ReconstructionDTO rebuilds a Shipping from storage. Repository layer only.
type ReconstructionDTO struct {
	ID                  string
	OrderID             string
	Provider            string
	TrackingNumber      string
	Status              Status
	ShippingCost        shared.Money
	FailureReason       string
	ShippedAt           *time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RebuildFromDTO reconstructs a Shipping aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Shipping {
	return &Shipping{
		id:                  dto.ID,
		orderID:             dto.OrderID,
		provider:            dto.Provider,
		trackingNumber:      dto.TrackingNumber,
		status:              dto.Status,
		shippingCost:        dto.ShippingCost,
		failureReason:       dto.FailureReason,
		shippedAt:           dto.ShippedAt,
		estimatedDeliveryAt: dto.EstimatedDeliveryAt,
		deliveredAt:         dto.DeliveredAt,
		version:             dto.Version,
		createdAt:           dto.CreatedAt,
		updatedAt:           dto.UpdatedAt,
		isNew:               false,
	}
}

var _ shared.AggregateRoot = (*Shipping)(nil)
