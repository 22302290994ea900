package shipping

import (
	"time"

	"commerce/domain/shared"
)

// ShipmentDispatchedEvent is returned by Shipping.Ship.
type ShipmentDispatchedEvent struct {
	shippingID     string
	orderID        string
	trackingNumber string
	shippedAt      time.Time
	occurredOn     time.Time
}

func NewShipmentDispatchedEvent(shippingID, orderID, trackingNumber string, shippedAt time.Time) *ShipmentDispatchedEvent {
	return &ShipmentDispatchedEvent{
		shippingID:     shippingID,
		orderID:        orderID,
		trackingNumber: trackingNumber,
		shippedAt:      shippedAt,
		occurredOn:     time.Now(),
	}
}

func (e *ShipmentDispatchedEvent) EventName() string      { return "shipping.dispatched" }
func (e *ShipmentDispatchedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShipmentDispatchedEvent) GetAggregateID() string { return e.shippingID }
func (e *ShipmentDispatchedEvent) ShippingID() string     { return e.shippingID }
func (e *ShipmentDispatchedEvent) OrderID() string        { return e.orderID }
func (e *ShipmentDispatchedEvent) TrackingNumber() string { return e.trackingNumber }
func (e *ShipmentDispatchedEvent) ShippedAt() time.Time   { return e.shippedAt }

// ShipmentDeliveredEvent is returned by Shipping.Deliver.
type ShipmentDeliveredEvent struct {
	shippingID  string
	orderID     string
	deliveredAt time.Time
	occurredOn  time.Time
}

func NewShipmentDeliveredEvent(shippingID, orderID string, deliveredAt time.Time) *ShipmentDeliveredEvent {
	return &ShipmentDeliveredEvent{
		shippingID:  shippingID,
		orderID:     orderID,
		deliveredAt: deliveredAt,
		occurredOn:  time.Now(),
	}
}

func (e *ShipmentDeliveredEvent) EventName() string      { return "shipping.delivered" }
func (e *ShipmentDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShipmentDeliveredEvent) GetAggregateID() string { return e.shippingID }
func (e *ShipmentDeliveredEvent) ShippingID() string     { return e.shippingID }
func (e *ShipmentDeliveredEvent) OrderID() string        { return e.orderID }
func (e *ShipmentDeliveredEvent) DeliveredAt() time.Time { return e.deliveredAt }

// ShipmentReturnedEvent is returned by Shipping.Return.
type ShipmentReturnedEvent struct {
	shippingID string
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewShipmentReturnedEvent(shippingID, orderID, reason string) *ShipmentReturnedEvent {
	return &ShipmentReturnedEvent{
		shippingID: shippingID,
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *ShipmentReturnedEvent) EventName() string      { return "shipping.returned" }
func (e *ShipmentReturnedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShipmentReturnedEvent) GetAggregateID() string { return e.shippingID }
func (e *ShipmentReturnedEvent) ShippingID() string     { return e.shippingID }
func (e *ShipmentReturnedEvent) OrderID() string        { return e.orderID }
func (e *ShipmentReturnedEvent) Reason() string         { return e.reason }

// ShipmentFailedEvent is returned by Shipping.MarkAsFailed.
type ShipmentFailedEvent struct {
	shippingID string
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewShipmentFailedEvent(shippingID, orderID, reason string) *ShipmentFailedEvent {
	return &ShipmentFailedEvent{
		shippingID: shippingID,
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *ShipmentFailedEvent) EventName() string      { return "shipping.failed" }
func (e *ShipmentFailedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShipmentFailedEvent) GetAggregateID() string { return e.shippingID }
func (e *ShipmentFailedEvent) ShippingID() string     { return e.shippingID }
func (e *ShipmentFailedEvent) OrderID() string        { return e.orderID }
func (e *ShipmentFailedEvent) Reason() string         { return e.reason }

var (
	_ shared.DomainEvent = (*ShipmentDispatchedEvent)(nil)
	_ shared.DomainEvent = (*ShipmentDeliveredEvent)(nil)
	_ shared.DomainEvent = (*ShipmentReturnedEvent)(nil)
	_ shared.DomainEvent = (*ShipmentFailedEvent)(nil)
)
