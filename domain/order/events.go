package order

import (
	"time"

	"commerce/domain/shared"
)

// OrderCreatedEvent is returned by NewOrder.
type OrderCreatedEvent struct {
	orderID     string
	userID      string
	orderNumber string
	occurredOn  time.Time
}

func NewOrderCreatedEvent(orderID, userID, orderNumber string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		orderID:     orderID,
		userID:      userID,
		orderNumber: orderNumber,
		occurredOn:  time.Now(),
	}
}

func (e *OrderCreatedEvent) EventName() string      { return "order.created" }
func (e *OrderCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCreatedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCreatedEvent) OrderID() string        { return e.orderID }
func (e *OrderCreatedEvent) UserID() string         { return e.userID }
func (e *OrderCreatedEvent) OrderNumber() string    { return e.orderNumber }

// OrderConfirmedEvent is returned by Order.Confirm.
type OrderConfirmedEvent struct {
	orderID     string
	totalAmount shared.Money
	occurredOn  time.Time
}

func NewOrderConfirmedEvent(orderID string, totalAmount shared.Money) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		orderID:     orderID,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *OrderConfirmedEvent) EventName() string         { return "order.confirmed" }
func (e *OrderConfirmedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *OrderConfirmedEvent) GetAggregateID() string    { return e.orderID }
func (e *OrderConfirmedEvent) OrderID() string           { return e.orderID }
func (e *OrderConfirmedEvent) TotalAmount() shared.Money { return e.totalAmount }

// OrderShippedEvent is returned by Order.Ship.
type OrderShippedEvent struct {
	orderID    string
	shippedAt  time.Time
	occurredOn time.Time
}

func NewOrderShippedEvent(orderID string, shippedAt time.Time) *OrderShippedEvent {
	return &OrderShippedEvent{
		orderID:    orderID,
		shippedAt:  shippedAt,
		occurredOn: time.Now(),
	}
}

func (e *OrderShippedEvent) EventName() string      { return "order.shipped" }
func (e *OrderShippedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderShippedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderShippedEvent) OrderID() string        { return e.orderID }
func (e *OrderShippedEvent) ShippedAt() time.Time   { return e.shippedAt }

// OrderDeliveredEvent is returned by Order.Deliver.
type OrderDeliveredEvent struct {
	orderID     string
	deliveredAt time.Time
	occurredOn  time.Time
}

func NewOrderDeliveredEvent(orderID string, deliveredAt time.Time) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		orderID:     orderID,
		deliveredAt: deliveredAt,
		occurredOn:  time.Now(),
	}
}

func (e *OrderDeliveredEvent) EventName() string      { return "order.delivered" }
func (e *OrderDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderDeliveredEvent) GetAggregateID() string { return e.orderID }
func (e *OrderDeliveredEvent) OrderID() string        { return e.orderID }
func (e *OrderDeliveredEvent) DeliveredAt() time.Time { return e.deliveredAt }

// OrderCancelledEvent is returned by Order.Cancel.
type OrderCancelledEvent struct {
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) Reason() string         { return e.reason }

// OrderRefundedEvent is returned by Order.Refund.
type OrderRefundedEvent struct {
	orderID    string
	amount     shared.Money
	occurredOn time.Time
}

func NewOrderRefundedEvent(orderID string, amount shared.Money) *OrderRefundedEvent {
	return &OrderRefundedEvent{
		orderID:    orderID,
		amount:     amount,
		occurredOn: time.Now(),
	}
}

func (e *OrderRefundedEvent) EventName() string      { return "order.refunded" }
func (e *OrderRefundedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderRefundedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderRefundedEvent) OrderID() string        { return e.orderID }
func (e *OrderRefundedEvent) Amount() shared.Money   { return e.amount }
