package payment

import (
	"time"

	"commerce/domain/shared"
)

// PaymentCompletedEvent is returned by Payment.Complete.
type PaymentCompletedEvent struct {
	paymentID     string
	orderID       string
	amount        shared.Money
	transactionID string
	occurredOn    time.Time
}

func NewPaymentCompletedEvent(paymentID, orderID string, amount shared.Money, transactionID string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		paymentID:     paymentID,
		orderID:       orderID,
		amount:        amount,
		transactionID: transactionID,
		occurredOn:    time.Now(),
	}
}

func (e *PaymentCompletedEvent) EventName() string      { return "payment.completed" }
func (e *PaymentCompletedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentCompletedEvent) GetAggregateID() string { return e.paymentID }
func (e *PaymentCompletedEvent) PaymentID() string      { return e.paymentID }
func (e *PaymentCompletedEvent) OrderID() string        { return e.orderID }
func (e *PaymentCompletedEvent) Amount() shared.Money   { return e.amount }
func (e *PaymentCompletedEvent) TransactionID() string  { return e.transactionID }

// PaymentFailedEvent is returned by Payment.Fail.
type PaymentFailedEvent struct {
	paymentID  string
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewPaymentFailedEvent(paymentID, orderID, reason string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		paymentID:  paymentID,
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *PaymentFailedEvent) EventName() string      { return "payment.failed" }
func (e *PaymentFailedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentFailedEvent) GetAggregateID() string { return e.paymentID }
func (e *PaymentFailedEvent) PaymentID() string      { return e.paymentID }
func (e *PaymentFailedEvent) OrderID() string        { return e.orderID }
func (e *PaymentFailedEvent) Reason() string         { return e.reason }

// PaymentCancelledEvent is returned by Payment.Cancel.
type PaymentCancelledEvent struct {
	paymentID  string
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewPaymentCancelledEvent(paymentID, orderID, reason string) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		paymentID:  paymentID,
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *PaymentCancelledEvent) EventName() string      { return "payment.cancelled" }
func (e *PaymentCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentCancelledEvent) GetAggregateID() string { return e.paymentID }
func (e *PaymentCancelledEvent) PaymentID() string      { return e.paymentID }
func (e *PaymentCancelledEvent) OrderID() string        { return e.orderID }
func (e *PaymentCancelledEvent) Reason() string         { return e.reason }

// PaymentRefundedEvent is returned by Payment.Refund.
type PaymentRefundedEvent struct {
	paymentID  string
	orderID    string
	amount     shared.Money
	occurredOn time.Time
}

func NewPaymentRefundedEvent(paymentID, orderID string, amount shared.Money) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		paymentID:  paymentID,
		orderID:    orderID,
		amount:     amount,
		occurredOn: time.Now(),
	}
}

func (e *PaymentRefundedEvent) EventName() string      { return "payment.refunded" }
func (e *PaymentRefundedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentRefundedEvent) GetAggregateID() string { return e.paymentID }
func (e *PaymentRefundedEvent) PaymentID() string      { return e.paymentID }
func (e *PaymentRefundedEvent) OrderID() string        { return e.orderID }
func (e *PaymentRefundedEvent) Amount() shared.Money   { return e.amount }

// PaymentPartiallyRefundedEvent is returned by Payment.PartiallyRefund.
type PaymentPartiallyRefundedEvent struct {
	paymentID  string
	orderID    string
	amount     shared.Money
	occurredOn time.Time
}

func NewPaymentPartiallyRefundedEvent(paymentID, orderID string, amount shared.Money) *PaymentPartiallyRefundedEvent {
	return &PaymentPartiallyRefundedEvent{
		paymentID:  paymentID,
		orderID:    orderID,
		amount:     amount,
		occurredOn: time.Now(),
	}
}

func (e *PaymentPartiallyRefundedEvent) EventName() string      { return "payment.partially_refunded" }
func (e *PaymentPartiallyRefundedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *PaymentPartiallyRefundedEvent) GetAggregateID() string { return e.paymentID }
func (e *PaymentPartiallyRefundedEvent) PaymentID() string      { return e.paymentID }
func (e *PaymentPartiallyRefundedEvent) OrderID() string        { return e.orderID }
func (e *PaymentPartiallyRefundedEvent) Amount() shared.Money   { return e.amount }
