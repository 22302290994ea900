package payment

import "time"

// InitiatePaymentRequest opens a payment for an order's current total.
type InitiatePaymentRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Method   string `json:"method" binding:"required"`
	Provider string `json:"provider" binding:"required"`
}

// CompletePaymentRequest records a successful gateway outcome.
type CompletePaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Reference     string `json:"reference"`
}

// FailPaymentRequest records a gateway failure.
type FailPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelPaymentRequest aborts a payment that never reached the gateway.
type CancelPaymentRequest struct {
	Reason string `json:"reason"`
}

// PartialRefundRequest refunds part of a completed payment. Amount is a
// decimal string.
type PartialRefundRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

// MoneyResponse renders an amount as a decimal string plus currency.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentResponse is the payment view model.
type PaymentResponse struct {
	ID             string        `json:"id"`
	OrderID        string        `json:"order_id"`
	Method         string        `json:"method"`
	Provider       string        `json:"provider"`
	Amount         MoneyResponse `json:"amount"`
	RefundedAmount MoneyResponse `json:"refunded_amount"`
	Status         string        `json:"status"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	Reference      string        `json:"reference,omitempty"`
	FailureReason  string        `json:"failure_reason,omitempty"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
