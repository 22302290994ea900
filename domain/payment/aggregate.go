/*
Package payment - the Payment aggregate. One payment per order; its status
machine advances independently as the gateway reports outcomes. The amount
is frozen at creation: it is the order's total at the moment payment was
initiated, never reconciled against later order mutations.
*/
package payment

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Status is the payment lifecycle state.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusProcessing        Status = "PROCESSING"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
	StatusCancelled         Status = "CANCELLED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
)

// allowedTransitions is the explicit transition table. Failed, Cancelled and
// Refunded are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:           {StatusProcessing, StatusCancelled},
	StatusProcessing:        {StatusCompleted, StatusFailed},
	StatusCompleted:         {StatusRefunded, StatusPartiallyRefunded},
	StatusPartiallyRefunded: {StatusRefunded},
	StatusFailed:            {},
	StatusCancelled:         {},
	StatusRefunded:          {},
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

// Payment is the aggregate root, one-to-one with an order.
type Payment struct {
	id             string
	orderID        string
	method         string
	provider       string
	amount         shared.Money
	refundedAmount shared.Money
	status         Status
	transactionID  string
	reference      string
	failureReason  string
	paidAt         *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	isNew bool
}

// NewPayment creates a pending payment referencing an order. The amount must
// be positive and is immutable afterwards.
func NewPayment(orderID, method, provider string, amount shared.Money) (*Payment, error) {
	if err := shared.GuardNotEmpty("payment", "orderID", orderID); err != nil {
		return nil, err
	}
	if err := shared.GuardNotEmpty("payment", "method", method); err != nil {
		return nil, err
	}
	if err := shared.GuardNotEmpty("payment", "provider", provider); err != nil {
		return nil, err
	}
	if err := shared.GuardPositiveMoney("payment", "amount", amount); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment ID: %w", err)
	}

	now := time.Now()
	return &Payment{
		id:             id.String(),
		orderID:        orderID,
		method:         method,
		provider:       provider,
		amount:         amount,
		refundedAmount: shared.ZeroMoney(amount.Currency()),
		status:         StatusPending,
		version:        0,
		createdAt:      now,
		updatedAt:      now,
		isNew:          true,
	}, nil
}

// transitionTo applies the table check shared by every operation.
func (p *Payment) transitionTo(target Status) error {
	if !p.status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError("payment", string(p.status), string(target))
	}
	p.status = target
	p.updatedAt = time.Now()
	return nil
}

// Process hands the payment to the gateway (Pending -> Processing).
func (p *Payment) Process() error {
	if p.status != StatusPending {
		return shared.NewInvalidTransitionError("payment", string(p.status), string(StatusProcessing))
	}
	return p.transitionTo(StatusProcessing)
}

// Complete records a successful gateway outcome (Processing -> Completed).
// Requires a non-empty transaction ID and stamps paidAt.
func (p *Payment) Complete(transactionID, reference string) (shared.DomainEvent, error) {
	if err := shared.GuardNotEmpty("payment", "transactionID", transactionID); err != nil {
		return nil, err
	}
	if p.status != StatusProcessing {
		return nil, shared.NewInvalidTransitionError("payment", string(p.status), string(StatusCompleted))
	}
	if err := p.transitionTo(StatusCompleted); err != nil {
		return nil, err
	}

	now := time.Now()
	p.transactionID = transactionID
	p.reference = reference
	p.paidAt = &now
	return NewPaymentCompletedEvent(p.id, p.orderID, p.amount, transactionID), nil
}

// Fail records a gateway failure (Processing -> Failed).
func (p *Payment) Fail(reason string) (shared.DomainEvent, error) {
	if err := shared.GuardNotEmpty("payment", "reason", reason); err != nil {
		return nil, err
	}
	if p.status != StatusProcessing {
		return nil, shared.NewInvalidTransitionError("payment", string(p.status), string(StatusFailed))
	}
	if err := p.transitionTo(StatusFailed); err != nil {
		return nil, err
	}
	p.failureReason = reason
	return NewPaymentFailedEvent(p.id, p.orderID, reason), nil
}

// Cancel aborts a payment that was never processed (Pending -> Cancelled).
func (p *Payment) Cancel(reason string) (shared.DomainEvent, error) {
	if p.status != StatusPending {
		return nil, shared.NewInvalidTransitionError("payment", string(p.status), string(StatusCancelled))
	}
	if err := p.transitionTo(StatusCancelled); err != nil {
		return nil, err
	}
	p.failureReason = reason
	return NewPaymentCancelledEvent(p.id, p.orderID, reason), nil
}

// Refund returns the full amount (Completed or PartiallyRefunded -> Refunded).
func (p *Payment) Refund() (shared.DomainEvent, error) {
	if p.status != StatusCompleted && p.status != StatusPartiallyRefunded {
		return nil, shared.NewInvalidTransitionError("payment", string(p.status), string(StatusRefunded))
	}
	if err := p.transitionTo(StatusRefunded); err != nil {
		return nil, err
	}
	p.refundedAmount = p.amount
	return NewPaymentRefundedEvent(p.id, p.orderID, p.amount), nil
}

// PartiallyRefund returns part of the amount (Completed ->
// PartiallyRefunded). The refund must be positive and strictly below the
// original amount; a full refund goes through Refund.
func (p *Payment) PartiallyRefund(amount shared.Money) (shared.DomainEvent, error) {
	if err := shared.GuardPositiveMoney("payment", "refundAmount", amount); err != nil {
		return nil, err
	}
	if amount.Currency() != p.amount.Currency() {
		return nil, shared.NewDomainRuleError("payment", "refund currency must match the payment currency")
	}
	if amount.GreaterThanOrEqual(p.amount) {
		return nil, ErrRefundExceedsAmount
	}
	if p.status != StatusCompleted {
		return nil, shared.NewInvalidTransitionError("payment", string(p.status), string(StatusPartiallyRefunded))
	}
	if err := p.transitionTo(StatusPartiallyRefunded); err != nil {
		return nil, err
	}
	p.refundedAmount = amount
	return NewPaymentPartiallyRefundedEvent(p.id, p.orderID, amount), nil
}

// IncrementVersionForSave advances the optimistic lock token. Repository
// layer only.
func (p *Payment) IncrementVersionForSave() {
	p.version++
	p.isNew = false
}

func (p *Payment) ID() string                     { return p.id }
func (p *Payment) OrderID() string                { return p.orderID }
func (p *Payment) Method() string                 { return p.method }
func (p *Payment) Provider() string               { return p.provider }
func (p *Payment) Amount() shared.Money           { return p.amount }
func (p *Payment) RefundedAmount() shared.Money   { return p.refundedAmount }
func (p *Payment) Status() Status                 { return p.status }
func (p *Payment) TransactionID() string          { return p.transactionID }
func (p *Payment) Reference() string              { return p.reference }
func (p *Payment) FailureReason() string          { return p.failureReason }
func (p *Payment) PaidAt() *time.Time             { return p.paidAt }
func (p *Payment) Version() int                   { return p.version }
func (p *Payment) CreatedAt() time.Time           { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time           { return p.updatedAt }
func (p *Payment) IsNew() bool                    { return p.isNew }

// ReconstructionDTO rebuilds a Payment from storage. Repository layer only.
type ReconstructionDTO struct {
	ID             string
	OrderID        string
	Method         string
	Provider       string
	Amount         shared.Money
	RefundedAmount shared.Money
	Status         Status
	TransactionID  string
	Reference      string
	FailureReason  string
	PaidAt         *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RebuildFromDTO reconstructs a Payment aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Payment {
	return &Payment{
		id:             dto.ID,
		orderID:        dto.OrderID,
		method:         dto.Method,
		provider:       dto.Provider,
		amount:         dto.Amount,
		refundedAmount: dto.RefundedAmount,
		status:         dto.Status,
		transactionID:  dto.TransactionID,
		reference:      dto.Reference,
		failureReason:  dto.FailureReason,
		paidAt:         dto.PaidAt,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
		isNew:          false,
	}
}

var _ shared.AggregateRoot = (*Payment)(nil)
