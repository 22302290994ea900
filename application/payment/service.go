/*
Package payment - payment process orchestration.

The payment amount is frozen when the payment is initiated: it is the
order's total at that moment and is never reconciled against later order
edits. Order and payment stay independently consistent; the order only
mirrors the outcome through its paymentStatus field.
*/
package payment

import (
	"context"
	"errors"

	"commerce/domain/order"
	"commerce/domain/payment"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// ApplicationService coordinates the payment workflow.
type ApplicationService struct {
	payments   payment.Repository
	orders     order.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates the payment application service. Each write
// operation runs in a fresh unit of work from the factory.
func NewApplicationService(payments payment.Repository, orders order.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{payments: payments, orders: orders, uowFactory: uowFactory}
}

// InitiatePayment creates a pending payment over the order's current total
// and immediately hands it to the gateway (Processing).
func (s *ApplicationService) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		// an order carries at most one payment
		if _, err := s.payments.FindByOrderID(ctx, o.ID()); err == nil {
			return payment.NewPaymentAlreadyExistsError(o.ID())
		} else if !errors.Is(err, payment.ErrPaymentNotFound) {
			return err
		}

		p, err = payment.NewPayment(o.ID(), req.Method, req.Provider, o.TotalAmount())
		if err != nil {
			return err
		}
		if err := p.Process(); err != nil {
			return err
		}
		return s.payments.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// CompletePayment records a successful gateway callback and mirrors the
// outcome on the order.
func (s *ApplicationService) CompletePayment(ctx context.Context, paymentID string, req CompletePaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		evt, err := p.Complete(req.TransactionID, req.Reference)
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return err
		}

		o, err := s.orders.FindByID(ctx, p.OrderID())
		if err != nil {
			return err
		}
		o.MarkPaid()
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// FailPayment records a gateway failure callback.
func (s *ApplicationService) FailPayment(ctx context.Context, paymentID string, req FailPaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		evt, err := p.Fail(req.Reason)
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// CancelPayment aborts a payment that was never processed.
func (s *ApplicationService) CancelPayment(ctx context.Context, paymentID string, req CancelPaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		evt, err := p.Cancel(req.Reason)
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// RefundPayment returns the full amount of a completed payment and mirrors
// the refund on the order: a delivered order moves to Refunded, any other
// state only updates the payment status mirror.
func (s *ApplicationService) RefundPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		evt, err := p.Refund()
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return err
		}

		o, err := s.orders.FindByID(ctx, p.OrderID())
		if err != nil {
			return err
		}
		if o.Status() == order.StatusDelivered {
			orderEvt, err := o.Refund()
			if err != nil {
				return err
			}
			uow.RegisterEvents(orderEvt)
		} else {
			o.MarkRefunded()
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// PartiallyRefundPayment returns part of a completed payment and mirrors
// the partial refund on the order.
func (s *ApplicationService) PartiallyRefundPayment(ctx context.Context, paymentID string, req PartialRefundRequest) (*PaymentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	d, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, shared.NewValidationError("payment", "amount", "invalid decimal amount: "+req.Amount)
	}
	amount, err := shared.NewMoney(d, currency)
	if err != nil {
		return nil, err
	}

	var p *payment.Payment
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		evt, err := p.PartiallyRefund(amount)
		if err != nil {
			return err
		}
		if err := s.payments.Save(ctx, p); err != nil {
			return err
		}

		o, err := s.orders.FindByID(ctx, p.OrderID())
		if err != nil {
			return err
		}
		o.MarkPartiallyRefunded()
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(p), nil
}

// GetPayment returns one payment by ID.
func (s *ApplicationService) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// GetPaymentByOrderID returns the payment attached to an order.
func (s *ApplicationService) GetPaymentByOrderID(ctx context.Context, orderID string) (*PaymentResponse, error) {
	p, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

func toPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:      p.ID(),
		OrderID: p.OrderID(),
		Method:  p.Method(),
		Provider: p.Provider(),
		Amount: MoneyResponse{
			Amount:   p.Amount().Amount().StringFixed(2),
			Currency: p.Amount().Currency(),
		},
		RefundedAmount: MoneyResponse{
			Amount:   p.RefundedAmount().Amount().StringFixed(2),
			Currency: p.RefundedAmount().Currency(),
		},
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		Reference:     p.Reference(),
		FailureReason: p.FailureReason(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
