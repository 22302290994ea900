package po

import (
	"time"

	"commerce/domain/payment"

	"github.com/shopspring/decimal"
)

// PaymentPO is the payment row.
type PaymentPO struct {
	ID             string          `gorm:"primaryKey;size:64"`
	OrderID        string          `gorm:"size:64;uniqueIndex;not null"`
	Method         string          `gorm:"size:32;not null"`
	Provider       string          `gorm:"size:64;not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RefundedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency       string          `gorm:"size:3;not null"`
	Status         string          `gorm:"size:20;not null"`
	TransactionID  string          `gorm:"size:128"`
	Reference      string          `gorm:"size:128"`
	FailureReason  string          `gorm:"size:255"`
	PaidAt         *time.Time
	Version        int       `gorm:"default:0;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (PaymentPO) TableName() string {
	return "payments"
}

// FromPaymentDomain maps the payment to its row.
func FromPaymentDomain(p *payment.Payment) *PaymentPO {
	return &PaymentPO{
		ID:             p.ID(),
		OrderID:        p.OrderID(),
		Method:         p.Method(),
		Provider:       p.Provider(),
		Amount:         p.Amount().Amount(),
		RefundedAmount: p.RefundedAmount().Amount(),
		Currency:       p.Amount().Currency(),
		Status:         string(p.Status()),
		TransactionID:  p.TransactionID(),
		Reference:      p.Reference(),
		FailureReason:  p.FailureReason(),
		PaidAt:         p.PaidAt(),
		Version:        p.Version(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// ToDomain rebuilds the payment from its row.
func (p *PaymentPO) ToDomain() *payment.Payment {
	return payment.RebuildFromDTO(payment.ReconstructionDTO{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Method:         p.Method,
		Provider:       p.Provider,
		Amount:         toMoney(p.Amount, p.Currency),
		RefundedAmount: toMoney(p.RefundedAmount, p.Currency),
		Status:         payment.Status(p.Status),
		TransactionID:  p.TransactionID,
		Reference:      p.Reference,
		FailureReason:  p.FailureReason,
		PaidAt:         p.PaidAt,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	})
}
