package po

import (
	"time"

	"commerce/domain/shipping"

	"github.com/shopspring/decimal"
)

// ShippingPO is the shipment row.
type ShippingPO struct {
	ID                  string          `gorm:"primaryKey;size:64"`
	OrderID             string          `gorm:"size:64;uniqueIndex;not null"`
	Provider            string          `gorm:"size:64;not null"`
	TrackingNumber      string          `gorm:"size:64;index"`
	Status              string          `gorm:"size:20;not null"`
	ShippingCost        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency            string          `gorm:"size:3;not null"`
	FailureReason       string          `gorm:"size:255"`
	ShippedAt           *time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Version             int       `gorm:"default:0;not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (ShippingPO) TableName() string {
	return "shipments"
}

// FromShippingDomain maps the shipment to its row.
func FromShippingDomain(s *shipping.Shipping) *ShippingPO {
	return &ShippingPO{
		ID:                  s.ID(),
		OrderID:             s.OrderID(),
		Provider:            s.Provider(),
		TrackingNumber:      s.TrackingNumber(),
		Status:              string(s.Status()),
		ShippingCost:        s.ShippingCost().Amount(),
		Currency:            s.ShippingCost().Currency(),
		FailureReason:       s.FailureReason(),
		ShippedAt:           s.ShippedAt(),
		EstimatedDeliveryAt: s.EstimatedDeliveryAt(),
		DeliveredAt:         s.DeliveredAt(),
		Version:             s.Version(),
		CreatedAt:           s.CreatedAt(),
		UpdatedAt:           s.UpdatedAt(),
	}
}

// ToDomain rebuilds the shipment from its row.
func (p *ShippingPO) ToDomain() *shipping.Shipping {
	return shipping.RebuildFromDTO(shipping.ReconstructionDTO{
		ID:                  p.ID,
		OrderID:             p.OrderID,
		Provider:            p.Provider,
		TrackingNumber:      p.TrackingNumber,
		Status:              shipping.Status(p.Status),
		ShippingCost:        toMoney(p.ShippingCost, p.Currency),
		FailureReason:       p.FailureReason,
		ShippedAt:           p.ShippedAt,
		EstimatedDeliveryAt: p.EstimatedDeliveryAt,
		DeliveredAt:         p.DeliveredAt,
		Version:             p.Version,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	})
}
