package po

import (
	"time"

	"commerce/domain/order"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// CouponPO is the coupon row.
type CouponPO struct {
	ID              string              `gorm:"primaryKey;size:64"`
	Code            string              `gorm:"size:64;uniqueIndex;not null"`
	Discount        decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Currency        string              `gorm:"size:3;not null"`
	Active          bool                `gorm:"default:true;not null"`
	ValidFrom       time.Time           `gorm:"not null"`
	ValidUntil      time.Time           `gorm:"not null"`
	UsageLimit      int                 `gorm:"default:0;not null"`
	UsedCount       int                 `gorm:"default:0;not null"`
	MinimumPurchase decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	CreatedAt       time.Time           `gorm:"autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime"`
}

func (CouponPO) TableName() string {
	return "coupons"
}

// FromCouponDomain maps the coupon to its row.
func FromCouponDomain(c *order.Coupon) *CouponPO {
	p := &CouponPO{
		ID:         c.ID(),
		Code:       c.Code(),
		Discount:   c.Discount().Amount(),
		Currency:   c.Discount().Currency(),
		Active:     c.IsActive(),
		ValidFrom:  c.ValidFrom(),
		ValidUntil: c.ValidUntil(),
		UsageLimit: c.UsageLimit(),
		UsedCount:  c.UsedCount(),
	}
	if minimum, ok := c.MinimumPurchase(); ok {
		p.MinimumPurchase = decimal.NewNullDecimal(minimum.Amount())
	}
	return p
}

// ToDomain rebuilds the coupon from its row.
func (p *CouponPO) ToDomain() *order.Coupon {
	var minimum *shared.Money
	if p.MinimumPurchase.Valid {
		m := toMoney(p.MinimumPurchase.Decimal, p.Currency)
		minimum = &m
	}

	return order.RebuildCouponFromDTO(order.CouponReconstructionDTO{
		ID:              p.ID,
		Code:            p.Code,
		Discount:        toMoney(p.Discount, p.Currency),
		Active:          p.Active,
		ValidFrom:       p.ValidFrom,
		ValidUntil:      p.ValidUntil,
		UsageLimit:      p.UsageLimit,
		UsedCount:       p.UsedCount,
		MinimumPurchase: minimum,
	})
}
