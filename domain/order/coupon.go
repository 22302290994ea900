package order

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Coupon is the discount voucher checked at application time. The order core
// receives it already loaded; it validates the activity window, usage cap
// and minimum purchase before accepting the discount.
type Coupon struct {
	id              string
	code            string
	discount        shared.Money
	active          bool
	validFrom       time.Time
	validUntil      time.Time
	usageLimit      int // 0 means unlimited
	usedCount       int
	minimumPurchase *shared.Money
}

// NewCoupon creates an active coupon worth a flat discount amount, valid
// inside [validFrom, validUntil].
func NewCoupon(code string, discount shared.Money, validFrom, validUntil time.Time, usageLimit int) (*Coupon, error) {
	if err := shared.GuardNotEmpty("coupon", "code", code); err != nil {
		return nil, err
	}
	if err := shared.GuardPositiveMoney("coupon", "discount", discount); err != nil {
		return nil, err
	}
	if !validUntil.After(validFrom) {
		return nil, shared.NewValidationError("coupon", "validUntil", "validUntil must be after validFrom")
	}
	if err := shared.GuardNonNegativeInt("coupon", "usageLimit", usageLimit); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate coupon ID: %w", err)
	}

	return &Coupon{
		id:         id.String(),
		code:       code,
		discount:   discount,
		active:     true,
		validFrom:  validFrom,
		validUntil: validUntil,
		usageLimit: usageLimit,
	}, nil
}

// SetMinimumPurchase requires the order subtotal to reach m before the
// coupon applies.
func (c *Coupon) SetMinimumPurchase(m shared.Money) error {
	if err := shared.GuardPositiveMoney("coupon", "minimumPurchase", m); err != nil {
		return err
	}
	c.minimumPurchase = &m
	return nil
}

// Deactivate disables the coupon regardless of its validity window.
func (c *Coupon) Deactivate() { c.active = false }

// IsValidAt reports whether the coupon can be applied at t: active, inside
// the validity window and under the usage limit.
func (c *Coupon) IsValidAt(t time.Time) bool {
	if !c.active {
		return false
	}
	if t.Before(c.validFrom) || t.After(c.validUntil) {
		return false
	}
	if c.usageLimit > 0 && c.usedCount >= c.usageLimit {
		return false
	}
	return true
}

// MeetsMinimum reports whether subTotal satisfies the minimum purchase
// amount, when one is set.
func (c *Coupon) MeetsMinimum(subTotal shared.Money) bool {
	if c.minimumPurchase == nil {
		return true
	}
	return subTotal.GreaterThanOrEqual(*c.minimumPurchase)
}

// IncrementUsage records one redemption. Fails at the usage limit.
func (c *Coupon) IncrementUsage() error {
	if c.usageLimit > 0 && c.usedCount >= c.usageLimit {
		return NewCouponNotApplicableError(c.id, "usage limit reached")
	}
	c.usedCount++
	return nil
}

func (c *Coupon) ID() string             { return c.id }
func (c *Coupon) Code() string           { return c.code }
func (c *Coupon) Discount() shared.Money { return c.discount }
func (c *Coupon) IsActive() bool         { return c.active }
func (c *Coupon) ValidFrom() time.Time   { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time  { return c.validUntil }
func (c *Coupon) UsageLimit() int        { return c.usageLimit }
func (c *Coupon) UsedCount() int         { return c.usedCount }

// MinimumPurchase returns the minimum purchase amount, or false when unset.
func (c *Coupon) MinimumPurchase() (shared.Money, bool) {
	if c.minimumPurchase == nil {
		return shared.Money{}, false
	}
	return *c.minimumPurchase, true
}

// CouponReconstructionDTO rebuilds a Coupon from storage. Repository layer only.
type CouponReconstructionDTO struct {
	ID              string
	Code            string
	Discount        shared.Money
	Active          bool
	ValidFrom       time.Time
	ValidUntil      time.Time
	UsageLimit      int
	UsedCount       int
	MinimumPurchase *shared.Money
}

// RebuildCouponFromDTO reconstructs a Coupon from persisted state.
func RebuildCouponFromDTO(dto CouponReconstructionDTO) *Coupon {
	return &Coupon{
		id:              dto.ID,
		code:            dto.Code,
		discount:        dto.Discount,
		active:          dto.Active,
		validFrom:       dto.ValidFrom,
		validUntil:      dto.ValidUntil,
		usageLimit:      dto.UsageLimit,
		usedCount:       dto.UsedCount,
		minimumPurchase: dto.MinimumPurchase,
	}
}
