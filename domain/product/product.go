/*
Package product - the pricing/stock facet of the catalog consumed by the
order core. The order aggregate depends only on current price, availability
and the stock mutation primitives; catalog concerns (images, ratings,
categorization) live outside this module.
*/
package product

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Product is an aggregate root. Fields are private; behavior is exposed
// through methods so stock and price invariants cannot be bypassed.
type Product struct {
	id            string
	name          string
	sku           string
	basePrice     shared.Money
	discountPrice *shared.Money
	stock         int
	active        bool
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	isNew bool
}

// NewProduct creates a product in active state. Base price must be positive
// and initial stock non-negative.
func NewProduct(name, sku string, basePrice shared.Money, stock int) (*Product, error) {
	if err := shared.GuardNotEmpty("product", "name", name); err != nil {
		return nil, err
	}
	if err := shared.GuardNotEmpty("product", "sku", sku); err != nil {
		return nil, err
	}
	if err := shared.GuardPositiveMoney("product", "basePrice", basePrice); err != nil {
		return nil, err
	}
	if err := shared.GuardNonNegativeInt("product", "stock", stock); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:        id.String(),
		name:      name,
		sku:       sku,
		basePrice: basePrice,
		stock:     stock,
		active:    true,
		version:   0,
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}, nil
}

// ReduceStock decrements available stock. Fails when qty is not positive or
// exceeds the current stock; the product is left unchanged on failure.
func (p *Product) ReduceStock(qty int) error {
	if err := shared.GuardPositiveInt("product", "quantity", qty); err != nil {
		return err
	}
	if qty > p.stock {
		return NewInsufficientStockError(p.id, qty, p.stock)
	}
	p.stock -= qty
	p.updatedAt = time.Now()
	return nil
}

// IncreaseStock adds qty units back to stock (restock, cancellation).
func (p *Product) IncreaseStock(qty int) error {
	if err := shared.GuardPositiveInt("product", "quantity", qty); err != nil {
		return err
	}
	p.stock += qty
	p.updatedAt = time.Now()
	return nil
}

// CurrentPrice returns the effective selling price: the discount price when
// one is set, positive, and lower than the base price, else the base price.
func (p *Product) CurrentPrice() shared.Money {
	if p.discountPrice != nil && p.discountPrice.IsPositive() && p.discountPrice.LessThan(p.basePrice) {
		return *p.discountPrice
	}
	return p.basePrice
}

// IsAvailable reports whether qty units can currently be sold.
func (p *Product) IsAvailable(qty int) bool {
	return p.active && qty > 0 && p.stock >= qty
}

// SetDiscountPrice stores a promotional price. It must be positive; whether
// it actually applies is decided by CurrentPrice (only when below base).
func (p *Product) SetDiscountPrice(price shared.Money) error {
	if err := shared.GuardPositiveMoney("product", "discountPrice", price); err != nil {
		return err
	}
	p.discountPrice = &price
	p.updatedAt = time.Now()
	return nil
}

// ClearDiscountPrice removes the promotional price.
func (p *Product) ClearDiscountPrice() {
	p.discountPrice = nil
	p.updatedAt = time.Now()
}

// Activate makes the product sellable again.
func (p *Product) Activate() {
	p.active = true
	p.updatedAt = time.Now()
}

// Deactivate removes the product from sale without touching stock.
func (p *Product) Deactivate() {
	p.active = false
	p.updatedAt = time.Now()
}

// IncrementVersionForSave advances the optimistic lock token. Called by the
// repository after a successful save.
func (p *Product) IncrementVersionForSave() {
	p.version++
	p.isNew = false
}

func (p *Product) ID() string                     { return p.id }
func (p *Product) Name() string                   { return p.name }
func (p *Product) SKU() string                    { return p.sku }
func (p *Product) BasePrice() shared.Money        { return p.basePrice }
func (p *Product) Stock() int                     { return p.stock }
func (p *Product) IsActive() bool                 { return p.active }
func (p *Product) Version() int                   { return p.version }
func (p *Product) CreatedAt() time.Time           { return p.createdAt }
func (p *Product) UpdatedAt() time.Time           { return p.updatedAt }
func (p *Product) IsNew() bool                    { return p.isNew }

// DiscountPrice returns the promotional price, or false when none is set.
func (p *Product) DiscountPrice() (shared.Money, bool) {
	if p.discountPrice == nil {
		return shared.Money{}, false
	}
	return *p.discountPrice, true
}

// ReconstructionDTO rebuilds a Product from storage. Repository layer only.
type ReconstructionDTO struct {
	ID            string
	Name          string
	SKU           string
	BasePrice     shared.Money
	DiscountPrice *shared.Money
	Stock         int
	Active        bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs a Product aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:            dto.ID,
		name:          dto.Name,
		sku:           dto.SKU,
		basePrice:     dto.BasePrice,
		discountPrice: dto.DiscountPrice,
		stock:         dto.Stock,
		active:        dto.Active,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		isNew:         false,
	}
}

var _ shared.AggregateRoot = (*Product)(nil)
