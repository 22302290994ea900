package po

import (
	"time"

	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// ProductPO is the product row.
type ProductPO struct {
	ID            string              `gorm:"primaryKey;size:64"`
	Name          string              `gorm:"size:255;not null"`
	SKU           string              `gorm:"size:64;uniqueIndex;not null"`
	BasePrice     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Currency      string              `gorm:"size:3;not null"`
	Stock         int                 `gorm:"default:0;not null"`
	Active        bool                `gorm:"default:true;not null"`
	Version       int                 `gorm:"default:0;not null"`
	CreatedAt     time.Time           `gorm:"autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain maps the product to its row.
func FromProductDomain(p *product.Product) *ProductPO {
	row := &ProductPO{
		ID:        p.ID(),
		Name:      p.Name(),
		SKU:       p.SKU(),
		BasePrice: p.BasePrice().Amount(),
		Currency:  p.BasePrice().Currency(),
		Stock:     p.Stock(),
		Active:    p.IsActive(),
		Version:   p.Version(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
	if discount, ok := p.DiscountPrice(); ok {
		row.DiscountPrice = decimal.NewNullDecimal(discount.Amount())
	}
	return row
}

// ToDomain rebuilds the product from its row.
func (p *ProductPO) ToDomain() *product.Product {
	var discount *shared.Money
	if p.DiscountPrice.Valid {
		m := toMoney(p.DiscountPrice.Decimal, p.Currency)
		discount = &m
	}

	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		BasePrice:     toMoney(p.BasePrice, p.Currency),
		DiscountPrice: discount,
		Stock:         p.Stock,
		Active:        p.Active,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	})
}
