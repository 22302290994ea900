// Package product - catalog facet administration: creation, pricing and
// stock corrections outside the order flow.
package product

import (
	"context"
	"time"

	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// CreateProductRequest registers a sellable product. Price is a decimal
// string.
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	SKU      string `json:"sku" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Currency string `json:"currency"`
	Stock    int    `json:"stock" binding:"min=0"`
}

// SetDiscountRequest sets a promotional price. Price is a decimal string.
type SetDiscountRequest struct {
	Price    string `json:"price" binding:"required"`
	Currency string `json:"currency"`
}

// AdjustStockRequest corrects stock by a signed delta (recount, damage,
// supplier delivery).
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse is the product view model.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	BasePrice     string    `json:"base_price"`
	DiscountPrice string    `json:"discount_price,omitempty"`
	CurrentPrice  string    `json:"current_price"`
	Currency      string    `json:"currency"`
	Stock         int       `json:"stock"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApplicationService exposes catalog administration operations.
type ApplicationService struct {
	products product.Repository
}

// NewApplicationService creates the product application service.
func NewApplicationService(products product.Repository) *ApplicationService {
	return &ApplicationService{products: products}
}

func parsePrice(amount, currency string) (shared.Money, error) {
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return shared.Money{}, shared.NewValidationError("product", "price", "invalid decimal amount: "+amount)
	}
	return shared.NewMoney(d, currency)
}

// CreateProduct registers a new product in active state.
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := parsePrice(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	p, err := product.NewProduct(req.Name, req.SKU, price, req.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// SetDiscount stores a promotional price on a product.
func (s *ApplicationService) SetDiscount(ctx context.Context, productID string, req SetDiscountRequest) (*ProductResponse, error) {
	price, err := parsePrice(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := p.SetDiscountPrice(price); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// ClearDiscount removes the promotional price.
func (s *ApplicationService) ClearDiscount(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.ClearDiscountPrice()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// AdjustStock corrects stock by a signed delta.
func (s *ApplicationService) AdjustStock(ctx context.Context, productID string, req AdjustStockRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Delta > 0:
		err = p.IncreaseStock(req.Delta)
	case req.Delta < 0:
		err = p.ReduceStock(-req.Delta)
	default:
		err = shared.NewValidationError("product", "delta", "delta must be non-zero")
	}
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Activate makes the product sellable.
func (s *ApplicationService) Activate(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Activate()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Deactivate removes the product from sale without touching stock.
func (s *ApplicationService) Deactivate(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Deactivate()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct returns one product by ID.
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProductBySKU returns one product by SKU.
func (s *ApplicationService) GetProductBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func toProductResponse(p *product.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		SKU:          p.SKU(),
		BasePrice:    p.BasePrice().Amount().StringFixed(2),
		CurrentPrice: p.CurrentPrice().Amount().StringFixed(2),
		Currency:     p.BasePrice().Currency(),
		Stock:        p.Stock(),
		Active:       p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
	if discount, ok := p.DiscountPrice(); ok {
		resp.DiscountPrice = discount.Amount().StringFixed(2)
	}
	return resp
}
