// Package memory holds in-process repositories for development and demos.
// Selected with database type "memory"; the service then runs without a
// MySQL instance. Single process only, no durability.
package memory

import (
	"context"
	"sync"

	"commerce/domain/order"
	"commerce/domain/payment"
	"commerce/domain/product"
	"commerce/domain/shared"
	"commerce/domain/shipping"

	"github.com/google/uuid"
)

// OrderRepository keeps orders in a map.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*order.Order)}
}

func (r *OrderRepository) NextIdentity() string {
	return uuid.New().String()
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = o
	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt() != nil {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.OrderNumber() == number && o.DeletedAt() == nil {
			return o, nil
		}
	}
	return nil, order.NewOrderNotFoundError(number)
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*order.Order
	for _, o := range r.orders {
		if o.UserID() == userID && o.DeletedAt() == nil {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *OrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*order.Order
	for _, o := range r.orders {
		if o.DeletedAt() == nil && spec.IsSatisfiedBy(ctx, o) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt() != nil {
		return order.NewOrderNotFoundError(id)
	}
	o.MarkDeleted()
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)

// CouponRepository keeps coupons in a map keyed by code.
type CouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]*order.Coupon
}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{coupons: make(map[string]*order.Coupon)}
}

func (r *CouponRepository) Save(ctx context.Context, c *order.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.Code()] = c
	return nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*order.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coupons[code]
	if !ok {
		return nil, order.NewCouponNotFoundError(code)
	}
	return c, nil
}

var _ order.CouponRepository = (*CouponRepository)(nil)

// ProductRepository keeps products in a map.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*product.Product)}
}

func (r *ProductRepository) NextIdentity() string {
	return uuid.New().String()
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID()] = p
	p.IncrementVersionForSave()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return p, nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU() == sku {
			return p, nil
		}
	}
	return nil, product.NewProductNotFoundError(sku)
}

var _ product.Repository = (*ProductRepository)(nil)

// PaymentRepository keeps payments in a map.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]*payment.Payment)}
}

func (r *PaymentRepository) NextIdentity() string {
	return uuid.New().String()
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID()] = p
	p.IncrementVersionForSave()
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, payment.NewPaymentNotFoundError(id)
	}
	return p, nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.OrderID() == orderID {
			return p, nil
		}
	}
	return nil, payment.NewPaymentNotFoundError(orderID)
}

var _ payment.Repository = (*PaymentRepository)(nil)

// ShippingRepository keeps shipments in a map.
type ShippingRepository struct {
	mu        sync.RWMutex
	shipments map[string]*shipping.Shipping
}

func NewShippingRepository() *ShippingRepository {
	return &ShippingRepository{shipments: make(map[string]*shipping.Shipping)}
}

func (r *ShippingRepository) NextIdentity() string {
	return uuid.New().String()
}

func (r *ShippingRepository) Save(ctx context.Context, s *shipping.Shipping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shipments[s.ID()] = s
	s.IncrementVersionForSave()
	return nil
}

func (r *ShippingRepository) FindByID(ctx context.Context, id string) (*shipping.Shipping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shipments[id]
	if !ok {
		return nil, shipping.NewShippingNotFoundError(id)
	}
	return s, nil
}

func (r *ShippingRepository) FindByOrderID(ctx context.Context, orderID string) (*shipping.Shipping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shipments {
		if s.OrderID() == orderID {
			return s, nil
		}
	}
	return nil, shipping.NewShippingNotFoundError(orderID)
}

func (r *ShippingRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shipments {
		if s.TrackingNumber() == trackingNumber {
			return s, nil
		}
	}
	return nil, shipping.NewShippingNotFoundError(trackingNumber)
}

var _ shipping.Repository = (*ShippingRepository)(nil)
