package order

import "time"

// CreateOrderRequest opens an empty pending order for a user.
type CreateOrderRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	AddressID string `json:"address_id" binding:"required"`
}

// AddItemRequest adds a product line to a pending order.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemQuantityRequest changes the quantity of an existing line.
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ApplyCouponRequest applies a coupon by its customer-facing code.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyGiftCardRequest applies a gift-card balance against the total.
// Amount is a decimal string, e.g. "25.00".
type ApplyGiftCardRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

// SetShippingAndTaxRequest sets the shipping charge and tax before checkout.
// Amounts are decimal strings.
type SetShippingAndTaxRequest struct {
	ShippingCost string `json:"shipping_cost" binding:"required"`
	Tax          string `json:"tax" binding:"required"`
	Currency     string `json:"currency"`
}

// ConfirmOrderRequest confirms a pending order and opens its shipment.
type ConfirmOrderRequest struct {
	ShippingProvider string `json:"shipping_provider" binding:"required"`
}

// CancelOrderRequest cancels an order with an optional reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// MoneyResponse renders an amount as a decimal string plus currency.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// OrderItemResponse is the line item view model.
type OrderItemResponse struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	TotalPrice  MoneyResponse `json:"total_price"`
}

// OrderResponse is the order view model.
type OrderResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"user_id"`
	AddressID        string              `json:"address_id"`
	OrderNumber      string              `json:"order_number"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	Items            []OrderItemResponse `json:"items"`
	SubTotal         MoneyResponse       `json:"sub_total"`
	ShippingCost     MoneyResponse       `json:"shipping_cost"`
	Tax              MoneyResponse       `json:"tax"`
	CouponDiscount   MoneyResponse       `json:"coupon_discount"`
	GiftCardDiscount MoneyResponse       `json:"gift_card_discount"`
	TotalAmount      MoneyResponse       `json:"total_amount"`
	CouponID         string              `json:"coupon_id,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	ShippedAt        *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
}
