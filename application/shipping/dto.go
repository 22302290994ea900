package shipping

import "time"

// DispatchRequest hands the parcel to the carrier.
type DispatchRequest struct {
	TrackingNumber      string     `json:"tracking_number" binding:"required"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at"`
}

// ReturnRequest records a parcel sent back.
type ReturnRequest struct {
	Reason string `json:"reason"`
}

// FailRequest records a lost or undeliverable parcel.
type FailRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MoneyResponse renders an amount as a decimal string plus currency.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ShippingResponse is the shipment view model.
type ShippingResponse struct {
	ID                  string        `json:"id"`
	OrderID             string        `json:"order_id"`
	Provider            string        `json:"provider"`
	TrackingNumber      string        `json:"tracking_number,omitempty"`
	Status              string        `json:"status"`
	ShippingCost        MoneyResponse `json:"shipping_cost"`
	FailureReason       string        `json:"failure_reason,omitempty"`
	ShippedAt           *time.Time    `json:"shipped_at,omitempty"`
	EstimatedDeliveryAt *time.Time    `json:"estimated_delivery_at,omitempty"`
	DeliveredAt         *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
