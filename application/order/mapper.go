package order

import (
	"commerce/domain/order"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// parseMoney converts a decimal string from a request into a Money value.
// An empty currency falls back to the platform default.
func parseMoney(amount, currency string) (shared.Money, error) {
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return shared.Money{}, shared.NewValidationError("order", "amount", "invalid decimal amount: "+amount)
	}
	return shared.NewMoney(d, currency)
}

func toMoneyResponse(m shared.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   toMoneyResponse(item.UnitPrice()),
			TotalPrice:  toMoneyResponse(item.TotalPrice()),
		}
	}

	return &OrderResponse{
		ID:               o.ID(),
		UserID:           o.UserID(),
		AddressID:        o.AddressID(),
		OrderNumber:      o.OrderNumber(),
		Status:           string(o.Status()),
		PaymentStatus:    string(o.PaymentStatus()),
		Items:            items,
		SubTotal:         toMoneyResponse(o.SubTotal()),
		ShippingCost:     toMoneyResponse(o.ShippingCost()),
		Tax:              toMoneyResponse(o.Tax()),
		CouponDiscount:   toMoneyResponse(o.CouponDiscount()),
		GiftCardDiscount: toMoneyResponse(o.GiftCardDiscount()),
		TotalAmount:      toMoneyResponse(o.TotalAmount()),
		CouponID:         o.CouponID(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		ShippedAt:        o.ShippedAt(),
		DeliveredAt:      o.DeliveredAt(),
	}
}
