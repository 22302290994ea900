package po

import (
	"time"

	"commerce/domain/order"

	"github.com/shopspring/decimal"
)

// OrderPO is the order row. It only maps columns; GORM associations are
// prohibited to keep aggregate boundaries in the repository.
type OrderPO struct {
	ID               string          `gorm:"primaryKey;size:64"`
	UserID           string          `gorm:"size:64;index;not null"`
	AddressID        string          `gorm:"size:64;not null"`
	OrderNumber      string          `gorm:"size:32;uniqueIndex;not null"`
	Status           string          `gorm:"size:20;not null"`
	PaymentStatus    string          `gorm:"size:20;not null"`
	Currency         string          `gorm:"size:3;not null"`
	SubTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CouponDiscount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GiftCardDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CouponID         string          `gorm:"size:64"`
	Version          int             `gorm:"default:0;not null"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	DeletedAt        *time.Time `gorm:"index"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO is one order line. Rows are replaced wholesale whenever the
// parent order is saved.
type OrderItemPO struct {
	ID           string          `gorm:"primaryKey;size:64"`
	OrderID      string          `gorm:"size:64;index;not null"`
	ProductID    string          `gorm:"size:64;not null"`
	ProductName  string          `gorm:"size:255;not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain maps the aggregate to its rows.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:               o.ID(),
		UserID:           o.UserID(),
		AddressID:        o.AddressID(),
		OrderNumber:      o.OrderNumber(),
		Status:           string(o.Status()),
		PaymentStatus:    string(o.PaymentStatus()),
		Currency:         o.Currency(),
		SubTotal:         o.SubTotal().Amount(),
		ShippingCost:     o.ShippingCost().Amount(),
		Tax:              o.Tax().Amount(),
		CouponDiscount:   o.CouponDiscount().Amount(),
		GiftCardDiscount: o.GiftCardDiscount().Amount(),
		TotalAmount:      o.TotalAmount().Amount(),
		CouponID:         o.CouponID(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		ShippedAt:        o.ShippedAt(),
		DeliveredAt:      o.DeliveredAt(),
		DeletedAt:        o.DeletedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:          item.ID(),
			OrderID:     o.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			TotalPrice:  item.TotalPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain rebuilds the aggregate from its rows.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			OrderID:     itemPO.OrderID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			UnitPrice:   toMoney(itemPO.UnitPrice, itemPO.Currency),
			TotalPrice:  toMoney(itemPO.TotalPrice, itemPO.Currency),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:               p.ID,
		UserID:           p.UserID,
		AddressID:        p.AddressID,
		OrderNumber:      p.OrderNumber,
		Status:           order.Status(p.Status),
		PaymentStatus:    order.PaymentStatus(p.PaymentStatus),
		Items:            items,
		Currency:         p.Currency,
		SubTotal:         toMoney(p.SubTotal, p.Currency),
		ShippingCost:     toMoney(p.ShippingCost, p.Currency),
		Tax:              toMoney(p.Tax, p.Currency),
		CouponDiscount:   toMoney(p.CouponDiscount, p.Currency),
		GiftCardDiscount: toMoney(p.GiftCardDiscount, p.Currency),
		TotalAmount:      toMoney(p.TotalAmount, p.Currency),
		CouponID:         p.CouponID,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		ShippedAt:        p.ShippedAt,
		DeliveredAt:      p.DeliveredAt,
		DeletedAt:        p.DeletedAt,
	})
}
