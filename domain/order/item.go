package order

import "commerce/domain/shared"

// OrderItem is a line entity owned exclusively by one Order. It is created
// only through Order.AddItem; the unit price is a snapshot of the product's
// effective price at add time and never changes afterwards.
type OrderItem struct {
	id          string
	orderID     string
	productID   string
	productName string
	quantity    int
	unitPrice   shared.Money
	totalPrice  shared.Money
}

func (item OrderItem) ID() string               { return item.id }
func (item OrderItem) OrderID() string          { return item.orderID }
func (item OrderItem) ProductID() string        { return item.productID }
func (item OrderItem) ProductName() string      { return item.productName }
func (item OrderItem) Quantity() int            { return item.quantity }
func (item OrderItem) UnitPrice() shared.Money  { return item.unitPrice }
func (item OrderItem) TotalPrice() shared.Money { return item.totalPrice }

// ItemReconstructionDTO rebuilds an OrderItem from storage. Repository
// layer only.
type ItemReconstructionDTO struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	TotalPrice  shared.Money
}

// RebuildItemFromDTO reconstructs an OrderItem from persisted state.
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		id:          dto.ID,
		orderID:     dto.OrderID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		totalPrice:  dto.TotalPrice,
	}
}
