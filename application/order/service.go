/*
Package order - order business process orchestration.

The application layer loads aggregates, invokes their behavior, persists
the results and registers the returned domain events with the unit of work,
which writes them to the outbox inside the same transaction. Events are
never published directly from here; the outbox worker relays them after
commit.

Stock bookkeeping lives here: the product's stock is reduced when a line is
added and restored when a line shrinks, is removed, or the order is
cancelled, always in the same transaction as the order write.
*/
package order

import (
	"context"

	"commerce/domain/order"
	"commerce/domain/product"
	"commerce/domain/shared"
	"commerce/domain/shipping"
)

// ApplicationService coordinates the checkout workflow across the order,
// product and shipping aggregates.
type ApplicationService struct {
	orders        order.Repository
	coupons       order.CouponRepository
	products      product.Repository
	shipments     shipping.Repository
	domainService *order.DomainService
	uowFactory    shared.UnitOfWorkFactory
}

// NewApplicationService creates the order application service. Each write
// operation runs in a fresh unit of work from the factory so concurrent
// requests never share transactional state.
func NewApplicationService(
	orders order.Repository,
	coupons order.CouponRepository,
	products product.Repository,
	shipments shipping.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orders:        orders,
		coupons:       coupons,
		products:      products,
		shipments:     shipments,
		domainService: order.NewDomainService(products, orders),
		uowFactory:    uowFactory,
	}
}

// CreateOrder opens an empty pending order.
func (s *ApplicationService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var (
			evt shared.DomainEvent
			err error
		)
		o, evt, err = order.NewOrder(req.UserID, req.AddressID)
		if err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// AddItem adds a product line to a pending order and reduces the product's
// stock in the same transaction. Both writes carry optimistic locks; a
// conflict on either rolls back the whole operation.
func (s *ApplicationService) AddItem(ctx context.Context, orderID string, req AddItemRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		p, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if err := o.AddItem(p, req.Quantity); err != nil {
			return err
		}
		if err := p.ReduceStock(req.Quantity); err != nil {
			return err
		}

		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// RemoveItem drops a line from a pending order and returns its quantity to
// the product's stock.
func (s *ApplicationService) RemoveItem(ctx context.Context, orderID, itemID string) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		item, ok := o.Item(itemID)
		if !ok {
			return order.ErrItemNotFound
		}

		if err := o.RemoveItem(itemID); err != nil {
			return err
		}

		p, err := s.products.FindByID(ctx, item.ProductID())
		if err != nil {
			return err
		}
		if err := p.IncreaseStock(item.Quantity()); err != nil {
			return err
		}

		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// UpdateItemQuantity changes a line's quantity. The aggregate does not
// re-check stock on quantity changes, so the availability check and the
// stock delta are applied here, in the same transaction.
func (s *ApplicationService) UpdateItemQuantity(ctx context.Context, orderID, itemID string, req UpdateItemQuantityRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		item, ok := o.Item(itemID)
		if !ok {
			return order.ErrItemNotFound
		}

		p, err := s.products.FindByID(ctx, item.ProductID())
		if err != nil {
			return err
		}

		delta := req.Quantity - item.Quantity()
		switch {
		case delta > 0:
			if err := p.ReduceStock(delta); err != nil {
				return err
			}
		case delta < 0:
			if err := p.IncreaseStock(-delta); err != nil {
				return err
			}
		}

		if err := o.UpdateItemQuantity(itemID, req.Quantity); err != nil {
			return err
		}

		if delta != 0 {
			if err := s.products.Save(ctx, p); err != nil {
				return err
			}
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ApplyCoupon looks the coupon up by code, applies its discount and burns
// one usage.
func (s *ApplicationService) ApplyCoupon(ctx context.Context, orderID string, req ApplyCouponRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		c, err := s.coupons.FindByCode(ctx, req.Code)
		if err != nil {
			return err
		}

		if err := o.ApplyCoupon(c, c.Discount()); err != nil {
			return err
		}
		if err := c.IncrementUsage(); err != nil {
			return err
		}

		if err := s.coupons.Save(ctx, c); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// RemoveCoupon clears the coupon from a pending order.
func (s *ApplicationService) RemoveCoupon(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.RemoveCoupon(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// ApplyGiftCard applies a gift-card balance against the order total.
func (s *ApplicationService) ApplyGiftCard(ctx context.Context, orderID string, req ApplyGiftCardRequest) (*OrderResponse, error) {
	amount, err := parseMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ApplyGiftCardDiscount(amount); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// SetShippingAndTax sets the shipping charge and tax on a pending order.
func (s *ApplicationService) SetShippingAndTax(ctx context.Context, orderID string, req SetShippingAndTaxRequest) (*OrderResponse, error) {
	cost, err := parseMoney(req.ShippingCost, req.Currency)
	if err != nil {
		return nil, err
	}
	tax, err := parseMoney(req.Tax, req.Currency)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetShippingCost(cost); err != nil {
		return nil, err
	}
	if err := o.SetTax(tax); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// ConfirmOrder checks out a pending order: the domain service re-verifies
// every line's availability, the order moves to Processing and a shipment
// is opened in Preparing, all in one transaction.
func (s *ApplicationService) ConfirmOrder(ctx context.Context, orderID string, req ConfirmOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.domainService.CanCheckOut(ctx, orderID)
		if err != nil {
			return err
		}

		evt, err := o.Confirm()
		if err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		sh, err := shipping.NewShipping(o.ID(), req.ShippingProvider, o.ShippingCost())
		if err != nil {
			return err
		}
		if err := s.shipments.Save(ctx, sh); err != nil {
			return err
		}

		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// CancelOrder aborts an order and returns every line's quantity to stock.
func (s *ApplicationService) CancelOrder(ctx context.Context, orderID string, req CancelOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		evt, err := o.Cancel(req.Reason)
		if err != nil {
			return err
		}

		for _, item := range o.Items() {
			p, err := s.products.FindByID(ctx, item.ProductID())
			if err != nil {
				return err
			}
			if err := p.IncreaseStock(item.Quantity()); err != nil {
				return err
			}
			if err := s.products.Save(ctx, p); err != nil {
				return err
			}
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterEvents(evt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// HoldOrder parks a pending order.
func (s *ApplicationService) HoldOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.PutOnHold(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// ResumeOrder returns an on-hold order to Pending.
func (s *ApplicationService) ResumeOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Resume(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// DeleteOrder soft-deletes an order; the row stays for audit queries.
func (s *ApplicationService) DeleteOrder(ctx context.Context, orderID string) error {
	return s.orders.Remove(ctx, orderID)
}

// GetOrder returns one order by ID.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetOrderByNumber returns one order by its customer-facing number.
func (s *ApplicationService) GetOrderByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orders.FindByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetUserOrders returns the orders of a user, optionally narrowed to one
// status.
func (s *ApplicationService) GetUserOrders(ctx context.Context, userID, status string) ([]*OrderResponse, error) {
	var (
		orders []*order.Order
		err    error
	)
	if status == "" {
		orders, err = s.orders.FindByUserID(ctx, userID)
	} else {
		st, parseErr := order.ParseStatus(status)
		if parseErr != nil {
			return nil, parseErr
		}
		spec := shared.And(order.NewByUserIDSpecification(userID), order.NewByStatusSpecification(st))
		orders, err = s.orders.FindBySpecification(ctx, spec)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}
