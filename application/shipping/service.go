/*
Package shipping - fulfillment process orchestration.

Carrier tracking callbacks advance the shipment's state machine; dispatch
and delivery additionally advance the order, in the same transaction, so
the two lifecycles never observe each other half-updated.
*/
package shipping

import (
	"context"

	"commerce/domain/order"
	"commerce/domain/shared"
	"commerce/domain/shipping"
)

// ApplicationService coordinates the shipment workflow.
type ApplicationService struct {
	shipments  shipping.Repository
	orders     order.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates the shipping application service. Each write
// operation runs in a fresh unit of work from the factory.
func NewApplicationService(shipments shipping.Repository, orders order.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{shipments: shipments, orders: orders, uowFactory: uowFactory}
}

// Dispatch hands the parcel to the carrier and moves the order to Shipped.
func (s *ApplicationService) Dispatch(ctx context.Context, shippingID string, req DispatchRequest) (*ShippingResponse, error) {
	var sh *shipping.Shipping

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shipments.FindByID(ctx, shippingID)
		if err != nil {
			return err
		}

		dispatchEvt, err := sh.Ship(req.TrackingNumber)
		if err != nil {
			return err
		}
		if req.EstimatedDeliveryAt != nil {
			if err := sh.SetEstimatedDelivery(*req.EstimatedDeliveryAt); err != nil {
				return err
			}
		}
		if err := s.shipments.Save(ctx, sh); err != nil {
			return err
		}

		o, err := s.orders.FindByID(ctx, sh.OrderID())
		if err != nil {
			return err
		}
		orderEvt, err := o.Ship()
		if err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterEvents(dispatchEvt, orderEvt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toShippingResponse(sh), nil
}

// MarkInTransit records the carrier pickup scan.
func (s *ApplicationService) MarkInTransit(ctx context.Context, shippingID string) (*ShippingResponse, error) {
	sh, err := s.shipments.FindByID(ctx, shippingID)
	if err != nil {
		return nil, err
	}
	if err := sh.MarkInTransit(); err != nil {
		return nil, err
	}
	if err := s.shipments.Save(ctx, sh); err != nil {
		return nil, err
	}
	return toShippingResponse(sh), nil
}

// MarkOutForDelivery records the last-mile scan.
func (s *ApplicationService) MarkOutForDelivery(ctx context.Context, shippingID string) (*ShippingResponse, error) {
	sh, err := s.shipments.FindByID(ctx, shippingID)
	if err != nil {
		return nil, err
	}
	if err := sh.MarkOutForDelivery(); err != nil {
		return nil, err
	}
	if err := s.shipments.Save(ctx, sh); err != nil {
		return nil, err
	}
	return toShippingResponse(sh), nil
}

// Deliver records successful delivery and moves the order to Delivered.
// Replayed carrier scans are no-ops once the shipment is delivered.
func (s *ApplicationService) Deliver(ctx context.Context, shippingID string) (*ShippingResponse, error) {
	var sh *shipping.Shipping

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shipments.FindByID(ctx, shippingID)
		if err != nil {
			return err
		}

		deliveredEvt, err := sh.Deliver()
		if err != nil {
			return err
		}
		if deliveredEvt == nil {
			return nil // replayed scan, nothing changed
		}
		if err := s.shipments.Save(ctx, sh); err != nil {
			return err
		}

		o, err := s.orders.FindByID(ctx, sh.OrderID())
		if err != nil {
			return err
		}
		orderEvt, err := o.Deliver()
		if err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterEvents(deliveredEvt, orderEvt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toShippingResponse(sh), nil
}

// Return records a parcel sent back to the warehouse.
func (s *ApplicationService) Return(ctx context.Context, shippingID string, req ReturnRequest) (*ShippingResponse, error) {
	var sh *shipping.Shipping

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shipments.FindByID(ctx, shippingID)
		if err != nil {
			return err
		}

		evt, err := sh.Return(req.Reason)
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

	return toShippingResponse(sh), nil
}

// Fail records a lost or undeliverable parcel.
func (s *ApplicationService) Fail(ctx context.Context, shippingID string, req FailRequest) (*ShippingResponse, error) {
	var sh *shipping.Shipping

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shipments.FindByID(ctx, shippingID)
		if err != nil {
			return err
		}

		evt, err := sh.MarkAsFailed(req.Reason)
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

	return toShippingResponse(sh), nil
}

// GetShipment returns one shipment by ID.
func (s *ApplicationService) GetShipment(ctx context.Context, shippingID string) (*ShippingResponse, error) {
	sh, err := s.shipments.FindByID(ctx, shippingID)
	if err != nil {
		return nil, err
	}
	return toShippingResponse(sh), nil
}

// GetShipmentByOrderID returns the shipment attached to an order.
func (s *ApplicationService) GetShipmentByOrderID(ctx context.Context, orderID string) (*ShippingResponse, error) {
	sh, err := s.shipments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toShippingResponse(sh), nil
}

// Track returns the shipment carrying a tracking number.
func (s *ApplicationService) Track(ctx context.Context, trackingNumber string) (*ShippingResponse, error) {
	sh, err := s.shipments.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return toShippingResponse(sh), nil
}

func toShippingResponse(sh *shipping.Shipping) *ShippingResponse {
	return &ShippingResponse{
		ID:             sh.ID(),
		OrderID:        sh.OrderID(),
		Provider:       sh.Provider(),
		TrackingNumber: sh.TrackingNumber(),
		Status:         string(sh.Status()),
		ShippingCost: MoneyResponse{
			Amount:   sh.ShippingCost().Amount().StringFixed(2),
			Currency: sh.ShippingCost().Currency(),
		},
		FailureReason:       sh.FailureReason(),
		ShippedAt:           sh.ShippedAt(),
		EstimatedDeliveryAt: sh.EstimatedDeliveryAt(),
		DeliveredAt:         sh.DeliveredAt(),
		CreatedAt:           sh.CreatedAt(),
		UpdatedAt:           sh.UpdatedAt(),
	}
}
