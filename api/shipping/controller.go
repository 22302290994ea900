// Package shipping exposes shipment tracking over HTTP.
package shipping

import (
	"net/http"

	"commerce/api/ctxutil"
	"commerce/api/response"
	shippingapp "commerce/application/shipping"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles shipment endpoints.
type Controller struct {
	shipments *shippingapp.ApplicationService
}

func NewController(shipments *shippingapp.ApplicationService) *Controller {
	return &Controller{shipments: shipments}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/shipments")
	{
		g.GET("/:id", c.GetShipment)
		g.GET("/order/:orderId", c.GetShipmentByOrder)
		g.GET("/track/:trackingNumber", c.Track)

		g.POST("/:id/dispatch", c.Dispatch)
		g.POST("/:id/in-transit", c.MarkInTransit)
		g.POST("/:id/out-for-delivery", c.MarkOutForDelivery)
		g.POST("/:id/deliver", c.Deliver)
		g.POST("/:id/return", c.Return)
		g.POST("/:id/fail", c.Fail)
	}
}

// GetShipment returns one shipment.
// GET /api/v1/shipments/:id
func (c *Controller) GetShipment(ctx *gin.Context) {
	shippingID := ctx.Param("id")
	if shippingID == "" {
		response.HandleError(ctx, errors.BadRequest("shipment ID is required"), "shipment ID is required", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.GetShipment(ctxutil.WithRequestID(ctx), shippingID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment retrieved successfully")
}

// GetShipmentByOrder returns the shipment attached to an order.
// GET /api/v1/shipments/order/:orderId
func (c *Controller) GetShipmentByOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.GetShipmentByOrderID(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment retrieved successfully")
}

// Track looks a shipment up by tracking number.
// GET /api/v1/shipments/track/:trackingNumber
func (c *Controller) Track(ctx *gin.Context) {
	trackingNumber := ctx.Param("trackingNumber")
	if trackingNumber == "" {
		response.HandleError(ctx, errors.BadRequest("tracking number is required"), "tracking number is required", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.Track(ctxutil.WithRequestID(ctx), trackingNumber)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment retrieved successfully")
}

// Dispatch assigns a tracking number and moves the order to shipped.
// POST /api/v1/shipments/:id/dispatch
func (c *Controller) Dispatch(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	var req shippingapp.DispatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.Dispatch(ctxutil.WithRequestID(ctx), shippingID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment dispatched successfully")
}

// MarkInTransit records a carrier in-transit scan.
// POST /api/v1/shipments/:id/in-transit
func (c *Controller) MarkInTransit(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	sh, err := c.shipments.MarkInTransit(ctxutil.WithRequestID(ctx), shippingID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment marked in transit")
}

// MarkOutForDelivery records a carrier out-for-delivery scan.
// POST /api/v1/shipments/:id/out-for-delivery
func (c *Controller) MarkOutForDelivery(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	sh, err := c.shipments.MarkOutForDelivery(ctxutil.WithRequestID(ctx), shippingID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment marked out for delivery")
}

// Deliver records the delivery. Duplicate scans are accepted and ignored.
// POST /api/v1/shipments/:id/deliver
func (c *Controller) Deliver(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	sh, err := c.shipments.Deliver(ctxutil.WithRequestID(ctx), shippingID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment delivered")
}

// Return records that the parcel came back.
// POST /api/v1/shipments/:id/return
func (c *Controller) Return(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	var req shippingapp.ReturnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.Return(ctxutil.WithRequestID(ctx), shippingID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment returned")
}

// Fail records a delivery failure with its reason.
// POST /api/v1/shipments/:id/fail
func (c *Controller) Fail(ctx *gin.Context) {
	shippingID := ctx.Param("id")

	var req shippingapp.FailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	sh, err := c.shipments.Fail(ctxutil.WithRequestID(ctx), shippingID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sh, "shipment marked as failed")
}
