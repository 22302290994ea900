/*
Package order exposes the order lifecycle over HTTP.

Controllers only parse parameters, call the application service and hand
the result to the response package. Binding failures return 400 directly;
business errors go through response.HandleAppError, which classifies them
and picks the status code.
*/
package order

import (
	"net/http"

	"commerce/api/ctxutil"
	"commerce/api/response"
	orderapp "commerce/application/order"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles order endpoints.
type Controller struct {
	orders *orderapp.ApplicationService
}

func NewController(orders *orderapp.ApplicationService) *Controller {
	return &Controller{orders: orders}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/orders")
	{
		g.POST("", c.CreateOrder)
		g.GET("/:id", c.GetOrder)
		g.DELETE("/:id", c.DeleteOrder)
		g.GET("/number/:number", c.GetOrderByNumber)
		g.GET("/user/:userId", c.GetUserOrders)

		g.POST("/:id/items", c.AddItem)
		g.DELETE("/:id/items/:itemId", c.RemoveItem)
		g.PUT("/:id/items/:itemId", c.UpdateItemQuantity)

		g.POST("/:id/coupon", c.ApplyCoupon)
		g.DELETE("/:id/coupon", c.RemoveCoupon)
		g.POST("/:id/gift-card", c.ApplyGiftCard)
		g.PUT("/:id/charges", c.SetShippingAndTax)

		g.POST("/:id/confirm", c.ConfirmOrder)
		g.POST("/:id/cancel", c.CancelOrder)
		g.POST("/:id/hold", c.HoldOrder)
		g.POST("/:id/resume", c.ResumeOrder)
	}
}

// CreateOrder opens an empty order for a user.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, o, "order created successfully")
}

// GetOrder returns one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	o, err := c.orders.GetOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// GetOrderByNumber returns one order by its business number.
// GET /api/v1/orders/number/:number
func (c *Controller) GetOrderByNumber(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		response.HandleError(ctx, errors.BadRequest("order number is required"), "order number is required", http.StatusBadRequest)
		return
	}

	o, err := c.orders.GetOrderByNumber(ctxutil.WithRequestID(ctx), number)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// GetUserOrders lists the orders of a user, optionally filtered by the
// status query parameter.
// GET /api/v1/orders/user/:userId?status=PENDING
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orders.GetUserOrders(ctxutil.WithRequestID(ctx), userID, ctx.Query("status"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "user orders retrieved successfully")
}

// AddItem puts a product into the order at its current price.
// POST /api/v1/orders/:id/items
func (c *Controller) AddItem(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.AddItem(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "item added successfully")
}

// RemoveItem takes a line out of the order.
// DELETE /api/v1/orders/:id/items/:itemId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	orderID := ctx.Param("id")
	itemID := ctx.Param("itemId")

	o, err := c.orders.RemoveItem(ctxutil.WithRequestID(ctx), orderID, itemID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "item removed successfully")
}

// UpdateItemQuantity changes the quantity of a line.
// PUT /api/v1/orders/:id/items/:itemId
func (c *Controller) UpdateItemQuantity(ctx *gin.Context) {
	orderID := ctx.Param("id")
	itemID := ctx.Param("itemId")

	var req orderapp.UpdateItemQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.UpdateItemQuantity(ctxutil.WithRequestID(ctx), orderID, itemID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "item quantity updated successfully")
}

// ApplyCoupon applies a coupon by code.
// POST /api/v1/orders/:id/coupon
func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.ApplyCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.ApplyCoupon(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "coupon applied successfully")
}

// RemoveCoupon removes the applied coupon.
// DELETE /api/v1/orders/:id/coupon
func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	orderID := ctx.Param("id")

	o, err := c.orders.RemoveCoupon(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "coupon removed successfully")
}

// ApplyGiftCard credits a gift card amount against the order.
// POST /api/v1/orders/:id/gift-card
func (c *Controller) ApplyGiftCard(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.ApplyGiftCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.ApplyGiftCard(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "gift card applied successfully")
}

// SetShippingAndTax sets the shipping cost and tax charges.
// PUT /api/v1/orders/:id/charges
func (c *Controller) SetShippingAndTax(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.SetShippingAndTaxRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.SetShippingAndTax(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "charges updated successfully")
}

// ConfirmOrder checks out the order and opens a shipment.
// POST /api/v1/orders/:id/confirm
func (c *Controller) ConfirmOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.ConfirmOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.ConfirmOrder(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order confirmed successfully")
}

// CancelOrder cancels the order and restores stock.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orders.CancelOrder(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order cancelled successfully")
}

// HoldOrder pauses a pending order.
// POST /api/v1/orders/:id/hold
func (c *Controller) HoldOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	o, err := c.orders.HoldOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order placed on hold")
}

// ResumeOrder takes an order off hold.
// POST /api/v1/orders/:id/resume
func (c *Controller) ResumeOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	o, err := c.orders.ResumeOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order resumed successfully")
}

// DeleteOrder soft deletes an order.
// DELETE /api/v1/orders/:id
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	if err := c.orders.DeleteOrder(ctxutil.WithRequestID(ctx), orderID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
