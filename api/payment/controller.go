// Package payment exposes the payment lifecycle over HTTP.
package payment

import (
	"net/http"

	"commerce/api/ctxutil"
	"commerce/api/response"
	paymentapp "commerce/application/payment"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles payment endpoints.
type Controller struct {
	payments *paymentapp.ApplicationService
}

func NewController(payments *paymentapp.ApplicationService) *Controller {
	return &Controller{payments: payments}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/payments")
	{
		g.POST("", c.InitiatePayment)
		g.GET("/:id", c.GetPayment)
		g.GET("/order/:orderId", c.GetPaymentByOrder)

		g.POST("/:id/complete", c.CompletePayment)
		g.POST("/:id/fail", c.FailPayment)
		g.POST("/:id/cancel", c.CancelPayment)
		g.POST("/:id/refund", c.RefundPayment)
		g.POST("/:id/partial-refund", c.PartiallyRefundPayment)
	}
}

// InitiatePayment opens a payment for an order's current total and hands it
// to the provider.
// POST /api/v1/payments
func (c *Controller) InitiatePayment(ctx *gin.Context) {
	var req paymentapp.InitiatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.payments.InitiatePayment(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, p, "payment initiated successfully")
}

// GetPayment returns one payment.
// GET /api/v1/payments/:id
func (c *Controller) GetPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")
	if paymentID == "" {
		response.HandleError(ctx, errors.BadRequest("payment ID is required"), "payment ID is required", http.StatusBadRequest)
		return
	}

	p, err := c.payments.GetPayment(ctxutil.WithRequestID(ctx), paymentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment retrieved successfully")
}

// GetPaymentByOrder returns the payment attached to an order.
// GET /api/v1/payments/order/:orderId
func (c *Controller) GetPaymentByOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	p, err := c.payments.GetPaymentByOrderID(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment retrieved successfully")
}

// CompletePayment records the provider's confirmation and marks the order paid.
// POST /api/v1/payments/:id/complete
func (c *Controller) CompletePayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	var req paymentapp.CompletePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.payments.CompletePayment(ctxutil.WithRequestID(ctx), paymentID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment completed successfully")
}

// FailPayment records a provider failure.
// POST /api/v1/payments/:id/fail
func (c *Controller) FailPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	var req paymentapp.FailPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.payments.FailPayment(ctxutil.WithRequestID(ctx), paymentID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment marked as failed")
}

// CancelPayment cancels a payment that has not been processed yet.
// POST /api/v1/payments/:id/cancel
func (c *Controller) CancelPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	var req paymentapp.CancelPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.payments.CancelPayment(ctxutil.WithRequestID(ctx), paymentID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment cancelled successfully")
}

// RefundPayment refunds the full captured amount.
// POST /api/v1/payments/:id/refund
func (c *Controller) RefundPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	p, err := c.payments.RefundPayment(ctxutil.WithRequestID(ctx), paymentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment refunded successfully")
}

// PartiallyRefundPayment refunds part of the captured amount.
// POST /api/v1/payments/:id/partial-refund
func (c *Controller) PartiallyRefundPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	var req paymentapp.PartialRefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.payments.PartiallyRefundPayment(ctxutil.WithRequestID(ctx), paymentID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "payment partially refunded")
}
