// Package product exposes catalog management over HTTP.
package product

import (
	"net/http"

	"commerce/api/ctxutil"
	"commerce/api/response"
	productapp "commerce/application/product"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles product endpoints.
type Controller struct {
	products *productapp.ApplicationService
}

func NewController(products *productapp.ApplicationService) *Controller {
	return &Controller{products: products}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/products")
	{
		g.POST("", c.CreateProduct)
		g.GET("/:id", c.GetProduct)
		g.GET("/sku/:sku", c.GetProductBySKU)

		g.PUT("/:id/discount", c.SetDiscount)
		g.DELETE("/:id/discount", c.ClearDiscount)
		g.POST("/:id/stock", c.AdjustStock)
		g.POST("/:id/activate", c.Activate)
		g.POST("/:id/deactivate", c.Deactivate)
	}
}

// CreateProduct adds a product to the catalog.
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.products.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, p, "product created successfully")
}

// GetProduct returns one product.
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	p, err := c.products.GetProduct(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "product retrieved successfully")
}

// GetProductBySKU returns one product by SKU.
// GET /api/v1/products/sku/:sku
func (c *Controller) GetProductBySKU(ctx *gin.Context) {
	sku := ctx.Param("sku")
	if sku == "" {
		response.HandleError(ctx, errors.BadRequest("SKU is required"), "SKU is required", http.StatusBadRequest)
		return
	}

	p, err := c.products.GetProductBySKU(ctxutil.WithRequestID(ctx), sku)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "product retrieved successfully")
}

// SetDiscount puts a discount price on the product.
// PUT /api/v1/products/:id/discount
func (c *Controller) SetDiscount(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req productapp.SetDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.products.SetDiscount(ctxutil.WithRequestID(ctx), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "discount set successfully")
}

// ClearDiscount removes the discount price.
// DELETE /api/v1/products/:id/discount
func (c *Controller) ClearDiscount(ctx *gin.Context) {
	productID := ctx.Param("id")

	p, err := c.products.ClearDiscount(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "discount cleared successfully")
}

// AdjustStock applies a signed stock delta.
// POST /api/v1/products/:id/stock
func (c *Controller) AdjustStock(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req productapp.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.products.AdjustStock(ctxutil.WithRequestID(ctx), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "stock adjusted successfully")
}

// Activate puts the product on sale.
// POST /api/v1/products/:id/activate
func (c *Controller) Activate(ctx *gin.Context) {
	productID := ctx.Param("id")

	p, err := c.products.Activate(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "product activated")
}

// Deactivate pulls the product from sale.
// POST /api/v1/products/:id/deactivate
func (c *Controller) Deactivate(ctx *gin.Context) {
	productID := ctx.Param("id")

	p, err := c.products.Deactivate(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "product deactivated")
}
