package api

import (
	"commerce/api/health"
	"commerce/api/middleware"
	"commerce/api/order"
	"commerce/api/payment"
	"commerce/api/product"
	"commerce/api/shipping"
	"commerce/config"

	"github.com/gin-gonic/gin"
)

// Router wires middleware and controllers onto a gin engine.
type Router struct {
	engine             *gin.Engine
	config             *config.Config
	healthController   *health.Controller
	productController  *product.Controller
	orderController    *order.Controller
	paymentController  *payment.Controller
	shippingController *shipping.Controller
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	productController *product.Controller,
	orderController *order.Controller,
	paymentController *payment.Controller,
	shippingController *shipping.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request ID must exist before anything
	// logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:             engine,
		config:             cfg,
		healthController:   healthController,
		productController:  productController,
		orderController:    orderController,
		paymentController:  paymentController,
		shippingController: shippingController,
	}
}

// SetupRoutes registers every controller under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.productController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.paymentController.RegisterRoutes(apiGroup)
		r.shippingController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
