package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"commerce/api"
	"commerce/api/health"
	apiorder "commerce/api/order"
	apipayment "commerce/api/payment"
	apiproduct "commerce/api/product"
	apishipping "commerce/api/shipping"
	orderapp "commerce/application/order"
	paymentapp "commerce/application/payment"
	productapp "commerce/application/product"
	shippingapp "commerce/application/shipping"
	"commerce/config"
	orderdomain "commerce/domain/order"
	paymentdomain "commerce/domain/payment"
	productdomain "commerce/domain/product"
	shippingdomain "commerce/domain/shipping"
	"commerce/domain/shared"
	"commerce/infrastructure/persistence/memory"
	"commerce/infrastructure/persistence/mysql"
	"commerce/infrastructure/persistence/retry"
	"commerce/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the wired HTTP server and its dependencies.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

type repositories struct {
	orders    orderdomain.Repository
	coupons   orderdomain.CouponRepository
	products  productdomain.Repository
	payments  paymentdomain.Repository
	shipments shippingdomain.Repository
}

// NewApp builds the application from configuration. The persistence layer
// is selected by database.type: "mysql" for GORM-backed repositories with
// the transactional outbox, "memory" for the in-process stores.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type))

	var (
		db         *gorm.DB
		repos      repositories
		uowFactory shared.UnitOfWorkFactory
		err        error
	)

	switch cfg.Database.Type {
	case "mysql":
		db, repos, uowFactory, err = initMySQL(cfg)
		if err != nil {
			return nil, err
		}
	default:
		repos, uowFactory = initMemory()
	}

	orderService := orderapp.NewApplicationService(
		repos.orders, repos.coupons, repos.products, repos.shipments, uowFactory)
	paymentService := paymentapp.NewApplicationService(repos.payments, repos.orders, uowFactory)
	shippingService := shippingapp.NewApplicationService(repos.shipments, repos.orders, uowFactory)
	productService := productapp.NewApplicationService(repos.products)

	router := api.NewRouter(cfg,
		health.NewController(cfg, healthDB(db)),
		apiproduct.NewController(productService),
		apiorder.NewController(orderService),
		apipayment.NewController(paymentService),
		apishipping.NewController(shippingService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

func initMySQL(cfg *config.Config) (*gorm.DB, repositories, shared.UnitOfWorkFactory, error) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(cfg).Connect()
	if err != nil {
		return nil, repositories{}, nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, repositories{}, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, repositories{}, nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	// Auto migration in development environment only.
	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, repositories{}, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	repos := repositories{
		orders:    mysql.NewOrderRepository(db),
		coupons:   mysql.NewCouponRepository(db),
		products:  mysql.NewProductRepository(db),
		payments:  mysql.NewPaymentRepository(db),
		shipments: mysql.NewShippingRepository(db),
	}
	uowFactory := mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

	return db, repos, uowFactory, nil
}

func initMemory() (repositories, shared.UnitOfWorkFactory) {
	logger.Info("Using in-memory persistence layer")

	repos := repositories{
		orders:    memory.NewOrderRepository(),
		coupons:   memory.NewCouponRepository(),
		products:  memory.NewProductRepository(),
		payments:  memory.NewPaymentRepository(),
		shipments: memory.NewShippingRepository(),
	}
	return repos, memory.NewUnitOfWorkFactory(shared.NewEventBus())
}

func healthDB(db *gorm.DB) interface{} {
	if db == nil {
		return nil
	}
	sqlDB, _ := db.DB()
	return sqlDB
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts down within server.shutdown_timeout.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", zap.Error(err))
			}
		}
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
