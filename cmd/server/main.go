package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gestock/backend/internal/application/catalog"
	identityapp "github.com/gestock/backend/internal/application/identity"
	inventoryapp "github.com/gestock/backend/internal/application/inventory"
	orderingapp "github.com/gestock/backend/internal/application/ordering"
	reportapp "github.com/gestock/backend/internal/application/report"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/cache"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gestock/backend/internal/infrastructure/event"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/infrastructure/persistence"
	"github.com/gestock/backend/internal/interfaces/http/handler"
	"github.com/gestock/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GeStock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	priceChangeRepo := persistence.NewGormPriceChangeRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	historyRepo := persistence.NewGormOrderHistoryRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	workflowScope := persistence.NewGormOrderWorkflowScope(db.DB)

	// Event bus with the low-stock alert handler
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(inventoryapp.NewStockBelowThresholdHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Dashboard cache: Redis when reachable, in-process otherwise
	var dashboardCache reportapp.DashboardCache
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory dashboard cache", zap.Error(err))
		dashboardCache = cache.NewInMemoryDashboardCache()
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		dashboardCache = cache.NewRedisDashboardCache(redisClient, log)
		log.Info("Redis dashboard cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Application services
	tokens := auth.NewJWTManager(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokens, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, priceChangeRepo, log)
	stockService := inventoryapp.NewStockService(inventoryScope, stockRepo, movementRepo, eventBus, log)
	workflowService := orderingapp.NewWorkflowService(
		workflowScope, orderRepo, historyRepo, productRepo, userRepo, eventBus, log)
	dashboardService := reportapp.NewDashboardService(reportRepo, dashboardCache, log)

	engine := router.New(cfg, log, tokens, router.Handlers{
		System:   handler.NewSystemHandler(db),
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(productService),
		Stock:    handler.NewStockHandler(stockService),
		Order:    handler.NewOrderHandler(workflowService),
		Report:   handler.NewReportHandler(dashboardService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
