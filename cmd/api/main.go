package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/product-store/internal/api/http"
	"github.com/spec-kit/product-store/internal/api/http/handlers"
	"github.com/spec-kit/product-store/internal/auth"
	"github.com/spec-kit/product-store/internal/config"
	"github.com/spec-kit/product-store/internal/events"
	"github.com/spec-kit/product-store/internal/observability"
	"github.com/spec-kit/product-store/internal/persistence"
	"github.com/spec-kit/product-store/internal/repository"
	"github.com/spec-kit/product-store/internal/service"
	"github.com/spec-kit/product-store/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, nil)
	userService := service.NewUserService(userRepo)
	productCache := persistence.NewProductCache(redis, time.Duration(cfg.Redis.ProductCacheTTLSec)*time.Second, logger)
	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: productRepo,
		Cache:       productCache,
		Dispatcher:  dispatcher,
	})
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo)

	cascade := worker.NewInventoryCascade(inventoryService, dispatcher, logger, metrics, cfg.Cascade)
	cascade.Register()

	authGate := auth.NewMiddleware(authService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, userService, cfg.App.Env != "development")
	productsHandler := handlers.NewProductsHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Users:     usersHandler,
		Products:  productsHandler,
		Inventory: inventoryHandler,
		AuthGate:  authGate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
