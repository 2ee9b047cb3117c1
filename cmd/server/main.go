package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/customers"
	"github.com/backo/backend/internal/application/identity"
	"github.com/backo/backend/internal/application/orders"
	appreturns "github.com/backo/backend/internal/application/returns"
	"github.com/backo/backend/internal/application/stores"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/infrastructure/auth"
	"github.com/backo/backend/internal/infrastructure/cache"
	"github.com/backo/backend/internal/infrastructure/config"
	"github.com/backo/backend/internal/infrastructure/ecommerce"
	"github.com/backo/backend/internal/infrastructure/logger"
	"github.com/backo/backend/internal/infrastructure/persistence"
	"github.com/backo/backend/internal/interfaces/http/handler"
	"github.com/backo/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithRetry(&cfg.Database, gormLog, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	credCache := newCredentialCache(cfg, log)
	defer func() {
		if err := credCache.Close(); err != nil {
			log.Error("Failed to close credential cache", zap.Error(err))
		}
	}()

	storeRepo := persistence.NewGormStoreRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)

	registry, err := newPlatformRegistry(cfg, log)
	if err != nil {
		log.Fatal("Failed to build platform registry", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	identitySvc := identity.NewService(storeRepo, jwtService, log)
	storesSvc := stores.NewService(storeRepo, registry, credCache, cfg.Cache, log)
	ordersSvc := orders.NewService(storeRepo, orderRepo, registry, log)
	resolver := orders.NewResolver(storeRepo, registry, log)
	returnsSvc := appreturns.NewService(storeRepo, returnRepo, log)
	customersSvc := customers.NewService(orderRepo, returnRepo, log)

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(cfg.App.Name, version),
		Auth:     handler.NewAuthHandler(identitySvc, log),
		Store:    handler.NewStoreHandler(storesSvc, log),
		Order:    handler.NewOrderHandler(ordersSvc, log),
		Return:   handler.NewReturnHandler(returnsSvc, log),
		Customer: handler.NewCustomerHandler(customersSvc, log),
		Public:   handler.NewPublicHandler(resolver, returnsSvc, storesSvc, log),
		Webhook:  handler.NewWebhookHandler(storeRepo, ordersSvc, log),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(handlers, router.Config{
		JWTService:  jwtService,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// credentialCache is a store.CredentialCache the server owns and must close
type credentialCache interface {
	store.CredentialCache
	Close() error
}

// newCredentialCache picks Redis when enabled and falls back to the
// in-process cache otherwise. Single-instance deployments do not need Redis.
func newCredentialCache(cfg *config.Config, log *zap.Logger) credentialCache {
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory credential cache")
		return cache.NewInMemoryCredentialCache()
	}

	redisCache, err := cache.NewRedisCredentialCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory credential cache", zap.Error(err))
		return cache.NewInMemoryCredentialCache()
	}

	log.Info("Using Redis credential cache", zap.String("addr", cfg.Redis.Addr()))
	return redisCache
}

// newPlatformRegistry wires the upstream storefront adapters
func newPlatformRegistry(cfg *config.Config, log *zap.Logger) (*ecommerce.Registry, error) {
	shopify, err := ecommerce.NewShopifyAdapter(&ecommerce.ShopifyConfig{
		APIVersion:     cfg.Upstream.ShopifyAPIVersion,
		TimeoutSeconds: cfg.Upstream.TimeoutSeconds,
		PageSize:       250,
		MaxRecords:     cfg.Upstream.MaxRecords,
	}, log)
	if err != nil {
		return nil, err
	}

	woo, err := ecommerce.NewWooCommerceAdapter(&ecommerce.WooCommerceConfig{
		TimeoutSeconds: cfg.Upstream.TimeoutSeconds,
		PageSize:       100,
		MaxRecords:     cfg.Upstream.MaxRecords,
	}, log)
	if err != nil {
		return nil, err
	}

	return ecommerce.NewRegistry(shopify, woo), nil
}
