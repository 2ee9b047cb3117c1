package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/infrastructure/auth"
	"github.com/backo/backend/internal/infrastructure/logger"
	"github.com/backo/backend/internal/interfaces/http/handler"
	"github.com/backo/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler mounted by the router
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Store    *handler.StoreHandler
	Order    *handler.OrderHandler
	Return   *handler.ReturnHandler
	Customer *handler.CustomerHandler
	Public   *handler.PublicHandler
	Webhook  *handler.WebhookHandler
}

// Config carries the router dependencies
type Config struct {
	JWTService   *auth.JWTService
	Logger       *zap.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
}

// New builds the gin engine with the full middleware chain and route table.
// The merchant dashboard routes sit behind JWT auth; the shopper portal and
// webhook intake are open but rate limited.
func New(h Handlers, cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20 // 1 MiB
	}
	engine.Use(middleware.BodyLimit(maxBody))

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:       cfg.JWTService,
		SkipPaths:        []string{"/health", "/api/v1/auth/register", "/api/v1/auth/login"},
		SkipPathPrefixes: []string{"/api/v1/public", "/api/v1/webhooks"},
		Logger:           cfg.Logger,
	}))

	engine.GET("/health", h.Health.Check)

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimit(middleware.NewRateLimiter(10, time.Minute)))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	storeGroup := api.Group("/store")
	{
		storeGroup.GET("", h.Store.Get)
		storeGroup.POST("/setup", h.Store.Setup)
		storeGroup.GET("/integrations", h.Store.Status)
		storeGroup.POST("/integrations/shopify", h.Store.ConnectShopify)
		storeGroup.POST("/integrations/woocommerce", h.Store.ConnectWooCommerce)
		storeGroup.DELETE("/integrations/:platform", h.Store.Disconnect)
	}

	api.GET("/orders", h.Order.List)
	api.GET("/products", h.Order.ListProducts)

	returnGroup := api.Group("/returns")
	{
		returnGroup.GET("", h.Return.List)
		returnGroup.GET("/:id", h.Return.Get)
		returnGroup.PUT("/:id/status", h.Return.UpdateStatus)
		returnGroup.DELETE("/:id", h.Return.Delete)
	}

	customerGroup := api.Group("/customers")
	{
		customerGroup.GET("", h.Customer.List)
		customerGroup.GET("/:email", h.Customer.Get)
	}

	publicGroup := api.Group("/public")
	publicGroup.Use(middleware.RateLimit(middleware.NewRateLimiter(60, time.Minute)))
	{
		publicGroup.POST("/find-order", h.Public.FindOrder)
		publicGroup.POST("/returns", h.Public.CreateReturn)
		publicGroup.GET("/returns/:returnId", h.Public.TrackReturn)
		publicGroup.GET("/store", h.Public.StoreLookup)
	}

	webhookGroup := api.Group("/webhooks")
	webhookGroup.Use(middleware.RateLimit(middleware.NewRateLimiter(120, time.Minute)))
	{
		webhookGroup.POST("/orders/:secret", h.Webhook.ReceiveOrder)
	}

	return engine
}
