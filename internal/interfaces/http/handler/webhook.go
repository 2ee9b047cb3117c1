package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/orders"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
	"github.com/backo/backend/internal/interfaces/http/dto"
)

// WebhookHandler ingests upstream order events pushed at the per-store
// webhook URL. The URL path secret is the only authentication.
type WebhookHandler struct {
	BaseHandler
	stores store.Repository
	orders *orders.Service
	logger *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(stores store.Repository, ordersSvc *orders.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		stores: stores,
		orders: ordersSvc,
		logger: logger,
	}
}

// WebhookOrderPayload is the subset of an upstream order event we ingest.
// Unknown fields are ignored so platform payload growth never breaks intake.
type WebhookOrderPayload struct {
	PlatformOrderID string          `json:"platform_order_id"`
	OrderNumber     string          `json:"order_number"`
	Platform        string          `json:"platform"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	PlacedDate      *time.Time      `json:"placed_date"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
}

// ReceiveOrder accepts one order event
// POST /api/v1/webhooks/orders/:secret
func (h *WebhookHandler) ReceiveOrder(c *gin.Context) {
	secret := c.Param("secret")
	st, err := h.stores.FindByWebhookSecret(c.Request.Context(), secret)
	if err != nil {
		// an unknown secret gets the same answer as a missing route
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Unknown webhook endpoint")
		return
	}

	var payload WebhookOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Malformed order payload")
		return
	}

	o := toWebhookOrder(payload)
	if err := h.orders.IngestWebhookOrder(c.Request.Context(), st.ID, o); err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("webhook order ingested",
		zap.String("store_id", st.ID.String()),
		zap.String("platform", o.Platform.String()),
		zap.String("order_number", o.OrderNumber))
	h.Success(c, gin.H{"received": true})
}

func toWebhookOrder(p WebhookOrderPayload) storefront.Order {
	platform := storefront.PlatformCode(p.Platform)
	if !platform.IsValid() {
		platform = storefront.PlatformWooCommerce
	}

	status := storefront.OrderStatus(p.Status)
	if !status.IsValid() {
		status = storefront.StatusPending
	}

	placed := time.Now().UTC()
	if p.PlacedDate != nil {
		placed = *p.PlacedDate
	}

	return storefront.Order{
		PlatformOrderID: p.PlatformOrderID,
		OrderNumber:     p.OrderNumber,
		Customer: storefront.Customer{
			Name:  p.CustomerName,
			Email: p.CustomerEmail,
			Phone: p.CustomerPhone,
		},
		Amount:     p.Amount,
		Status:     status,
		PlacedDate: placed,
		Platform:   platform,
		Source:     storefront.SourceAPI,
		Contacts: storefront.ContactSources{
			OrderEmail:    p.CustomerEmail,
			CustomerPhone: p.CustomerPhone,
		},
	}
}
