package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/stores"
	"github.com/backo/backend/internal/domain/storefront"
	"github.com/backo/backend/internal/interfaces/http/dto"
)

// StoreHandler handles the merchant's own store: setup, platform connections
// and integration status
type StoreHandler struct {
	BaseHandler
	stores *stores.Service
	logger *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storesSvc *stores.Service, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		stores: storesSvc,
		logger: logger,
	}
}

// SetupRequest is the onboarding payload
type SetupRequest struct {
	StoreName string `json:"store_name" binding:"required"`
	StoreURL  string `json:"store_url" binding:"required"`
	StoreLogo string `json:"store_logo"`
}

// ConnectShopifyRequest carries Shopify Admin API credentials
type ConnectShopifyRequest struct {
	ShopDomain  string `json:"shop_domain" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

// ConnectWooRequest carries WooCommerce REST credentials
type ConnectWooRequest struct {
	StoreURL       string `json:"store_url" binding:"required"`
	ConsumerKey    string `json:"consumer_key" binding:"required"`
	ConsumerSecret string `json:"consumer_secret" binding:"required"`
}

// IntegrationStatusResponse reports the verified platform connections
type IntegrationStatusResponse struct {
	Shopify     bool `json:"shopify"`
	WooCommerce bool `json:"woocommerce"`
}

// Get returns the merchant's store
// GET /api/v1/store
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	st, err := h.stores.Get(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(st))
}

// Setup completes onboarding
// POST /api/v1/store/setup
func (h *StoreHandler) Setup(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "store_name and store_url are required")
		return
	}

	st, err := h.stores.CompleteSetup(c.Request.Context(), storeID, req.StoreName, req.StoreURL, req.StoreLogo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(st))
}

// ConnectShopify verifies and stores Shopify credentials
// POST /api/v1/store/integrations/shopify
func (h *StoreHandler) ConnectShopify(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConnectShopifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "shop_domain and access_token are required")
		return
	}

	st, err := h.stores.ConnectShopify(c.Request.Context(), storeID, req.ShopDomain, req.AccessToken)
	if err != nil {
		h.handleConnectError(c, err)
		return
	}
	h.Success(c, toStoreResponse(st))
}

// ConnectWooCommerce verifies and stores WooCommerce credentials
// POST /api/v1/store/integrations/woocommerce
func (h *StoreHandler) ConnectWooCommerce(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConnectWooRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "store_url, consumer_key and consumer_secret are required")
		return
	}

	st, err := h.stores.ConnectWooCommerce(c.Request.Context(), storeID, req.StoreURL, req.ConsumerKey, req.ConsumerSecret)
	if err != nil {
		h.handleConnectError(c, err)
		return
	}
	h.Success(c, toStoreResponse(st))
}

// Disconnect drops the credentials of one platform
// DELETE /api/v1/store/integrations/:platform
func (h *StoreHandler) Disconnect(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	platform := storefront.PlatformCode(c.Param("platform"))
	if !platform.IsValid() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Unknown platform")
		return
	}

	st, err := h.stores.Disconnect(c.Request.Context(), storeID, platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(st))
}

// Status reports the verified integration state
// GET /api/v1/store/integrations
func (h *StoreHandler) Status(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	status, err := h.stores.Status(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, IntegrationStatusResponse{
		Shopify:     status.Shopify,
		WooCommerce: status.WooCommerce,
	})
}

// handleConnectError maps verification failures to a client-facing 400
// without echoing any part of the submitted credentials
func (h *StoreHandler) handleConnectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storefront.ErrPlatformAuthFailed):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "The platform rejected these credentials")
	case errors.Is(err, storefront.ErrPlatformUnavailable),
		errors.Is(err, storefront.ErrPlatformRequestFailed),
		errors.Is(err, storefront.ErrPlatformInvalidResponse):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamFailure, "Could not reach the platform to verify the credentials")
	default:
		h.HandleError(c, err)
	}
}
