package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/orders"
	appreturns "github.com/backo/backend/internal/application/returns"
	"github.com/backo/backend/internal/application/stores"
	"github.com/backo/backend/internal/interfaces/http/dto"
)

// PublicHandler serves the unauthenticated return portal: order lookup with
// identity verification, return filing, tracking and store branding.
type PublicHandler struct {
	BaseHandler
	resolver *orders.Resolver
	returns  *appreturns.Service
	stores   *stores.Service
	logger   *zap.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(resolver *orders.Resolver, returnsSvc *appreturns.Service, storesSvc *stores.Service, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		resolver: resolver,
		returns:  returnsSvc,
		stores:   storesSvc,
		logger:   logger,
	}
}

// FindOrderRequest is the shopper order lookup payload
type FindOrderRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
	StoreURL string `json:"store_url" binding:"required"`
}

// CreateReturnRequest is the shopper return-filing payload
type CreateReturnRequest struct {
	StoreURL string `json:"store_url" binding:"required"`
	OrderID  string `json:"order_id" binding:"required"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`

	ProductName string          `json:"product_name" binding:"required"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`

	Reason              string   `json:"reason" binding:"required"`
	PreferredResolution string   `json:"preferred_resolution"`
	Notes               string   `json:"notes"`
	Photos              []string `json:"photos"`
}

// PublicStoreResponse is the branding subset visible to shoppers
type PublicStoreResponse struct {
	StoreName        string `json:"store_name"`
	StoreLogo        string `json:"store_logo,omitempty"`
	PrimaryColor     string `json:"primary_color"`
	ReturnWindowDays int    `json:"return_window_days"`
}

// FindOrder locates the shopper's order and verifies their identity
// POST /api/v1/public/find-order
func (h *PublicHandler) FindOrder(c *gin.Context) {
	var req FindOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "order_id, contact and store_url are required")
		return
	}

	matched, err := h.resolver.Resolve(c.Request.Context(), req.OrderID, req.Contact, req.StoreURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(*matched))
}

// CreateReturn files a return request
// POST /api/v1/public/returns
func (h *PublicHandler) CreateReturn(c *gin.Context) {
	var req CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "store_url, order_id, customer_email, product_name and reason are required")
		return
	}

	ret, err := h.returns.CreatePublicReturn(c.Request.Context(), appreturns.CreateReturnInput{
		StoreURL:            req.StoreURL,
		OrderID:             req.OrderID,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		ProductName:         req.ProductName,
		SKU:                 req.SKU,
		Quantity:            req.Quantity,
		Price:               req.Price,
		Reason:              req.Reason,
		PreferredResolution: req.PreferredResolution,
		Notes:               req.Notes,
		Photos:              req.Photos,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toReturnResponse(ret))
}

// TrackReturn resolves a return by its RT id for the tracking page
// GET /api/v1/public/returns/:returnId?store_url=...
func (h *PublicHandler) TrackReturn(c *gin.Context) {
	storeURL := c.Query("store_url")
	if storeURL == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "store_url is required")
		return
	}

	ret, err := h.returns.GetPublicReturn(c.Request.Context(), storeURL, c.Param("returnId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReturnResponse(ret))
}

// StoreLookup returns the branding of the store behind a portal URL
// GET /api/v1/public/store?url=...
func (h *PublicHandler) StoreLookup(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "url is required")
		return
	}

	info, err := h.stores.PublicLookup(c.Request.Context(), url)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PublicStoreResponse{
		StoreName:        info.StoreName,
		StoreLogo:        info.StoreLogo,
		PrimaryColor:     info.PrimaryColor,
		ReturnWindowDays: info.ReturnWindowDays,
	})
}
