package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/orders"
)

// OrderHandler handles the merchant order and product listings
type OrderHandler struct {
	BaseHandler
	orders *orders.Service
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(ordersSvc *orders.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: ordersSvc,
		logger: logger,
	}
}

// List returns the reconciled order list across platforms
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	merged, err := h.orders.ListOrders(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithTotal(c, toOrderResponses(merged), int64(len(merged)))
}

// ListProducts returns the product catalogs of every connected platform
// GET /api/v1/products
func (h *OrderHandler) ListProducts(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.orders.ListProducts(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithTotal(c, toProductResponses(products), int64(len(products)))
}
