package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/customers"
)

// CustomerHandler serves the aggregated buyer profiles
type CustomerHandler struct {
	BaseHandler
	customers *customers.Service
	logger    *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customersSvc *customers.Service, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customersSvc,
		logger:    logger,
	}
}

// CustomerResponse is the aggregated buyer view
type CustomerResponse struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	TrustScore   int    `json:"trust_score"`
	TotalOrders  int    `json:"total_orders"`
	TotalReturns int    `json:"total_returns"`
}

// List returns every known buyer with their trust score
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listed, err := h.customers.ListCustomers(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CustomerResponse, len(listed))
	for i, cust := range listed {
		out[i] = toCustomerResponse(cust)
	}
	h.SuccessWithTotal(c, out, int64(len(out)))
}

// Get returns one buyer by email
// GET /api/v1/customers/:email
func (h *CustomerHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cust, err := h.customers.GetCustomer(c.Request.Context(), storeID, c.Param("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(*cust))
}

func toCustomerResponse(cust customers.Customer) CustomerResponse {
	return CustomerResponse{
		Name:         cust.Name,
		Email:        cust.Email,
		Phone:        cust.Phone,
		TrustScore:   cust.TrustScore,
		TotalOrders:  cust.TotalOrders,
		TotalReturns: cust.TotalReturns,
	}
}
