package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appreturns "github.com/backo/backend/internal/application/returns"
	"github.com/backo/backend/internal/domain/returns"
	"github.com/backo/backend/internal/interfaces/http/dto"
)

// ReturnHandler handles the merchant-side return operations
type ReturnHandler struct {
	BaseHandler
	returns *appreturns.Service
	logger  *zap.Logger
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnsSvc *appreturns.Service, logger *zap.Logger) *ReturnHandler {
	return &ReturnHandler{
		returns: returnsSvc,
		logger:  logger,
	}
}

// UpdateStatusRequest is the status transition payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns every return filed against the store
// GET /api/v1/returns
func (h *ReturnHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	rets, err := h.returns.List(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, toReturnResponses(rets), int64(len(rets)))
}

// Get returns one return
// GET /api/v1/returns/:id
func (h *ReturnHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid return id")
		return
	}

	ret, err := h.returns.Get(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReturnResponse(ret))
}

// UpdateStatus transitions a return through its lifecycle
// PUT /api/v1/returns/:id/status
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid return id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "status is required")
		return
	}

	ret, err := h.returns.UpdateStatus(c.Request.Context(), storeID, id, returns.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReturnResponse(ret))
}

// Delete removes a return
// DELETE /api/v1/returns/:id
func (h *ReturnHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid return id")
		return
	}

	if err := h.returns.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
