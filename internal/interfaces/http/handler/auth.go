package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/application/identity"
	"github.com/backo/backend/internal/interfaces/http/dto"
)

// AuthHandler handles merchant registration and login
type AuthHandler struct {
	BaseHandler
	identity *identity.Service
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identitySvc *identity.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identitySvc,
		logger:   logger,
	}
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is a logged-in merchant with their token
type SessionResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	Store     StoreResponse `json:"store"`
}

// Register creates a merchant account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "A valid email and a password of at least 8 characters are required")
		return
	}

	session, err := h.identity.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toSessionResponse(session))
}

// Login authenticates a merchant
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Email and password are required")
		return
	}

	session, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSessionResponse(session))
}

func toSessionResponse(session *identity.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token.Token,
		TokenType: session.Token.TokenType,
		ExpiresAt: session.Token.ExpiresAt,
		Store:     toStoreResponse(session.Store),
	}
}
