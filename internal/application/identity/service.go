package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/infrastructure/auth"
)

// Service handles merchant registration and login
type Service struct {
	stores store.Repository
	tokens *auth.JWTService
	logger *zap.Logger
}

// NewService creates a new identity Service
func NewService(stores store.Repository, tokens *auth.JWTService, logger *zap.Logger) *Service {
	return &Service{
		stores: stores,
		tokens: tokens,
		logger: logger,
	}
}

// Session is a logged-in merchant with their access token
type Session struct {
	Store *store.Store
	Token *auth.AccessToken
}

// Register creates a merchant account and signs them in
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < 8 {
		return nil, shared.ErrInvalidInput
	}

	if _, err := s.stores.FindByEmail(ctx, email); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	st := store.NewStore(email, string(hash))
	if err := s.stores.Save(ctx, st); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(st.ID, st.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("merchant registered", zap.String("store_id", st.ID.String()))
	return &Session{Store: st, Token: token}, nil
}

// Login verifies the merchant password and issues an access token. The same
// generic error covers an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := s.stores.FindByEmail(ctx, email)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(st.ID, st.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Store: st, Token: token}, nil
}
