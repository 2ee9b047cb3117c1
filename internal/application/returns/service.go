package returns

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/returns"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
)

// Service manages the return lifecycle: public filing and tracking, and the
// merchant-side list/update/delete operations.
type Service struct {
	stores  store.Repository
	returns returns.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new return Service
func NewService(stores store.Repository, repo returns.Repository, logger *zap.Logger) *Service {
	return &Service{
		stores:  stores,
		returns: repo,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateReturnInput is the public portal return-request form
type CreateReturnInput struct {
	StoreURL string
	OrderID  string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ProductName string
	SKU         string
	Quantity    int
	Price       decimal.Decimal

	Reason              string
	PreferredResolution string
	Notes               string
	Photos              []string
}

// CreatePublicReturn files a return from the public portal. The return gets
// the next sequential RT-NNN id for the store and a fresh five-step timeline
// with submission already completed.
func (s *Service) CreatePublicReturn(ctx context.Context, input CreateReturnInput) (*returns.ReturnRequest, error) {
	if strings.TrimSpace(input.OrderID) == "" || strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, shared.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	st, err := s.resolveStore(ctx, input.StoreURL)
	if err != nil {
		return nil, err
	}
	if !st.IsStoreSetup {
		return nil, shared.ErrNotFound
	}

	count, err := s.returns.CountByStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ret := &returns.ReturnRequest{
		BaseEntity: shared.NewBaseEntity(),
		ReturnID:   returns.FormatReturnID(count + 1),
		StoreID:    st.ID,
		OrderID:    strings.TrimSpace(input.OrderID),
		StoreURL:   st.StoreURL,
		Customer: returns.CustomerRef{
			Name:  strings.TrimSpace(input.CustomerName),
			Email: strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
			Phone: strings.TrimSpace(input.CustomerPhone),
		},
		Product: returns.ProductRef{
			Name:     input.ProductName,
			SKU:      input.SKU,
			Quantity: input.Quantity,
			Price:    input.Price,
		},
		Status:              returns.StatusPendingApproval,
		Reason:              returns.ResolveReason(input.Reason),
		PreferredResolution: input.PreferredResolution,
		RefundMethod:        returns.ResolveRefundMethod(input.PreferredResolution),
		Amount:              input.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Notes:               input.Notes,
		Photos:              input.Photos,
		ReturnAddress:       st.StoreName + ", 123 Warehouse St, New York, NY 10002",
		FiledAt:             now,
		Timeline:            returns.NewTimeline(now),
	}

	if err := s.returns.Save(ctx, ret); err != nil {
		return nil, err
	}

	s.logger.Info("return filed",
		zap.String("return_id", ret.ReturnID),
		zap.String("store_id", st.ID.String()),
		zap.String("order_id", ret.OrderID),
	)
	return ret, nil
}

// GetPublicReturn resolves a tracking lookup from the public portal
func (s *Service) GetPublicReturn(ctx context.Context, storeURL, returnID string) (*returns.ReturnRequest, error) {
	returnID = strings.TrimSpace(returnID)
	if returnID == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := s.resolveStore(ctx, storeURL)
	if err != nil {
		return nil, err
	}
	return s.returns.FindByReturnID(ctx, st.StoreURL, returnID)
}

// List returns every return filed against the store, newest first
func (s *Service) List(ctx context.Context, storeID uuid.UUID) ([]*returns.ReturnRequest, error) {
	return s.returns.ListByStore(ctx, storeID)
}

// Get fetches one return scoped to the store
func (s *Service) Get(ctx context.Context, storeID, id uuid.UUID) (*returns.ReturnRequest, error) {
	return s.returns.FindByID(ctx, storeID, id)
}

// UpdateStatus transitions a return and advances its timeline
func (s *Service) UpdateStatus(ctx context.Context, storeID, id uuid.UUID, status returns.Status) (*returns.ReturnRequest, error) {
	ret, err := s.returns.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if err := ret.SetStatus(status, s.now()); err != nil {
		return nil, err
	}

	if err := s.returns.Update(ctx, ret); err != nil {
		return nil, err
	}

	s.logger.Info("return status updated",
		zap.String("return_id", ret.ReturnID),
		zap.String("status", string(ret.Status)),
	)
	return ret, nil
}

// Delete removes a return scoped to the store
func (s *Service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return s.returns.Delete(ctx, storeID, id)
}

// resolveStore matches a portal URL to a merchant, verbatim first, then by
// normalized comparison
func (s *Service) resolveStore(ctx context.Context, storeURL string) (*store.Store, error) {
	storeURL = strings.TrimSpace(storeURL)
	if storeURL == "" {
		return nil, shared.ErrNotFound
	}

	st, err := s.stores.FindByExactURL(ctx, storeURL)
	if err == nil {
		return st, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	normalized := store.NormalizeStoreURL(storeURL)
	all, err := s.stores.FindAllWithURL(ctx)
	if err != nil {
		return nil, err
	}
	for _, candidate := range all {
		if store.NormalizeStoreURL(candidate.StoreURL) == normalized {
			return candidate, nil
		}
	}
	return nil, shared.ErrNotFound
}
