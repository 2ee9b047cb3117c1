package orders

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

// Service handles merchant-facing order listing. Live platform data is merged
// with the locally cached copies, and every successful fetch is written
// through to the cache so listings survive platform outages.
type Service struct {
	stores   store.Repository
	orders   order.Repository
	registry storefront.Registry
	logger   *zap.Logger
}

// NewService creates a new order Service
func NewService(stores store.Repository, orders order.Repository, registry storefront.Registry, logger *zap.Logger) *Service {
	return &Service{
		stores:   stores,
		orders:   orders,
		registry: registry,
		logger:   logger,
	}
}

// ListOrders returns all orders for the store across its connected platforms.
// A platform that fails to respond is skipped; its cached orders still appear
// through the merge.
func (s *Service) ListOrders(ctx context.Context, storeID uuid.UUID) ([]storefront.Order, error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	credentials := st.PlatformCredentials()
	if len(credentials) == 0 {
		return nil, shared.ErrIntegrationMissing
	}

	enricher := newCustomerEnricher()
	var apiOrders []storefront.Order

	for _, creds := range credentials {
		platform, err := s.registry.Get(creds.Platform)
		if err != nil {
			s.logger.Error("platform not registered", zap.String("platform", creds.Platform.String()))
			continue
		}

		fetched, err := platform.FetchOrders(ctx, creds)
		if err != nil {
			s.logger.Warn("order fetch failed, serving cached copies",
				zap.String("platform", creds.Platform.String()),
				zap.Error(err),
			)
			continue
		}

		enricher.Enrich(ctx, platform, creds, fetched, s.logger)
		apiOrders = append(apiOrders, fetched...)
	}

	s.persistOrders(ctx, storeID, apiOrders)

	cached, err := s.orders.ListByStore(ctx, storeID)
	if err != nil {
		s.logger.Error("listing cached orders failed", zap.Error(err))
		cached = nil
	}

	dbOrders := make([]storefront.Order, len(cached))
	for i, o := range cached {
		dbOrders[i] = o.ToCanonical()
	}

	return MergeOrders(apiOrders, dbOrders), nil
}

// ListProducts returns the product catalogs of every connected platform
func (s *Service) ListProducts(ctx context.Context, storeID uuid.UUID) ([]storefront.Product, error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	credentials := st.PlatformCredentials()
	if len(credentials) == 0 {
		return nil, shared.ErrIntegrationMissing
	}

	var products []storefront.Product
	for _, creds := range credentials {
		platform, err := s.registry.Get(creds.Platform)
		if err != nil {
			s.logger.Error("platform not registered", zap.String("platform", creds.Platform.String()))
			continue
		}

		fetched, err := platform.FetchProducts(ctx, creds)
		if err != nil {
			s.logger.Warn("product fetch failed",
				zap.String("platform", creds.Platform.String()),
				zap.Error(err),
			)
			continue
		}
		products = append(products, fetched...)
	}

	return products, nil
}

// IngestWebhookOrder upserts one order pushed by a platform webhook. It
// shares the listing write-through keys, so a later API sync adopts the row
// instead of duplicating it.
func (s *Service) IngestWebhookOrder(ctx context.Context, storeID uuid.UUID, o storefront.Order) error {
	if o.PlatformOrderID == "" && order.NormalizeOrderNumber(o.OrderNumber) == "" {
		return shared.ErrInvalidInput
	}
	return s.upsertOrder(ctx, storeID, o)
}

// persistOrders writes API orders through to the local cache. The upsert is
// keyed by platform order id first, then by normalized order number, so
// webhook-created rows without a platform id get adopted rather than
// duplicated. Persistence failures are logged, never surfaced.
func (s *Service) persistOrders(ctx context.Context, storeID uuid.UUID, apiOrders []storefront.Order) {
	for _, o := range apiOrders {
		if err := s.upsertOrder(ctx, storeID, o); err != nil {
			s.logger.Warn("order write-through failed",
				zap.String("platform_order_id", o.PlatformOrderID),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) upsertOrder(ctx context.Context, storeID uuid.UUID, o storefront.Order) error {
	existing, err := s.orders.FindByPlatformOrderID(ctx, storeID, o.Platform, o.PlatformOrderID)
	if err != nil && err != shared.ErrNotFound {
		return err
	}

	if existing == nil {
		number := order.NormalizeOrderNumber(o.OrderNumber)
		existing, err = s.orders.FindByOrderNumber(ctx, storeID, number)
		if err != nil && err != shared.ErrNotFound {
			return err
		}
	}

	if existing != nil {
		existing.ApplyCanonical(o)
		return s.orders.Update(ctx, existing)
	}
	return s.orders.Save(ctx, order.FromCanonical(storeID, o))
}
