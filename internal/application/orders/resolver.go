package orders

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

// Resolver locates a single order for the public return portal and verifies
// that the person asking is the buyer. It searches every platform the store
// has connected, in the order PlatformCredentials lists them.
type Resolver struct {
	stores   store.Repository
	registry storefront.Registry
	logger   *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(stores store.Repository, registry storefront.Registry, logger *zap.Logger) *Resolver {
	return &Resolver{
		stores:   stores,
		registry: registry,
		logger:   logger,
	}
}

// Resolve finds the order identified by orderID on the store behind storeURL
// and checks the buyer-entered contact against it.
//
// A match that fails contact verification or is not yet delivered stops the
// search immediately; only the complete absence of a match moves on to the
// next platform. The mismatch error carries no order data.
func (r *Resolver) Resolve(ctx context.Context, orderID, contact, storeURL string) (*storefront.Order, error) {
	orderID = strings.TrimSpace(orderID)
	contact = strings.TrimSpace(contact)
	if orderID == "" || contact == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := r.resolveStore(ctx, storeURL)
	if err != nil {
		return nil, err
	}

	credentials := st.PlatformCredentials()
	if len(credentials) == 0 {
		return nil, shared.ErrIntegrationMissing
	}

	candidates := storefront.IdentifierCandidates(orderID)
	enricher := newCustomerEnricher()

	var fetchFailed bool
	for _, creds := range credentials {
		platform, err := r.registry.Get(creds.Platform)
		if err != nil {
			r.logger.Error("platform not registered", zap.String("platform", creds.Platform.String()))
			continue
		}

		upstreamOrders, err := platform.FetchOrders(ctx, creds)
		if err != nil {
			r.logger.Warn("order search fetch failed",
				zap.String("platform", creds.Platform.String()),
				zap.Error(err),
			)
			fetchFailed = true
			continue
		}

		enricher.Enrich(ctx, platform, creds, upstreamOrders, r.logger)

		matched := findByIdentifier(upstreamOrders, candidates)
		if matched == nil {
			continue
		}

		if !matched.Contacts.MatchesContact(contact) {
			return nil, shared.ErrIdentityMismatch
		}

		if matched.Status != storefront.StatusDelivered {
			return nil, shared.NewDomainError("NOT_RETURNABLE",
				fmt.Sprintf("Order is not eligible for return yet (status: %s)", matched.Status))
		}

		return matched, nil
	}

	if fetchFailed {
		return nil, shared.ErrUpstreamFailure
	}
	return nil, shared.ErrNotFound
}

// resolveStore matches the portal URL to a merchant, first verbatim, then by
// normalized comparison across every store with a URL on file
func (r *Resolver) resolveStore(ctx context.Context, storeURL string) (*store.Store, error) {
	storeURL = strings.TrimSpace(storeURL)
	if storeURL == "" {
		return nil, shared.ErrNotFound
	}

	st, err := r.stores.FindByExactURL(ctx, storeURL)
	if err == nil {
		return st, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	normalized := store.NormalizeStoreURL(storeURL)
	all, err := r.stores.FindAllWithURL(ctx)
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

// findByIdentifier returns the first order matching any candidate form
func findByIdentifier(orders []storefront.Order, candidates []string) *storefront.Order {
	for i := range orders {
		if orders[i].MatchesIdentifier(candidates) {
			return &orders[i]
		}
	}
	return nil
}
