package stores

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
	"github.com/backo/backend/internal/infrastructure/config"
)

// Service manages store setup, platform connections and the public store
// lookup. Credential verification results are held in a TTL cache so repeated
// status checks do not hammer the upstream APIs.
type Service struct {
	stores   store.Repository
	registry storefront.Registry
	cache    store.CredentialCache
	cacheTTL config.CacheConfig
	logger   *zap.Logger
}

// NewService creates a new store Service
func NewService(stores store.Repository, registry storefront.Registry, cache store.CredentialCache, cacheCfg config.CacheConfig, logger *zap.Logger) *Service {
	return &Service{
		stores:   stores,
		registry: registry,
		cache:    cache,
		cacheTTL: cacheCfg,
		logger:   logger,
	}
}

// Get returns the merchant's own store
func (s *Service) Get(ctx context.Context, storeID uuid.UUID) (*store.Store, error) {
	return s.stores.FindByID(ctx, storeID)
}

// CompleteSetup records the storefront name, URL and logo captured during
// onboarding and marks the store ready
func (s *Service) CompleteSetup(ctx context.Context, storeID uuid.UUID, name, url, logo string) (*store.Store, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	st.CompleteSetup(name, url, logo)
	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ConnectShopify verifies the credentials against the live API before
// marking the platform connected
func (s *Service) ConnectShopify(ctx context.Context, storeID uuid.UUID, shopDomain, accessToken string) (*store.Store, error) {
	if strings.TrimSpace(shopDomain) == "" || strings.TrimSpace(accessToken) == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	platform, err := s.registry.Get(storefront.PlatformShopify)
	if err != nil {
		return nil, err
	}

	creds := storefront.Credentials{
		Platform: storefront.PlatformShopify,
		BaseURL:  strings.TrimSpace(shopDomain),
		Key:      accessToken,
	}
	if err := platform.VerifyCredentials(ctx, creds); err != nil {
		return nil, err
	}

	st.ConnectShopify(shopDomain, accessToken)
	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	s.invalidateCredentials(ctx, storeID)

	s.logger.Info("shopify connected", zap.String("store_id", storeID.String()))
	return st, nil
}

// ConnectWooCommerce verifies the credentials against the live API, then
// issues the shared webhook secret embedded in the store's webhook URL
func (s *Service) ConnectWooCommerce(ctx context.Context, storeID uuid.UUID, storeURL, consumerKey, consumerSecret string) (*store.Store, error) {
	if strings.TrimSpace(storeURL) == "" || strings.TrimSpace(consumerKey) == "" || strings.TrimSpace(consumerSecret) == "" {
		return nil, shared.ErrInvalidInput
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	platform, err := s.registry.Get(storefront.PlatformWooCommerce)
	if err != nil {
		return nil, err
	}

	creds := storefront.Credentials{
		Platform: storefront.PlatformWooCommerce,
		BaseURL:  strings.TrimSpace(storeURL),
		Key:      consumerKey,
		Secret:   consumerSecret,
	}
	if err := platform.VerifyCredentials(ctx, creds); err != nil {
		return nil, err
	}

	secretKey := st.WooCommerce.SecretKey
	if secretKey == "" {
		secretKey = uuid.NewString()
	}

	st.ConnectWooCommerce(storeURL, consumerKey, consumerSecret, secretKey)
	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	s.invalidateCredentials(ctx, storeID)

	s.logger.Info("woocommerce connected", zap.String("store_id", storeID.String()))
	return st, nil
}

// Disconnect drops the platform credentials
func (s *Service) Disconnect(ctx context.Context, storeID uuid.UUID, platform storefront.PlatformCode) (*store.Store, error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	switch platform {
	case storefront.PlatformShopify:
		st.DisconnectShopify()
	case storefront.PlatformWooCommerce:
		st.DisconnectWooCommerce()
	default:
		return nil, shared.ErrInvalidInput
	}

	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	s.invalidateCredentials(ctx, storeID)

	s.logger.Info("platform disconnected",
		zap.String("store_id", storeID.String()),
		zap.String("platform", platform.String()),
	)
	return st, nil
}

// IntegrationStatus reports which platforms hold working credentials. A fresh
// cache entry skips the live verification; a miss verifies every connected
// platform and caches the set that passed.
type IntegrationStatus struct {
	Shopify     bool
	WooCommerce bool
}

// Status returns the verified connection state for the store
func (s *Service) Status(ctx context.Context, storeID uuid.UUID) (*IntegrationStatus, error) {
	if cached, ok, err := s.cache.Get(ctx, storeID); err == nil && ok {
		return statusFromCredentials(cached), nil
	} else if err != nil {
		s.logger.Warn("credential cache read failed", zap.Error(err))
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	var verified []storefront.Credentials
	for _, creds := range st.PlatformCredentials() {
		platform, err := s.registry.Get(creds.Platform)
		if err != nil {
			continue
		}
		if err := platform.VerifyCredentials(ctx, creds); err != nil {
			s.logger.Warn("credential verification failed",
				zap.String("store_id", storeID.String()),
				zap.String("platform", creds.Platform.String()),
				zap.Error(err),
			)
			continue
		}
		verified = append(verified, creds)
	}

	if err := s.cache.Set(ctx, storeID, verified, s.cacheTTL.CredentialTTL); err != nil {
		s.logger.Warn("credential cache write failed", zap.Error(err))
	}

	return statusFromCredentials(verified), nil
}

// PublicStoreInfo is the subset of store data the public portal may see
type PublicStoreInfo struct {
	StoreName        string
	StoreLogo        string
	PrimaryColor     string
	ReturnWindowDays int
}

// PublicLookup resolves a store by portal URL and returns branding only.
// Stores that have not finished setup stay invisible.
func (s *Service) PublicLookup(ctx context.Context, storeURL string) (*PublicStoreInfo, error) {
	storeURL = strings.TrimSpace(storeURL)
	if storeURL == "" {
		return nil, shared.ErrNotFound
	}

	st, err := s.stores.FindByExactURL(ctx, storeURL)
	if err == shared.ErrNotFound {
		st, err = s.findByNormalizedURL(ctx, storeURL)
	}
	if err != nil {
		return nil, err
	}
	if !st.IsStoreSetup {
		return nil, shared.ErrNotFound
	}

	return &PublicStoreInfo{
		StoreName:        st.StoreName,
		StoreLogo:        st.StoreLogo,
		PrimaryColor:     st.Branding.PrimaryColor,
		ReturnWindowDays: st.ReturnPolicy.ReturnWindowDays,
	}, nil
}

func (s *Service) findByNormalizedURL(ctx context.Context, storeURL string) (*store.Store, error) {
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

func (s *Service) invalidateCredentials(ctx context.Context, storeID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, storeID); err != nil {
		s.logger.Warn("credential cache invalidation failed",
			zap.String("store_id", storeID.String()),
			zap.Error(err),
		)
	}
}

func statusFromCredentials(creds []storefront.Credentials) *IntegrationStatus {
	status := &IntegrationStatus{}
	for _, c := range creds {
		switch c.Platform {
		case storefront.PlatformShopify:
			status.Shopify = true
		case storefront.PlatformWooCommerce:
			status.WooCommerce = true
		}
	}
	return status
}
