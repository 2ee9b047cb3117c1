package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

// stubPlatform is a scriptable storefront.Platform for service tests
type stubPlatform struct {
	code          storefront.PlatformCode
	orders        []storefront.Order
	products      []storefront.Product
	customers     map[string]*storefront.CustomerRecord
	fetchErr      error
	customerCalls map[string]int
}

func newStubPlatform(code storefront.PlatformCode) *stubPlatform {
	return &stubPlatform{
		code:          code,
		customers:     make(map[string]*storefront.CustomerRecord),
		customerCalls: make(map[string]int),
	}
}

func (p *stubPlatform) Code() storefront.PlatformCode { return p.code }

func (p *stubPlatform) FetchOrders(ctx context.Context, creds storefront.Credentials) ([]storefront.Order, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	out := make([]storefront.Order, len(p.orders))
	copy(out, p.orders)
	return out, nil
}

func (p *stubPlatform) FetchProducts(ctx context.Context, creds storefront.Credentials) ([]storefront.Product, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.products, nil
}

func (p *stubPlatform) FetchCustomers(ctx context.Context, creds storefront.Credentials) ([]storefront.CustomerRecord, error) {
	return nil, nil
}

func (p *stubPlatform) FetchCustomerByID(ctx context.Context, creds storefront.Credentials, customerID string) (*storefront.CustomerRecord, error) {
	p.customerCalls[customerID]++
	return p.customers[customerID], nil
}

func (p *stubPlatform) VerifyCredentials(ctx context.Context, creds storefront.Credentials) error {
	return p.fetchErr
}

var _ storefront.Platform = (*stubPlatform)(nil)

// stubRegistry resolves stub platforms by code
type stubRegistry struct {
	platforms map[storefront.PlatformCode]storefront.Platform
}

func newStubRegistry(platforms ...storefront.Platform) *stubRegistry {
	r := &stubRegistry{platforms: make(map[storefront.PlatformCode]storefront.Platform)}
	for _, p := range platforms {
		r.platforms[p.Code()] = p
	}
	return r
}

func (r *stubRegistry) Get(code storefront.PlatformCode) (storefront.Platform, error) {
	p, ok := r.platforms[code]
	if !ok {
		return nil, storefront.ErrPlatformNotRegistered
	}
	return p, nil
}

func (r *stubRegistry) All() []storefront.Platform {
	out := make([]storefront.Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		out = append(out, p)
	}
	return out
}

var _ storefront.Registry = (*stubRegistry)(nil)

// fakeStoreRepo is an in-memory store.Repository
type fakeStoreRepo struct {
	stores []*store.Store
}

func (r *fakeStoreRepo) Save(ctx context.Context, s *store.Store) error {
	r.stores = append(r.stores, s)
	return nil
}

func (r *fakeStoreRepo) Update(ctx context.Context, s *store.Store) error { return nil }

func (r *fakeStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	for _, s := range r.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindByEmail(ctx context.Context, email string) (*store.Store, error) {
	for _, s := range r.stores {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindByExactURL(ctx context.Context, url string) (*store.Store, error) {
	for _, s := range r.stores {
		if s.StoreURL == url {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindAllWithURL(ctx context.Context) ([]*store.Store, error) {
	var out []*store.Store
	for _, s := range r.stores {
		if s.StoreURL != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) FindByWebhookSecret(ctx context.Context, secret string) (*store.Store, error) {
	for _, s := range r.stores {
		if s.WooCommerce.SecretKey == secret {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

var _ store.Repository = (*fakeStoreRepo)(nil)

// fakeOrderRepo is an in-memory order.Repository
type fakeOrderRepo struct {
	orders []*order.Order
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *order.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error {
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeOrderRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByPlatformOrderID(ctx context.Context, storeID uuid.UUID, platform storefront.PlatformCode, platformOrderID string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.StoreID == storeID && o.Platform == platform && o.PlatformOrderID == platformOrderID {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByOrderNumber(ctx context.Context, storeID uuid.UUID, number string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.StoreID == storeID && o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

var _ order.Repository = (*fakeOrderRepo)(nil)

// connectedStore builds a store with both platforms wired to test creds
func connectedStore(url string) *store.Store {
	s := store.NewStore("merchant@example.com", "hash")
	s.CompleteSetup("Demo Store", url, "")
	s.ConnectShopify("demo.myshopify.com", "shpat_test")
	s.ConnectWooCommerce("https://demo-store.com", "ck_test", "cs_test", "whsec_test")
	return s
}
