package handler

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/returns"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStoreRepo is an in-memory store.Repository
type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*store.Store
}

func newFakeStoreRepo(stores ...*store.Store) *fakeStoreRepo {
	repo := &fakeStoreRepo{stores: make(map[uuid.UUID]*store.Store)}
	for _, st := range stores {
		repo.stores[st.ID] = st
	}
	return repo
}

func (r *fakeStoreRepo) Save(_ context.Context, st *store.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[st.ID] = st
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, st *store.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[st.ID] = st
	return nil
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stores[id]; ok {
		return st, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindByEmail(_ context.Context, email string) (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.stores {
		if st.Email == strings.ToLower(email) {
			return st, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindByExactURL(_ context.Context, url string) (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.stores {
		if st.StoreURL != "" && st.StoreURL == url {
			return st, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindAllWithURL(_ context.Context) ([]*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*store.Store
	for _, st := range r.stores {
		if st.StoreURL != "" {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) FindByWebhookSecret(_ context.Context, secret string) (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if secret == "" {
		return nil, shared.ErrNotFound
	}
	for _, st := range r.stores {
		if st.WooCommerce.SecretKey == secret {
			return st, nil
		}
	}
	return nil, shared.ErrNotFound
}

// fakeOrderRepo is an in-memory order.Repository
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*order.Order
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeOrderRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*order.Order
	for _, o := range r.orders {
		if o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByPlatformOrderID(_ context.Context, storeID uuid.UUID, platform storefront.PlatformCode, platformOrderID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if platformOrderID == "" {
		return nil, shared.ErrNotFound
	}
	for _, o := range r.orders {
		if o.StoreID == storeID && o.Platform == platform && o.PlatformOrderID == platformOrderID {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, storeID uuid.UUID, number string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if number == "" {
		return nil, shared.ErrNotFound
	}
	for _, o := range r.orders {
		if o.StoreID == storeID && o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

// fakeReturnRepo is an in-memory returns.Repository
type fakeReturnRepo struct {
	mu   sync.Mutex
	rets []*returns.ReturnRequest
}

func (r *fakeReturnRepo) Save(_ context.Context, ret *returns.ReturnRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rets = append(r.rets, ret)
	return nil
}

func (r *fakeReturnRepo) Update(_ context.Context, ret *returns.ReturnRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rets {
		if existing.ID == ret.ID {
			r.rets[i] = ret
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeReturnRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rets {
		if existing.StoreID == storeID && existing.ID == id {
			r.rets = append(r.rets[:i], r.rets[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeReturnRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*returns.ReturnRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ret := range r.rets {
		if ret.StoreID == storeID && ret.ID == id {
			return ret, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReturnRepo) FindByReturnID(_ context.Context, storeURL, returnID string) (*returns.ReturnRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ret := range r.rets {
		if ret.StoreURL == storeURL && ret.ReturnID == returnID {
			return ret, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReturnRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]*returns.ReturnRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*returns.ReturnRequest
	for _, ret := range r.rets {
		if ret.StoreID == storeID {
			out = append(out, ret)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) CountByStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ret := range r.rets {
		if ret.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

// stubPlatform is a canned storefront.Platform
type stubPlatform struct {
	code      storefront.PlatformCode
	orders    []storefront.Order
	products  []storefront.Product
	customers map[string]*storefront.CustomerRecord
	fetchErr  error
}

func (p *stubPlatform) Code() storefront.PlatformCode { return p.code }

func (p *stubPlatform) FetchOrders(context.Context, storefront.Credentials) ([]storefront.Order, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.orders, nil
}

func (p *stubPlatform) FetchProducts(context.Context, storefront.Credentials) ([]storefront.Product, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.products, nil
}

func (p *stubPlatform) FetchCustomers(context.Context, storefront.Credentials) ([]storefront.CustomerRecord, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return nil, nil
}

func (p *stubPlatform) FetchCustomerByID(_ context.Context, _ storefront.Credentials, id string) (*storefront.CustomerRecord, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.customers[id], nil
}

func (p *stubPlatform) VerifyCredentials(context.Context, storefront.Credentials) error {
	return p.fetchErr
}

// stubRegistry resolves stub platforms by code
type stubRegistry struct {
	platforms map[storefront.PlatformCode]storefront.Platform
}

func newStubRegistry(platforms ...storefront.Platform) *stubRegistry {
	reg := &stubRegistry{platforms: make(map[storefront.PlatformCode]storefront.Platform)}
	for _, p := range platforms {
		reg.platforms[p.Code()] = p
	}
	return reg
}

func (r *stubRegistry) Get(code storefront.PlatformCode) (storefront.Platform, error) {
	if p, ok := r.platforms[code]; ok {
		return p, nil
	}
	return nil, storefront.ErrPlatformNotRegistered
}

func (r *stubRegistry) All() []storefront.Platform {
	out := make([]storefront.Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		out = append(out, p)
	}
	return out
}

// connectedStore builds a set-up merchant with both platforms connected
func connectedStore(url string) *store.Store {
	st := store.NewStore("merchant@example.com", "hashed")
	st.CompleteSetup("Demo Store", url, "")
	st.ConnectShopify("demo.myshopify.com", "shpat_test_token")
	st.ConnectWooCommerce("https://demo-store.com", "ck_test_key", "cs_test_secret", "whsec_test")
	return st
}
