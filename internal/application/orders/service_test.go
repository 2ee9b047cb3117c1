package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

func newTestService(stores []*store.Store, repo *fakeOrderRepo, platforms ...storefront.Platform) *Service {
	return NewService(&fakeStoreRepo{stores: stores}, repo, newStubRegistry(platforms...), zap.NewNop())
}

func TestService_ListOrders_StoreNotFound(t *testing.T) {
	svc := newTestService(nil, &fakeOrderRepo{})

	_, err := svc.ListOrders(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_ListOrders_NoConnectedPlatform(t *testing.T) {
	st := store.NewStore("merchant@example.com", "hash")
	st.CompleteSetup("Demo Store", "https://demo-store.com", "")

	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{})

	_, err := svc.ListOrders(context.Background(), st.ID)
	assert.ErrorIs(t, err, shared.ErrIntegrationMissing)
}

func TestService_ListOrders_MergesBothPlatforms(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.orders = []storefront.Order{deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")}

	woo := newStubPlatform(storefront.PlatformWooCommerce)
	woo.orders = []storefront.Order{deliveredOrder(storefront.PlatformWooCommerce, "2002", "bob@example.com")}

	st := connectedStore("https://demo-store.com")
	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{}, shopify, woo)

	listed, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestService_ListOrders_WritesThroughToCache(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.orders = []storefront.Order{deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")}

	st := connectedStore("https://demo-store.com")
	repo := &fakeOrderRepo{}
	svc := newTestService([]*store.Store{st}, repo, shopify)

	_, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)

	require.Len(t, repo.orders, 1)
	assert.Equal(t, "1001", repo.orders[0].OrderNumber, "persisted number is normalized")
	assert.Equal(t, st.ID, repo.orders[0].StoreID)
	assert.Equal(t, storefront.PlatformShopify, repo.orders[0].Platform)
}

func TestService_ListOrders_RepeatListingDoesNotDuplicate(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.orders = []storefront.Order{deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")}

	st := connectedStore("https://demo-store.com")
	repo := &fakeOrderRepo{}
	svc := newTestService([]*store.Store{st}, repo, shopify)

	_, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	_, err = svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)

	assert.Len(t, repo.orders, 1)
}

func TestService_ListOrders_UpsertRefreshesStatus(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	first := deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")
	first.Status = storefront.StatusInTransit
	shopify.orders = []storefront.Order{first}

	st := connectedStore("https://demo-store.com")
	repo := &fakeOrderRepo{}
	svc := newTestService([]*store.Store{st}, repo, shopify)

	_, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, storefront.StatusInTransit, repo.orders[0].Status)

	delivered := first
	delivered.Status = storefront.StatusDelivered
	shopify.orders = []storefront.Order{delivered}

	_, err = svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, storefront.StatusDelivered, repo.orders[0].Status)
}

func TestService_ListOrders_AdoptsWebhookRowByNumber(t *testing.T) {
	st := connectedStore("https://demo-store.com")

	// A webhook created this row before any API sync, so it has a number
	// but no platform order id.
	webhookRow := &order.Order{
		BaseEntity:  shared.NewBaseEntity(),
		StoreID:     st.ID,
		Platform:    storefront.PlatformShopify,
		OrderNumber: "1001",
		Status:      storefront.StatusProcessing,
	}
	repo := &fakeOrderRepo{orders: []*order.Order{webhookRow}}

	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.orders = []storefront.Order{deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")}

	svc := newTestService([]*store.Store{st}, repo, shopify)

	_, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)

	require.Len(t, repo.orders, 1, "existing row adopted, not duplicated")
	assert.Equal(t, "9001001", repo.orders[0].PlatformOrderID)
	assert.Equal(t, storefront.StatusDelivered, repo.orders[0].Status)
}

func TestService_ListOrders_ServesCacheWhenFetchFails(t *testing.T) {
	st := connectedStore("https://demo-store.com")

	cached := order.FromCanonical(st.ID, deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com"))
	repo := &fakeOrderRepo{orders: []*order.Order{cached}}

	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.fetchErr = storefront.ErrPlatformUnavailable

	svc := newTestService([]*store.Store{st}, repo, shopify)

	listed, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, storefront.SourceDatabase, listed[0].Source)
}

func TestService_ListOrders_EnrichesGuestlessOrders(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	o := deliveredOrder(storefront.PlatformShopify, "1001", "")
	o.Customer = storefront.Customer{}
	o.CustomerID = "cust-7"
	o.Contacts = storefront.ContactSources{}
	shopify.orders = []storefront.Order{o}
	shopify.customers["cust-7"] = &storefront.CustomerRecord{
		ID: "cust-7", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "5550102030",
	}

	st := connectedStore("https://demo-store.com")
	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{}, shopify)

	listed, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Jane Doe", listed[0].Customer.Name)
	assert.Equal(t, "jane@example.com", listed[0].Customer.Email)
	assert.Equal(t, 1, shopify.customerCalls["cust-7"])
}

func TestService_ListOrders_SortedNewestFirst(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	older := deliveredOrder(storefront.PlatformShopify, "1001", "jane@example.com")
	older.PlacedDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := deliveredOrder(storefront.PlatformShopify, "1002", "jane@example.com")
	newer.PlacedDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	shopify.orders = []storefront.Order{older, newer}

	st := connectedStore("https://demo-store.com")
	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{}, shopify)

	listed, err := svc.ListOrders(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "#1002", listed[0].OrderNumber)
}

func TestService_ListProducts(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.products = []storefront.Product{
		{PlatformProductID: "p1", Name: "Mug", Price: decimal.NewFromInt(12), Platform: storefront.PlatformShopify},
	}
	woo := newStubPlatform(storefront.PlatformWooCommerce)
	woo.products = []storefront.Product{
		{PlatformProductID: "p2", Name: "Shirt", Price: decimal.NewFromInt(25), Platform: storefront.PlatformWooCommerce},
	}

	st := connectedStore("https://demo-store.com")
	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{}, shopify, woo)

	products, err := svc.ListProducts(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestService_ListProducts_SkipsFailingPlatform(t *testing.T) {
	shopify := newStubPlatform(storefront.PlatformShopify)
	shopify.fetchErr = storefront.ErrPlatformUnavailable
	woo := newStubPlatform(storefront.PlatformWooCommerce)
	woo.products = []storefront.Product{
		{PlatformProductID: "p2", Name: "Shirt", Price: decimal.NewFromInt(25), Platform: storefront.PlatformWooCommerce},
	}

	st := connectedStore("https://demo-store.com")
	svc := newTestService([]*store.Store{st}, &fakeOrderRepo{}, shopify, woo)

	products, err := svc.ListProducts(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Shirt", products[0].Name)
}
