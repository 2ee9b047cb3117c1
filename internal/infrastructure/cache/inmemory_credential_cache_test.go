package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backo/backend/internal/domain/storefront"
)

func testCredentials() []storefront.Credentials {
	return []storefront.Credentials{
		{
			Platform: storefront.PlatformShopify,
			BaseURL:  "demo.myshopify.com",
			Secret:   "shpat_abc",
		},
		{
			Platform: storefront.PlatformWooCommerce,
			BaseURL:  "https://shop.example.com",
			Key:      "ck_abc",
			Secret:   "cs_abc",
		},
	}
}

func TestInMemoryCredentialCache_GetSet(t *testing.T) {
	cache := NewInMemoryCredentialCache()
	defer cache.Close()

	ctx := context.Background()
	storeID := uuid.New()

	t.Run("miss before set", func(t *testing.T) {
		creds, found, err := cache.Get(ctx, storeID)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, creds)
	})

	t.Run("hit after set", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, storeID, testCredentials(), 1*time.Hour))

		creds, found, err := cache.Get(ctx, storeID)
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, creds, 2)
		assert.Equal(t, storefront.PlatformShopify, creds[0].Platform)
		assert.Equal(t, storefront.PlatformWooCommerce, creds[1].Platform)
	})

	t.Run("stores are isolated", func(t *testing.T) {
		_, found, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestInMemoryCredentialCache_Expiry(t *testing.T) {
	cache := NewInMemoryCredentialCache()
	defer cache.Close()

	ctx := context.Background()
	storeID := uuid.New()

	require.NoError(t, cache.Set(ctx, storeID, testCredentials(), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, found, err := cache.Get(ctx, storeID)
	require.NoError(t, err)
	assert.False(t, found, "expired entry should be a miss")
}

func TestInMemoryCredentialCache_Invalidate(t *testing.T) {
	cache := NewInMemoryCredentialCache()
	defer cache.Close()

	ctx := context.Background()
	storeID := uuid.New()

	require.NoError(t, cache.Set(ctx, storeID, testCredentials(), 1*time.Hour))
	require.NoError(t, cache.Invalidate(ctx, storeID))

	_, found, err := cache.Get(ctx, storeID)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, cache.Size())
}

func TestInMemoryCredentialCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemoryCredentialCache()

	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}
