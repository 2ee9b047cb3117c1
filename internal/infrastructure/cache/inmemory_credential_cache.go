package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

// credentialEntry holds cached credentials with expiration
type credentialEntry struct {
	creds     []storefront.Credentials
	expiresAt time.Time
}

// InMemoryCredentialCache implements store.CredentialCache using an in-memory
// map. This is suitable for single-instance deployments and testing
type InMemoryCredentialCache struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]credentialEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCredentialCache creates a new in-memory credential cache
// It starts a background goroutine to clean up expired entries
func NewInMemoryCredentialCache() *InMemoryCredentialCache {
	cache := &InMemoryCredentialCache{
		entries:  make(map[uuid.UUID]credentialEntry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached credentials for a store
func (c *InMemoryCredentialCache) Get(ctx context.Context, storeID uuid.UUID) ([]storefront.Credentials, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[storeID]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.creds, true, nil
}

// Set stores the verified credentials for a store with a TTL
func (c *InMemoryCredentialCache) Set(ctx context.Context, storeID uuid.UUID, creds []storefront.Credentials, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[storeID] = credentialEntry{
		creds:     creds,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate removes the cached entry for a store
func (c *InMemoryCredentialCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, storeID)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemoryCredentialCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryCredentialCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryCredentialCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for storeID, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, storeID)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryCredentialCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryCredentialCache implements store.CredentialCache
var _ store.CredentialCache = (*InMemoryCredentialCache)(nil)
