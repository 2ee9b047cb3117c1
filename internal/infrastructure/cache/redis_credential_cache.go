package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/domain/storefront"
)

// RedisCredentialCache implements store.CredentialCache using Redis
// This is suitable for distributed deployments where multiple instances
// need to share the verified-connection state
type RedisCredentialCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCredentialCache creates a new Redis-backed credential cache
func NewRedisCredentialCache(cfg RedisConfig) (*RedisCredentialCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCredentialCache{
		client:    client,
		keyPrefix: "store:credentials:",
	}, nil
}

// NewRedisCredentialCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisCredentialCacheWithClient(client *redis.Client, keyPrefix string) *RedisCredentialCache {
	if keyPrefix == "" {
		keyPrefix = "store:credentials:"
	}
	return &RedisCredentialCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached credentials for a store
func (c *RedisCredentialCache) Get(ctx context.Context, storeID uuid.UUID) ([]storefront.Credentials, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+storeID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read credential cache: %w", err)
	}

	var creds []storefront.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt entry is treated as a miss so the caller re-verifies
		return nil, false, nil
	}
	return creds, true, nil
}

// Set stores the verified credentials for a store with a TTL
func (c *RedisCredentialCache) Set(ctx context.Context, storeID uuid.UUID, creds []storefront.Credentials, ttl time.Duration) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+storeID.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write credential cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for a store
func (c *RedisCredentialCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	if err := c.client.Del(ctx, c.keyPrefix+storeID.String()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate credential cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCredentialCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCredentialCache implements store.CredentialCache
var _ store.CredentialCache = (*RedisCredentialCache)(nil)
