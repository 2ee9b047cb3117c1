package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/backo/backend/internal/domain/storefront"
)

// CredentialCache caches the verified platform credentials of a store so the
// integration status endpoint does not re-verify against the upstream
// platform on every call. Entries expire after a TTL and are invalidated
// whenever a connection is added or removed.
type CredentialCache interface {
	// Get returns the cached credentials for a store. The second return
	// value is false on a miss or after expiry.
	Get(ctx context.Context, storeID uuid.UUID) ([]storefront.Credentials, bool, error)

	// Set stores the verified credentials for a store with a TTL.
	Set(ctx context.Context, storeID uuid.UUID, creds []storefront.Credentials, ttl time.Duration) error

	// Invalidate removes the cached entry for a store.
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}
