package store

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for merchant stores
type Repository interface {
	Save(ctx context.Context, store *Store) error
	Update(ctx context.Context, store *Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindByEmail(ctx context.Context, email string) (*Store, error)

	// FindByExactURL matches the stored URL verbatim. Callers fall back to
	// scanning FindAllWithURL with NormalizeStoreURL when this misses.
	FindByExactURL(ctx context.Context, url string) (*Store, error)

	// FindAllWithURL lists every store that has a storefront URL recorded
	FindAllWithURL(ctx context.Context) ([]*Store, error)

	// FindByWebhookSecret resolves the store owning a portal-generated
	// webhook shared secret
	FindByWebhookSecret(ctx context.Context, secret string) (*Store, error)
}
