package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/backo/backend/internal/domain/storefront"
)

// Repository is the persistence port for locally cached orders
type Repository interface {
	Save(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Order, error)

	// FindByPlatformOrderID is the primary upsert key
	FindByPlatformOrderID(ctx context.Context, storeID uuid.UUID, platform storefront.PlatformCode, platformOrderID string) (*Order, error)

	// FindByOrderNumber is the fallback upsert key; number must already be
	// normalized via NormalizeOrderNumber
	FindByOrderNumber(ctx context.Context, storeID uuid.UUID, number string) (*Order, error)
}
