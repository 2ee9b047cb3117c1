package returns

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for return requests
type Repository interface {
	Save(ctx context.Context, ret *ReturnRequest) error
	Update(ctx context.Context, ret *ReturnRequest) error
	Delete(ctx context.Context, storeID uuid.UUID, id uuid.UUID) error

	FindByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*ReturnRequest, error)

	// FindByReturnID resolves a public tracking lookup; storeURL is the raw
	// URL recorded at filing time
	FindByReturnID(ctx context.Context, storeURL, returnID string) (*ReturnRequest, error)

	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*ReturnRequest, error)

	// CountByStore feeds the sequential RT-NNN id generator
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}
