package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backo/backend/internal/domain/returns"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/infrastructure/persistence/models"
)

// GormReturnRepository implements returns.Repository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Save creates a return request
func (r *GormReturnRepository) Save(ctx context.Context, ret *returns.ReturnRequest) error {
	model := models.ReturnModelFromDomain(ret)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing return request
func (r *GormReturnRepository) Update(ctx context.Context, ret *returns.ReturnRequest) error {
	model := models.ReturnModelFromDomain(ret)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a return request owned by the store
func (r *GormReturnRepository) Delete(ctx context.Context, storeID uuid.UUID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReturnModel{}, "store_id = ? AND id = ?", storeID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a return request by id within a store
func (r *GormReturnRepository) FindByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*returns.ReturnRequest, error) {
	var model models.ReturnModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReturnID resolves a public tracking lookup by store URL and
// human-facing return id
func (r *GormReturnRepository) FindByReturnID(ctx context.Context, storeURL, returnID string) (*returns.ReturnRequest, error) {
	var model models.ReturnModel
	if err := r.db.WithContext(ctx).
		Where("store_url = ? AND return_id = ?", storeURL, returnID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByStore lists every return for a store, most recently filed first
func (r *GormReturnRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*returns.ReturnRequest, error) {
	var returnModels []models.ReturnModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("filed_at DESC").
		Find(&returnModels).Error; err != nil {
		return nil, err
	}

	result := make([]*returns.ReturnRequest, len(returnModels))
	for i := range returnModels {
		result[i] = returnModels[i].ToDomain()
	}
	return result, nil
}

// CountByStore counts the returns a store has ever filed
func (r *GormReturnRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReturnModel{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReturnRepository implements returns.Repository
var _ returns.Repository = (*GormReturnRepository)(nil)
