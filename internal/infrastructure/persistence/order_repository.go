package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/storefront"
	"github.com/backo/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates an order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing order
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}

// ListByStore lists every cached order for a store, newest first
func (r *GormOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("placed_date DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// FindByPlatformOrderID finds an order by its upstream platform id
func (r *GormOrderRepository) FindByPlatformOrderID(ctx context.Context, storeID uuid.UUID, platform storefront.PlatformCode, platformOrderID string) (*order.Order, error) {
	if platformOrderID == "" {
		// webhook rows can lack an upstream id; never match them here
		return nil, shared.ErrNotFound
	}
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND platform = ? AND platform_order_id = ?", storeID, string(platform), platformOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its normalized order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, storeID uuid.UUID, number string) (*order.Order, error) {
	if number == "" {
		return nil, shared.ErrNotFound
	}
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND order_number = ?", storeID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
