package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
	"github.com/backo/backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements store.Repository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Save creates a store
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	model := models.StoreModelFromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing store
func (r *GormStoreRepository) Update(ctx context.Context, s *store.Store) error {
	model := models.StoreModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a store by its login email
func (r *GormStoreRepository) FindByEmail(ctx context.Context, email string) (*store.Store, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExactURL matches the stored URL verbatim
func (r *GormStoreRepository) FindByExactURL(ctx context.Context, url string) (*store.Store, error) {
	if url == "" {
		return nil, shared.ErrNotFound
	}
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("store_url = ?", url).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllWithURL lists every store with a storefront URL recorded
func (r *GormStoreRepository) FindAllWithURL(ctx context.Context) ([]*store.Store, error) {
	var storeModels []models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("store_url <> ''").
		Find(&storeModels).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, len(storeModels))
	for i := range storeModels {
		stores[i] = storeModels[i].ToDomain()
	}
	return stores, nil
}

// FindByWebhookSecret resolves the store owning a webhook shared secret
func (r *GormStoreRepository) FindByWebhookSecret(ctx context.Context, secret string) (*store.Store, error) {
	if secret == "" {
		return nil, shared.ErrNotFound
	}
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("woo_secret_key = ?", secret).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormStoreRepository implements store.Repository
var _ store.Repository = (*GormStoreRepository)(nil)
