package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormAPIKeyRepository implements identity.APIKeyRepository using GORM
type GormAPIKeyRepository struct {
	db *gorm.DB
}

// NewGormAPIKeyRepository creates a new GormAPIKeyRepository
func NewGormAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

// Create creates a new API key
func (r *GormAPIKeyRepository) Create(ctx context.Context, key *identity.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

// Update updates an existing API key
func (r *GormAPIKeyRepository) Update(ctx context.Context, key *identity.APIKey) error {
	return r.db.WithContext(ctx).Save(key).Error
}

// Delete deletes an API key by ID
func (r *GormAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.APIKey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an API key by ID
func (r *GormAPIKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.APIKey, error) {
	var key identity.APIKey
	if err := r.db.WithContext(ctx).First(&key, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &key, nil
}

// FindByHash finds an API key by its stored hash
func (r *GormAPIKeyRepository) FindByHash(ctx context.Context, hash string) (*identity.APIKey, error) {
	var key identity.APIKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", hash).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &key, nil
}

// FindAll returns all API keys matching the filter
func (r *GormAPIKeyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.APIKey, error) {
	var keys []*identity.APIKey
	query := r.db.WithContext(ctx).Model(&identity.APIKey{})
	query = applyFilter(query, filter, "name", "prefix")
	if err := query.Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Count counts API keys matching the filter
func (r *GormAPIKeyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.APIKey{})
	query = applySearch(query, filter, "name", "prefix")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ identity.APIKeyRepository = (*GormAPIKeyRepository)(nil)
