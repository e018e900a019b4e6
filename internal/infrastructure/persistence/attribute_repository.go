package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormAttributeRepository implements catalog.AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute by its ID
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindByCode finds an attribute by its code
func (r *GormAttributeRepository) FindByCode(ctx context.Context, code string) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).Where("code = ?", strings.ToLower(code)).First(&attribute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindAll finds all attributes matching the filter
func (r *GormAttributeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Attribute, error) {
	var attributes []catalog.Attribute
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Attribute{}), filter, "name", "code")
	if err := query.Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// FindActive finds all active attributes ordered by sort order
func (r *GormAttributeRepository) FindActive(ctx context.Context) ([]catalog.Attribute, error) {
	var attributes []catalog.Attribute
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// Save creates or updates an attribute
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	return r.db.WithContext(ctx).Save(attribute).Error
}

// Delete deletes an attribute
func (r *GormAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Attribute{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts attributes matching the filter
func (r *GormAttributeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&catalog.Attribute{}), filter, "name", "code")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if an attribute with the given code exists
func (r *GormAttributeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Attribute{}).
		Where("code = ?", strings.ToLower(code)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
