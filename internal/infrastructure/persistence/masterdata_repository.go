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

// GormMasterDataRepository implements catalog.MasterDataRepository using GORM
type GormMasterDataRepository struct {
	db *gorm.DB
}

// NewGormMasterDataRepository creates a new GormMasterDataRepository
func NewGormMasterDataRepository(db *gorm.DB) *GormMasterDataRepository {
	return &GormMasterDataRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormMasterDataRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterDataEntry, error) {
	var entry catalog.MasterDataEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByKind finds all entries of a kind ordered by sort order
func (r *GormMasterDataRepository) FindByKind(ctx context.Context, kind catalog.MasterDataKind) ([]catalog.MasterDataEntry, error) {
	var entries []catalog.MasterDataEntry
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("sort_order ASC, label ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindActiveByKind finds the active entries of a kind ordered by sort order
func (r *GormMasterDataRepository) FindActiveByKind(ctx context.Context, kind catalog.MasterDataKind) ([]catalog.MasterDataEntry, error) {
	var entries []catalog.MasterDataEntry
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND is_active = ?", kind, true).
		Order("sort_order ASC, label ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByKindAndCode finds a single entry by kind and code
func (r *GormMasterDataRepository) FindByKindAndCode(ctx context.Context, kind catalog.MasterDataKind, code string) (*catalog.MasterDataEntry, error) {
	var entry catalog.MasterDataEntry
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND code = ?", kind, strings.ToLower(code)).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Save creates or updates an entry
func (r *GormMasterDataRepository) Save(ctx context.Context, entry *catalog.MasterDataEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes an entry
func (r *GormMasterDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MasterDataEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByKindAndCode checks if an entry exists for the kind and code
func (r *GormMasterDataRepository) ExistsByKindAndCode(ctx context.Context, kind catalog.MasterDataKind, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.MasterDataEntry{}).
		Where("kind = ? AND code = ?", kind, strings.ToLower(code)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.MasterDataRepository = (*GormMasterDataRepository)(nil)
