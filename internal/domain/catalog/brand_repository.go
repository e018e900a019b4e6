package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	// FindByID finds a brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindBySlug finds a brand by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	// FindAll finds all brands matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// FindActive finds all active brands
	FindActive(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// FindChildren finds the sub-brands of a parent brand
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error

	// Delete deletes a brand
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts brands matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks if a brand with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
