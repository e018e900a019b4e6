package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindRoots finds all root categories
	FindRoots(ctx context.Context) ([]Category, error)

	// FindChildren finds the direct children of a category
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// FindDescendants finds all categories under the given path prefix
	FindDescendants(ctx context.Context, path string) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// SaveBatch creates or updates multiple categories in one transaction
	SaveBatch(ctx context.Context, categories []*Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountChildren counts the direct children of a category
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)

	// ExistsBySlug checks if a category with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
