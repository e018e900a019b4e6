package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// Update updates an existing role
	Update(ctx context.Context, role *Role) error

	// Delete deletes a role by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByCode finds a role by its code
	FindByCode(ctx context.Context, code string) (*Role, error)

	// FindByIDs finds multiple roles by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)

	// FindAll returns all roles matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Role, error)

	// SavePermissions saves the role's permissions (replaces existing)
	SavePermissions(ctx context.Context, role *Role) error

	// LoadPermissions loads the role's permissions from the database
	LoadPermissions(ctx context.Context, role *Role) error

	// Count counts roles matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a role with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
