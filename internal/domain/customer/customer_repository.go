package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByUserID finds the customer linked to a sign-in account
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll finds customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks if a profile exists for the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// LoadAddresses populates the customer's saved addresses
	LoadAddresses(ctx context.Context, customer *Customer) error
}
