package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Address is a saved shipping address belonging to a customer
type Address struct {
	shared.BaseEntity
	CustomerID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Label         string              `gorm:"type:varchar(50)"` // e.g. "Home", "Work"
	RecipientName string              `gorm:"type:varchar(200);not null"`
	Phone         string              `gorm:"type:varchar(50)"`
	Location      valueobject.Address `gorm:"type:jsonb"`
	IsDefault     bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "customer_addresses"
}

// NewAddress creates a saved address for a customer
func NewAddress(customerID uuid.UUID, recipientName string, location valueobject.Address) (*Address, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if strings.TrimSpace(recipientName) == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot be empty")
	}
	if len(recipientName) > 200 {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot exceed 200 characters")
	}
	if location.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	return &Address{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerID:    customerID,
		RecipientName: strings.TrimSpace(recipientName),
		Location:      location,
	}, nil
}

// Update replaces the address details
func (a *Address) Update(recipientName, phone string, location valueobject.Address) error {
	if strings.TrimSpace(recipientName) == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot be empty")
	}
	if len(recipientName) > 200 {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot exceed 200 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if location.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	a.RecipientName = strings.TrimSpace(recipientName)
	a.Phone = strings.TrimSpace(phone)
	a.Location = location
	a.Touch()

	return nil
}

// SetLabel names the address for display
func (a *Address) SetLabel(label string) error {
	if len(label) > 50 {
		return shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 50 characters")
	}

	a.Label = strings.TrimSpace(label)
	a.Touch()

	return nil
}

// MarkDefault flags this address as the customer's default
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.Touch()
}

// ClearDefault removes the default flag
func (a *Address) ClearDefault() {
	a.IsDefault = false
	a.Touch()
}

// AddressRepository defines the interface for saved address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByCustomer finds all addresses of a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearDefaultForCustomer unsets the default flag on all of a customer's addresses
	ClearDefaultForCustomer(ctx context.Context, customerID uuid.UUID) error
}
