package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// AttributeInputType determines how an attribute value is captured
type AttributeInputType string

const (
	AttributeInputText    AttributeInputType = "text"
	AttributeInputSelect  AttributeInputType = "select"
	AttributeInputBoolean AttributeInputType = "boolean"
)

// Attribute defines a product attribute such as material or sleeve length.
// Select attributes carry their allowed options as a JSON array.
type Attribute struct {
	shared.BaseAggregateRoot
	Code      string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string             `gorm:"type:varchar(100);not null"`
	InputType AttributeInputType `gorm:"type:varchar(20);not null;default:'text'"`
	Options   string             `gorm:"type:jsonb"` // JSON array of allowed values for select attributes
	SortOrder int                `gorm:"not null;default:0"`
	IsActive  bool               `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// NewAttribute creates a new product attribute
func NewAttribute(code, name string, inputType AttributeInputType) (*Attribute, error) {
	if err := validateAttributeCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 100 characters")
	}
	switch inputType {
	case AttributeInputText, AttributeInputSelect, AttributeInputBoolean:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT_TYPE", "Unknown attribute input type")
	}

	return &Attribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(code),
		Name:              name,
		InputType:         inputType,
		Options:           "[]",
		IsActive:          true,
	}, nil
}

// Update updates the attribute's display name
func (a *Attribute) Update(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 100 characters")
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetOptions sets the allowed values for a select attribute as a JSON array
func (a *Attribute) SetOptions(options string) error {
	if a.InputType != AttributeInputSelect {
		return shared.NewDomainError("INVALID_INPUT_TYPE", "Only select attributes carry options")
	}
	if options == "" {
		options = "[]"
	}
	trimmed := strings.TrimSpace(options)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return shared.NewDomainError("INVALID_OPTIONS", "Options must be a valid JSON array")
	}

	a.Options = trimmed
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order of the attribute
func (a *Attribute) SetSortOrder(order int) {
	a.SortOrder = order
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Activate makes the attribute available on product forms
func (a *Attribute) Activate() error {
	if a.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Attribute is already active")
	}

	a.IsActive = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Deactivate removes the attribute from product forms
func (a *Attribute) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Attribute is already inactive")
	}

	a.IsActive = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

func validateAttributeCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Attribute code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Attribute code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return shared.NewDomainError("INVALID_CODE", "Attribute code can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

// AttributeRepository defines the interface for attribute persistence
type AttributeRepository interface {
	// FindByID finds an attribute by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attribute, error)

	// FindByCode finds an attribute by its code
	FindByCode(ctx context.Context, code string) (*Attribute, error)

	// FindAll finds all attributes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Attribute, error)

	// FindActive finds all active attributes
	FindActive(ctx context.Context) ([]Attribute, error)

	// Save creates or updates an attribute
	Save(ctx context.Context, attribute *Attribute) error

	// Delete deletes an attribute
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts attributes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if an attribute with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
