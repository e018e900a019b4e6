package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Brand represents a product brand in the catalog
// Brands may form a shallow hierarchy (a house brand with sub-brands)
type Brand struct {
	shared.BaseAggregateRoot
	Name        string     `gorm:"type:varchar(100);not null"`
	Slug        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	LogoURL     string     `gorm:"type:varchar(500)"`
	Website     string     `gorm:"type:varchar(500)"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"not null;default:true"`
	SortOrder   int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new top-level brand
func NewBrand(name, slug string) (*Brand, error) {
	if err := validateBrandName(name); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	brand := &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		IsActive:          true,
	}

	brand.AddDomainEvent(NewBrandCreatedEvent(brand))

	return brand, nil
}

// NewSubBrand creates a brand nested under a parent brand
func NewSubBrand(name, slug string, parent *Brand) (*Brand, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent brand is required")
	}
	if parent.ParentID != nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Brands can only be nested one level deep")
	}

	brand, err := NewBrand(name, slug)
	if err != nil {
		return nil, err
	}
	brand.ParentID = &parent.ID

	return brand, nil
}

// Update updates the brand's display fields
func (b *Brand) Update(name, description, logoURL, website string) error {
	if err := validateBrandName(name); err != nil {
		return err
	}
	if logoURL != "" && !isHTTPURL(logoURL) {
		return shared.NewDomainError("INVALID_URL", "Logo URL must be an http(s) URL")
	}
	if website != "" && !isHTTPURL(website) {
		return shared.NewDomainError("INVALID_URL", "Website must be an http(s) URL")
	}

	b.Name = name
	b.Description = description
	b.LogoURL = logoURL
	b.Website = website
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBrandUpdatedEvent(b))

	return nil
}

// UpdateSlug changes the brand's URL slug
// Existing links to the old slug will break
func (b *Brand) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	b.Slug = slug
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBrandUpdatedEvent(b))

	return nil
}

// SetSortOrder sets the display order of the brand
func (b *Brand) SetSortOrder(order int) {
	b.SortOrder = order
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Activate makes the brand visible in the storefront
func (b *Brand) Activate() error {
	if b.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Brand is already active")
	}

	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deactivate hides the brand from the storefront
func (b *Brand) Deactivate() error {
	if !b.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Brand is already inactive")
	}

	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsSubBrand returns true if the brand is nested under a parent
func (b *Brand) IsSubBrand() bool {
	return b.ParentID != nil
}

func isHTTPURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func validateBrandName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return nil
}

// validateSlug validates a URL slug: lowercase alphanumerics and single
// hyphens, no leading or trailing hyphen
func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	prev := '-'
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-':
			if prev == '-' {
				return shared.NewDomainError("INVALID_SLUG", "Slug cannot contain consecutive hyphens")
			}
		default:
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
		}
		prev = r
	}
	if strings.HasSuffix(slug, "-") {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot end with a hyphen")
	}
	return nil
}
