package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// MaxCategoryDepth is the maximum depth of the category hierarchy
const MaxCategoryDepth = 5

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category represents a product category in the catalog
// It supports tree structure with parent-child relationships
type Category struct {
	shared.BaseAggregateRoot
	Slug        string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	Path        string         `gorm:"type:varchar(500);not null;index"` // Materialized path for tree queries
	Level       int            `gorm:"not null;default:0"`
	SortOrder   int            `gorm:"not null;default:0"`
	Status      CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(slug, name string) (*Category, error) {
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		Status:            CategoryStatusActive,
		Level:             0,
	}
	// Root category path is just the ID
	category.Path = category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new category nested under a parent
func NewChildCategory(slug, name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	if parent.Level >= MaxCategoryDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		ParentID:          &parent.ID,
		Level:             parent.Level + 1,
		Status:            CategoryStatusActive,
	}
	// Child category path is parent path + separator + child ID
	category.Path = parent.Path + "/" + category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// UpdateSlug changes the category's URL slug
// Existing storefront links to the old slug will break
func (c *Category) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	c.Slug = slug
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// MoveTo reparents the category under a new parent. Passing nil makes the
// category a root. The move is rejected when it would exceed the maximum
// depth or create a cycle.
func (c *Category) MoveTo(parent *Category) error {
	if parent == nil {
		oldPath := c.Path
		c.ParentID = nil
		c.Level = 0
		c.Path = c.ID.String()
		c.UpdatedAt = time.Now()
		c.IncrementVersion()
		c.AddDomainEvent(NewCategoryMovedEvent(c, oldPath))
		return nil
	}

	if parent.ID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	if c.IsAncestorOf(parent) {
		return shared.NewDomainError("INVALID_PARENT", "Cannot move a category under one of its descendants")
	}
	if parent.Level >= MaxCategoryDepth-1 {
		return shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	oldPath := c.Path
	c.ParentID = &parent.ID
	c.Level = parent.Level + 1
	c.Path = parent.Path + "/" + c.ID.String()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryMovedEvent(c, oldPath))

	return nil
}

// RebaseUnder rewrites this category's path and level after an ancestor
// moved from oldBase to newBase. ancestorLevel is the ancestor's new level.
func (c *Category) RebaseUnder(oldBase, newBase string, ancestorLevel int) error {
	if !strings.HasPrefix(c.Path, oldBase+"/") {
		return shared.NewDomainError("INVALID_PATH", "Category is not a descendant of the moved category")
	}

	suffix := strings.TrimPrefix(c.Path, oldBase)
	newLevel := ancestorLevel + strings.Count(suffix, "/")
	if newLevel >= MaxCategoryDepth {
		return shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	c.Path = newBase + suffix
	c.Level = newLevel
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the category
func (c *Category) Activate() error {
	if c.Status == CategoryStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.Status = CategoryStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryStatusChangedEvent(c, CategoryStatusInactive, CategoryStatusActive))

	return nil
}

// Deactivate deactivates the category
func (c *Category) Deactivate() error {
	if c.Status == CategoryStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.Status = CategoryStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryStatusChangedEvent(c, CategoryStatusActive, CategoryStatusInactive))

	return nil
}

// IsActive returns true if the category is active
func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// GetAncestorIDs returns the IDs of all ancestor categories
func (c *Category) GetAncestorIDs() []uuid.UUID {
	if c.Path == "" {
		return nil
	}

	parts := strings.Split(c.Path, "/")
	if len(parts) <= 1 {
		return nil
	}

	// Exclude the last element which is this category's ID
	ancestors := make([]uuid.UUID, 0, len(parts)-1)
	for i := 0; i < len(parts)-1; i++ {
		if id, err := uuid.Parse(parts[i]); err == nil {
			ancestors = append(ancestors, id)
		}
	}

	return ancestors
}

// IsAncestorOf returns true if this category is an ancestor of the given category
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil || other.Path == "" {
		return false
	}
	return strings.HasPrefix(other.Path, c.Path+"/")
}

// IsDescendantOf returns true if this category is a descendant of the given category
func (c *Category) IsDescendantOf(other *Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c)
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
