package catalog

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBrand = "Brand"

// Event type constants
const (
	EventTypeBrandCreated = "BrandCreated"
	EventTypeBrandUpdated = "BrandUpdated"
	EventTypeBrandDeleted = "BrandDeleted"
)

// BrandCreatedEvent is published when a new brand is created
type BrandCreatedEvent struct {
	shared.BaseDomainEvent
	BrandID  uuid.UUID  `json:"brand_id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// NewBrandCreatedEvent creates a new BrandCreatedEvent
func NewBrandCreatedEvent(brand *Brand) *BrandCreatedEvent {
	return &BrandCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBrandCreated, brand.ID, AggregateTypeBrand),
		BrandID:         brand.ID,
		Name:            brand.Name,
		Slug:            brand.Slug,
		ParentID:        brand.ParentID,
	}
}

// BrandUpdatedEvent is published when a brand is updated
type BrandUpdatedEvent struct {
	shared.BaseDomainEvent
	BrandID uuid.UUID `json:"brand_id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
}

// NewBrandUpdatedEvent creates a new BrandUpdatedEvent
func NewBrandUpdatedEvent(brand *Brand) *BrandUpdatedEvent {
	return &BrandUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBrandUpdated, brand.ID, AggregateTypeBrand),
		BrandID:         brand.ID,
		Name:            brand.Name,
		Slug:            brand.Slug,
	}
}

// BrandDeletedEvent is published when a brand is deleted
type BrandDeletedEvent struct {
	shared.BaseDomainEvent
	BrandID uuid.UUID `json:"brand_id"`
	Slug    string    `json:"slug"`
}

// NewBrandDeletedEvent creates a new BrandDeletedEvent
func NewBrandDeletedEvent(brand *Brand) *BrandDeletedEvent {
	return &BrandDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBrandDeleted, brand.ID, AggregateTypeBrand),
		BrandID:         brand.ID,
		Slug:            brand.Slug,
	}
}
