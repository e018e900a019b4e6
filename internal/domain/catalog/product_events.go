package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductUpdated       = "ProductUpdated"
	EventTypeProductStatusChanged = "ProductStatusChanged"
	EventTypeProductPriceChanged  = "ProductPriceChanged"
	EventTypeProductDeleted       = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID       `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	BrandID    *uuid.UUID      `json:"brand_id,omitempty"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, product.ID, AggregateTypeProduct),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Price:           product.Price,
		BrandID:         product.BrandID,
		CategoryID:      product.CategoryID,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID  `json:"product_id"`
	SKU        string     `json:"sku"`
	Name       string     `json:"name"`
	BrandID    *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, product.ID, AggregateTypeProduct),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		BrandID:         product.BrandID,
		CategoryID:      product.CategoryID,
	}
}

// ProductStatusChangedEvent is published when a product's status changes
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	SKU       string        `json:"sku"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product, oldStatus, newStatus ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, product.ID, AggregateTypeProduct),
		ProductID:       product.ID,
		SKU:             product.SKU,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ProductPriceChangedEvent is published when a product's pricing changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID         uuid.UUID       `json:"product_id"`
	SKU               string          `json:"sku"`
	OldPrice          decimal.Decimal `json:"old_price"`
	NewPrice          decimal.Decimal `json:"new_price"`
	OldCompareAtPrice decimal.Decimal `json:"old_compare_at_price"`
	NewCompareAtPrice decimal.Decimal `json:"new_compare_at_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product, oldPrice, oldCompareAt decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeProductPriceChanged, product.ID, AggregateTypeProduct),
		ProductID:         product.ID,
		SKU:               product.SKU,
		OldPrice:          oldPrice,
		NewPrice:          product.Price,
		OldCompareAtPrice: oldCompareAt,
		NewCompareAtPrice: product.CompareAtPrice,
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, product.ID, AggregateTypeProduct),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}
