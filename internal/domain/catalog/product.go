package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Slug           string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description    string          `gorm:"type:text"`
	BrandID        *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CompareAtPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Original price when discounted; zero means no discount
	ImageURL       string          `gorm:"type:varchar(500)"`
	Status         ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder      int             `gorm:"not null;default:0"`
	Attributes     string          `gorm:"type:jsonb"` // JSON storage for attribute values keyed by attribute code
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name string, price valueobject.Money) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Slug:              Slugify(name),
		Price:             price.Amount(),
		CompareAtPrice:    decimal.Zero,
		Status:            ProductStatusActive,
		Attributes:        "{}",
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateSKU updates the product's SKU
// Note: This should be used with caution as orders reference the SKU
func (p *Product) UpdateSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.SKU = strings.ToUpper(sku)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateSlug changes the product's URL slug
func (p *Product) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	p.Slug = slug
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBrand assigns the product to a brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetPricing sets the selling price and the optional compare-at price.
// A zero compare-at price clears the discount; a non-zero compare-at
// price must exceed the selling price.
func (p *Product) SetPricing(price, compareAt valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if compareAt.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price cannot be negative")
	}
	if !compareAt.IsZero() && compareAt.Amount().LessThanOrEqual(price.Amount()) {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price must be greater than the selling price")
	}

	oldPrice := p.Price
	oldCompareAt := p.CompareAtPrice

	p.Price = price.Amount()
	p.CompareAtPrice = compareAt.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, oldCompareAt))

	return nil
}

// SetImageURL sets the product's primary image
func (p *Product) SetImageURL(url string) error {
	if url != "" && !isHTTPURL(url) {
		return shared.NewDomainError("INVALID_URL", "Image URL must be an http(s) URL")
	}

	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order of the product
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetAttributes sets attribute values as a JSON object keyed by attribute code
func (p *Product) SetAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	trimmed := strings.TrimSpace(attributes)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Attributes must be a valid JSON object")
	}

	p.Attributes = trimmed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the product purchasable
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

// Discontinue marks the product as discontinued
// A discontinued product cannot be reactivated
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	oldStatus := p.Status
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusDiscontinued))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsDiscontinued returns true if the product is discontinued
func (p *Product) IsDiscontinued() bool {
	return p.Status == ProductStatusDiscontinued
}

// HasBrand returns true if the product has a brand assigned
func (p *Product) HasBrand() bool {
	return p.BrandID != nil
}

// HasCategory returns true if the product has a category assigned
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

// IsOnSale returns true if the product carries a compare-at price
func (p *Product) IsOnSale() bool {
	return !p.CompareAtPrice.IsZero() && p.CompareAtPrice.GreaterThan(p.Price)
}

// GetPriceMoney returns the selling price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// GetCompareAtPriceMoney returns the compare-at price as a Money value object
func (p *Product) GetCompareAtPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.CompareAtPrice)
}

// GetPercentOff returns the discount percentage against the compare-at
// price, rounded to the nearest whole percent. Returns 0 when the product
// is not on sale.
func (p *Product) GetPercentOff() decimal.Decimal {
	if !p.IsOnSale() {
		return decimal.Zero
	}
	discount := p.CompareAtPrice.Sub(p.Price)
	return discount.Div(p.CompareAtPrice).Mul(decimal.NewFromInt(100)).Round(0)
}

// validateSKU validates the stock keeping unit code
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
