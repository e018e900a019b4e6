package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"omitempty,slug"`
	Description string     `json:"description"`
	LogoURL     string     `json:"logo_url" binding:"omitempty,max=500"`
	Website     string     `json:"website" binding:"omitempty,max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" binding:"omitempty,max=500"`
	Website     string `json:"website" binding:"omitempty,max=500"`
	SortOrder   *int   `json:"sort_order"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"omitempty,slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"`
}

// MoveCategoryRequest represents a request to move a category in the tree.
// A nil parent ID moves the category to the root level.
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU            string           `json:"sku" binding:"required,min=1,max=50"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Slug           string           `json:"slug" binding:"omitempty,slug"`
	Description    string           `json:"description"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	Price          decimal.Decimal  `json:"price" binding:"required"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	ImageURL       string           `json:"image_url" binding:"omitempty,max=500"`
	SortOrder      *int             `json:"sort_order"`
	Attributes     string           `json:"attributes"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Description    string           `json:"description"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	ImageURL       string           `json:"image_url" binding:"omitempty,max=500"`
	SortOrder      *int             `json:"sort_order"`
	Attributes     *string          `json:"attributes"`
}

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	InputType string `json:"input_type" binding:"required,oneof=text select boolean"`
	Options   string `json:"options"`
	SortOrder *int   `json:"sort_order"`
}

// UpdateAttributeRequest represents a request to update an attribute
type UpdateAttributeRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=100"`
	Options   *string `json:"options"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// CreateMasterDataRequest represents a request to create a master data entry
type CreateMasterDataRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=50"`
	Label     string `json:"label" binding:"required,min=1,max=100"`
	SortOrder *int   `json:"sort_order"`
}

// UpdateMasterDataRequest represents a request to update a master data entry
type UpdateMasterDataRequest struct {
	Label     string `json:"label" binding:"required,min=1,max=100"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// ListFilter represents common list query parameters
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductListFilter represents product list query parameters
type ProductListFilter struct {
	ListFilter
	BrandID    *uuid.UUID `form:"brand_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	LogoURL     string     `json:"logo_url,omitempty"`
	Website     string     `json:"website,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Path        string     `json:"path"`
	Level       int        `json:"level"`
	SortOrder   int        `json:"sort_order"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryTreeNode represents a category with its children
type CategoryTreeNode struct {
	CategoryResponse
	Children []*CategoryTreeNode `json:"children"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	BrandID        *uuid.UUID      `json:"brand_id,omitempty"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	CompareAtPrice decimal.Decimal `json:"compare_at_price"`
	OnSale         bool            `json:"on_sale"`
	PercentOff     decimal.Decimal `json:"percent_off"`
	ImageURL       string          `json:"image_url,omitempty"`
	Status         string          `json:"status"`
	SortOrder      int             `json:"sort_order"`
	Attributes     string          `json:"attributes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// AttributeResponse represents an attribute in API responses
type AttributeResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	InputType string    `json:"input_type"`
	Options   string    `json:"options,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MasterDataResponse represents a master data entry in API responses
type MasterDataResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Mappers
// ============================================================================

func toBrandResponse(b *catalog.Brand) *BrandResponse {
	return &BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		Website:     b.Website,
		ParentID:    b.ParentID,
		IsActive:    b.IsActive,
		SortOrder:   b.SortOrder,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Version:     b.Version,
	}
}

func toCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		Path:        c.Path,
		Level:       c.Level,
		SortOrder:   c.SortOrder,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		BrandID:        p.BrandID,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		OnSale:         p.IsOnSale(),
		PercentOff:     p.GetPercentOff(),
		ImageURL:       p.ImageURL,
		Status:         string(p.Status),
		SortOrder:      p.SortOrder,
		Attributes:     p.Attributes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

func toAttributeResponse(a *catalog.Attribute) *AttributeResponse {
	return &AttributeResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		InputType: string(a.InputType),
		Options:   a.Options,
		SortOrder: a.SortOrder,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toMasterDataResponse(e *catalog.MasterDataEntry) *MasterDataResponse {
	return &MasterDataResponse{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Code:      e.Code,
		Label:     e.Label,
		SortOrder: e.SortOrder,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// toFilter converts list query parameters to a domain filter
func (f ListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Search != "" {
		filter.Search = f.Search
	}
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}
