package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductService handles product management operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	brandRepo    catalog.BrandRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	brandRepo catalog.BrandRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if err := s.checkReferences(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, price)
	if err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	slugExists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if slugExists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}
	if err := product.UpdateSlug(slug); err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	product.SetBrand(req.BrandID)
	product.SetCategory(req.CategoryID)

	if req.CompareAtPrice != nil {
		compareAt, err := valueobject.NewMoney(*req.CompareAtPrice, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPricing(price, compareAt); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := product.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	if req.Attributes != "" {
		if err := product.SetAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	product.SetBrand(req.BrandID)
	product.SetCategory(req.CategoryID)

	if req.Price != nil || req.CompareAtPrice != nil {
		priceAmount := product.Price
		if req.Price != nil {
			priceAmount = *req.Price
		}
		compareAmount := product.CompareAtPrice
		if req.CompareAtPrice != nil {
			compareAmount = *req.CompareAtPrice
		}
		price, err := valueobject.NewMoney(priceAmount, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		compareAt, err := valueobject.NewMoney(compareAmount, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPricing(price, compareAt); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != "" {
		if err := product.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	if req.Attributes != nil {
		if err := product.SetAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetBySlug returns a single product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetBySKU returns a single product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns products matching the filter with the total count
func (s *ProductService) List(ctx context.Context, productFilter ProductListFilter) ([]*ProductResponse, int64, error) {
	filter := productFilter.toFilter()

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case productFilter.BrandID != nil:
		products, err = s.productRepo.FindByBrand(ctx, *productFilter.BrandID, filter)
	case productFilter.CategoryID != nil:
		products, err = s.productRepo.FindByCategory(ctx, *productFilter.CategoryID, filter)
	case productFilter.Status != "":
		products, err = s.productRepo.FindByStatus(ctx, catalog.ProductStatus(productFilter.Status), filter)
	default:
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses, total, nil
}

// ListActive returns storefront-visible products
func (s *ProductService) ListActive(ctx context.Context, listFilter ListFilter) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindActive(ctx, listFilter.toFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses, nil
}

// ListByCategoryTree returns active products in a category and all of its
// descendant categories.
func (s *ProductService) ListByCategoryTree(ctx context.Context, categoryID uuid.UUID, listFilter ListFilter) ([]*ProductResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	descendants, err := s.categoryRepo.FindDescendants(ctx, category.Path)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(descendants)+1)
	ids = append(ids, category.ID)
	for i := range descendants {
		ids = append(ids, descendants[i].ID)
	}

	products, err := s.productRepo.FindByCategories(ctx, ids, listFilter.toFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		if !products[i].IsActive() {
			continue
		}
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses, nil
}

// SetStatus transitions a product between active, inactive and discontinued
func (s *ProductService) SetStatus(ctx context.Context, id uuid.UUID, status catalog.ProductStatus) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case catalog.ProductStatusActive:
		err = product.Activate()
	case catalog.ProductStatusInactive:
		err = product.Deactivate()
	case catalog.ProductStatusDiscontinued:
		err = product.Discontinue()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product. Only discontinued products can be deleted.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsDiscontinued() {
		return shared.NewDomainError("INVALID_STATE", "Only discontinued products can be deleted")
	}
	return s.productRepo.Delete(ctx, id)
}

// checkReferences validates that the referenced brand and category exist
func (s *ProductService) checkReferences(ctx context.Context, brandID, categoryID *uuid.UUID) error {
	if brandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *brandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return err
		}
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	return nil
}
