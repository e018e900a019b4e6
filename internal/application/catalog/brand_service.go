package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// BrandService handles brand management operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository) *BrandService {
	return &BrandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
	}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}

	exists, err := s.brandRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this slug already exists")
	}

	var brand *catalog.Brand
	if req.ParentID != nil {
		parent, err := s.brandRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent brand not found")
			}
			return nil, err
		}
		brand, err = catalog.NewSubBrand(req.Name, slug, parent)
		if err != nil {
			return nil, err
		}
	} else {
		brand, err = catalog.NewBrand(req.Name, slug)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" || req.LogoURL != "" || req.Website != "" {
		if err := brand.Update(req.Name, req.Description, req.LogoURL, req.Website); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		brand.SetSortOrder(*req.SortOrder)
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Update updates an existing brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := brand.Update(req.Name, req.Description, req.LogoURL, req.Website); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		brand.SetSortOrder(*req.SortOrder)
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Get returns a single brand
func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetBySlug returns a single brand by slug
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// List returns brands matching the filter with the total count
func (s *BrandService) List(ctx context.Context, listFilter ListFilter) ([]*BrandResponse, int64, error) {
	filter := listFilter.toFilter()

	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.brandRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*BrandResponse, 0, len(brands))
	for i := range brands {
		responses = append(responses, toBrandResponse(&brands[i]))
	}
	return responses, total, nil
}

// ListActive returns only active brands, for the storefront
func (s *BrandService) ListActive(ctx context.Context, listFilter ListFilter) ([]*BrandResponse, error) {
	brands, err := s.brandRepo.FindActive(ctx, listFilter.toFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]*BrandResponse, 0, len(brands))
	for i := range brands {
		responses = append(responses, toBrandResponse(&brands[i]))
	}
	return responses, nil
}

// Activate makes a brand visible on the storefront
func (s *BrandService) Activate(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := brand.Activate(); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Deactivate hides a brand from the storefront
func (s *BrandService) Deactivate(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := brand.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Delete removes a brand. Brands with products or sub-brands cannot be deleted.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}

	productCount, err := s.productRepo.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("BRAND_IN_USE", "Brand has products assigned and cannot be deleted")
	}

	children, err := s.brandRepo.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("BRAND_HAS_CHILDREN", "Brand has sub-brands and cannot be deleted")
	}

	return s.brandRepo.Delete(ctx, id)
}
