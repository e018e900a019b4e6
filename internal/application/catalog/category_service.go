package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryService handles category tree management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}

	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	var category *catalog.Category
	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		category, err = catalog.NewChildCategory(slug, req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(slug, req.Name)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update updates a category's name, description and sort order
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Move reparents a category. Descendant paths are rewritten in the same
// transaction so tree queries stay consistent.
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := category.Path

	var parent *catalog.Category
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
		}
		parent, err = s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	descendants, err := s.categoryRepo.FindDescendants(ctx, oldPath)
	if err != nil {
		return nil, err
	}

	if err := category.MoveTo(parent); err != nil {
		return nil, err
	}

	// Rewrite descendant paths under the category's new location
	batch := make([]*catalog.Category, 0, len(descendants)+1)
	batch = append(batch, category)
	for i := range descendants {
		d := &descendants[i]
		if err := d.RebaseUnder(oldPath, category.Path, category.Level); err != nil {
			return nil, err
		}
		batch = append(batch, d)
	}

	if err := s.categoryRepo.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Get returns a single category
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetBySlug returns a single category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List returns categories matching the filter with the total count
func (s *CategoryService) List(ctx context.Context, listFilter ListFilter) ([]*CategoryResponse, int64, error) {
	filter := listFilter.toFilter()

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}
	return responses, total, nil
}

// Tree returns the whole category tree rooted at the top level
func (s *CategoryService) Tree(ctx context.Context) ([]*CategoryTreeNode, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.OrderBy = "sort_order"
	filter.OrderDir = "asc"

	all, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*CategoryTreeNode, len(all))
	for i := range all {
		nodes[all[i].ID] = &CategoryTreeNode{
			CategoryResponse: *toCategoryResponse(&all[i]),
			Children:         []*CategoryTreeNode{},
		}
	}

	roots := make([]*CategoryTreeNode, 0)
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	sortTree(roots)
	return roots, nil
}

func sortTree(nodes []*CategoryTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, node := range nodes {
		sortTree(node.Children)
	}
}

// Delete removes a category. Categories with children or products cannot
// be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	childCount, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN", "Category has child categories and cannot be deleted")
	}

	productCount, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category has products assigned and cannot be deleted")
	}

	return s.categoryRepo.Delete(ctx, id)
}
