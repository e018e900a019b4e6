package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func newBrandService() (*BrandService, *MockBrandRepository, *MockProductRepository) {
	brandRepo := new(MockBrandRepository)
	productRepo := new(MockProductRepository)
	return NewBrandService(brandRepo, productRepo), brandRepo, productRepo
}

func TestBrandService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates brand with generated slug", func(t *testing.T) {
		svc, brandRepo, _ := newBrandService()
		brandRepo.On("ExistsBySlug", ctx, "acme-corp").Return(false, nil)
		brandRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Brand")).Return(nil)

		resp, err := svc.Create(ctx, CreateBrandRequest{Name: "Acme Corp"})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.Name)
		assert.Equal(t, "acme-corp", resp.Slug)
		assert.True(t, resp.IsActive)
		brandRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		svc, brandRepo, _ := newBrandService()
		brandRepo.On("ExistsBySlug", ctx, "acme-corp").Return(true, nil)

		_, err := svc.Create(ctx, CreateBrandRequest{Name: "Acme Corp"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("creates sub-brand under parent", func(t *testing.T) {
		svc, brandRepo, _ := newBrandService()
		parent, err := catalog.NewBrand("Acme", "acme")
		require.NoError(t, err)

		brandRepo.On("ExistsBySlug", ctx, "acme-outdoor").Return(false, nil)
		brandRepo.On("FindByID", ctx, parent.ID).Return(parent, nil)
		brandRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Brand")).Return(nil)

		resp, err := svc.Create(ctx, CreateBrandRequest{Name: "Acme Outdoor", ParentID: &parent.ID})

		require.NoError(t, err)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, parent.ID, *resp.ParentID)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		svc, brandRepo, _ := newBrandService()
		parentID := uuid.New()
		brandRepo.On("ExistsBySlug", ctx, "acme-outdoor").Return(false, nil)
		brandRepo.On("FindByID", ctx, parentID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateBrandRequest{Name: "Acme Outdoor", ParentID: &parentID})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})
}

func TestBrandService_Update(t *testing.T) {
	ctx := context.Background()

	svc, brandRepo, _ := newBrandService()
	brand, err := catalog.NewBrand("Acme", "acme")
	require.NoError(t, err)

	brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
	brandRepo.On("Save", ctx, brand).Return(nil)

	resp, err := svc.Update(ctx, brand.ID, UpdateBrandRequest{
		Name:        "Acme Corporation",
		Description: "Everything for coyotes",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", resp.Name)
	assert.Equal(t, "Everything for coyotes", resp.Description)
	// Slug stays stable across renames
	assert.Equal(t, "acme", resp.Slug)
}

func TestBrandService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes unused brand", func(t *testing.T) {
		svc, brandRepo, productRepo := newBrandService()
		brand, err := catalog.NewBrand("Acme", "acme")
		require.NoError(t, err)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		productRepo.On("CountByBrand", ctx, brand.ID).Return(int64(0), nil)
		brandRepo.On("FindChildren", ctx, brand.ID).Return([]catalog.Brand{}, nil)
		brandRepo.On("Delete", ctx, brand.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, brand.ID))
		brandRepo.AssertExpectations(t)
	})

	t.Run("refuses brand with products", func(t *testing.T) {
		svc, brandRepo, productRepo := newBrandService()
		brand, err := catalog.NewBrand("Acme", "acme")
		require.NoError(t, err)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		productRepo.On("CountByBrand", ctx, brand.ID).Return(int64(3), nil)

		err = svc.Delete(ctx, brand.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BRAND_IN_USE", domainErr.Code)
		brandRepo.AssertNotCalled(t, "Delete", ctx, brand.ID)
	})

	t.Run("refuses brand with sub-brands", func(t *testing.T) {
		svc, brandRepo, productRepo := newBrandService()
		brand, err := catalog.NewBrand("Acme", "acme")
		require.NoError(t, err)
		child, err := catalog.NewSubBrand("Acme Outdoor", "acme-outdoor", brand)
		require.NoError(t, err)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		productRepo.On("CountByBrand", ctx, brand.ID).Return(int64(0), nil)
		brandRepo.On("FindChildren", ctx, brand.ID).Return([]catalog.Brand{*child}, nil)

		err = svc.Delete(ctx, brand.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BRAND_HAS_CHILDREN", domainErr.Code)
	})
}
