package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func setupBrandTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Brand{})
	require.NoError(t, err)

	return db
}

func TestBrandRepository_Save(t *testing.T) {
	db := setupBrandTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	t.Run("saves new brand", func(t *testing.T) {
		brand, err := catalog.NewBrand("Acme", "acme")
		require.NoError(t, err)

		err = repo.Save(ctx, brand)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", found.Name)
		assert.Equal(t, "acme", found.Slug)
	})

	t.Run("updates existing brand", func(t *testing.T) {
		brand, err := catalog.NewBrand("Globex", "globex")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, brand))

		require.NoError(t, brand.Update("Globex Corp", "", "", ""))
		require.NoError(t, repo.Save(ctx, brand))

		found, err := repo.FindByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.Equal(t, "Globex Corp", found.Name)
	})
}

func TestBrandRepository_FindBySlug(t *testing.T) {
	db := setupBrandTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	brand, err := catalog.NewBrand("Initech", "initech")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, brand))

	t.Run("finds by slug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "initech")
		require.NoError(t, err)
		assert.Equal(t, brand.ID, found.ID)
	})

	t.Run("returns not found for unknown slug", func(t *testing.T) {
		_, err := repo.FindBySlug(ctx, "no-such-brand")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBrandRepository_FindAll(t *testing.T) {
	db := setupBrandTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	names := []string{"Alpha", "Beta", "Gamma"}
	for _, name := range names {
		brand, err := catalog.NewBrand(name, catalog.Slugify(name))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, brand))
	}

	t.Run("lists all brands", func(t *testing.T) {
		filter := shared.DefaultFilter()
		brands, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, brands, 3)
	})

	t.Run("filters by search term", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "bet"
		brands, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, brands, 1)
		assert.Equal(t, "Beta", brands[0].Name)
	})
}

func TestBrandRepository_Delete(t *testing.T) {
	db := setupBrandTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	brand, err := catalog.NewBrand("Umbrella", "umbrella")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, brand))

	t.Run("deletes existing brand", func(t *testing.T) {
		err := repo.Delete(ctx, brand.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, brand.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for missing brand", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBrandRepository_ExistsBySlug(t *testing.T) {
	db := setupBrandTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	brand, err := catalog.NewBrand("Wayne", "wayne")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, brand))

	exists, err := repo.ExistsBySlug(ctx, "wayne")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "stark")
	require.NoError(t, err)
	assert.False(t, exists)
}
