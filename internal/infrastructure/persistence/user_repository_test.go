package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{}, &identity.UserRole{}, &identity.Role{}, &identity.RolePermission{})
	require.NoError(t, err)

	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("shopper@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", found.Email)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Shopper@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_Roles(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewStaffUser("admin@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	roleA := uuid.New()
	roleB := uuid.New()
	require.NoError(t, user.SetRoles([]uuid.UUID{roleA, roleB}))
	require.NoError(t, repo.SaveUserRoles(ctx, user))

	t.Run("loads assigned roles", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{roleA, roleB}, found.RoleIDs)
	})

	t.Run("replaces roles on save", func(t *testing.T) {
		require.NoError(t, user.SetRoles([]uuid.UUID{roleA}))
		require.NoError(t, repo.SaveUserRoles(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{roleA}, found.RoleIDs)
	})

	t.Run("finds users by role", func(t *testing.T) {
		users, err := repo.FindByRoleID(ctx, roleA)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, user.ID, users[0].ID)
	})
}

func TestUserRepository_FindAll(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	shopper, err := identity.NewUser("alice@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, shopper))

	staff, err := identity.NewStaffUser("bob@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, staff))

	t.Run("lists all users", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.NewUserFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, users, 2)
	})

	t.Run("filters staff only", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.NewUserFilter().WithStaffOnly())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, staff.ID, users[0].ID)
	})

	t.Run("filters by keyword", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.NewUserFilter().WithKeyword("alice"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, shopper.ID, users[0].ID)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewStaffUser("temp@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, user.SetRoles([]uuid.UUID{uuid.New()}))
	require.NoError(t, repo.SaveUserRoles(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&identity.UserRole{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
