package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// Update updates an existing role
func (r *GormRoleRepository) Update(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// Delete deletes a role, its permissions and its user assignments
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.RolePermission{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&identity.UserRole{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&identity.Role{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadPermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByCode finds a role by its code
func (r *GormRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadPermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDs finds multiple roles by their IDs
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return []*identity.Role{}, nil
	}
	var roles []*identity.Role
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("sort_order ASC, name ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := r.LoadPermissions(ctx, role); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// FindAll returns all roles matching the filter
func (r *GormRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Role, error) {
	var roles []*identity.Role
	query := r.db.WithContext(ctx).Model(&identity.Role{})
	query = applySearch(query, filter, "code", "name")
	if err := query.Order("sort_order ASC, name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := r.LoadPermissions(ctx, role); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// SavePermissions replaces the role's stored permissions
func (r *GormRoleRepository) SavePermissions(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.RolePermission{}, "role_id = ?", role.ID).Error; err != nil {
			return err
		}
		if len(role.Permissions) == 0 {
			return nil
		}
		rows := make([]identity.RolePermission, 0, len(role.Permissions))
		for _, perm := range role.Permissions {
			rows = append(rows, identity.RolePermission{RoleID: role.ID, Code: perm.Code})
		}
		return tx.Create(&rows).Error
	})
}

// LoadPermissions loads the role's permissions from the database
func (r *GormRoleRepository) LoadPermissions(ctx context.Context, role *identity.Role) error {
	var rows []identity.RolePermission
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", role.ID).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	perms := make([]identity.Permission, 0, len(rows))
	for _, row := range rows {
		perm, err := identity.NewPermissionFromCode(row.Code)
		if err != nil {
			continue
		}
		perms = append(perms, *perm)
	}
	role.Permissions = perms
	return nil
}

// Count counts roles matching the filter
func (r *GormRoleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.Role{})
	query = applySearch(query, filter, "code", "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a role with the given code exists
func (r *GormRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Role{}).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
