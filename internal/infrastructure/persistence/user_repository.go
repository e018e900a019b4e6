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

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete deletes a user and its role assignments
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.UserRole{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&identity.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadUserRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadUserRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns users matching the filter with the total count
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.User{})

	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			keyword, keyword, keyword,
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StaffOnly {
		query = query.Where("is_staff = ?", true)
	}
	if filter.RoleID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&identity.UserRole{}).Select("user_id").Where("role_id = ?", *filter.RoleID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !columnNameRegex.MatchString(sortBy) {
		sortBy = "created_at"
	}
	order := sortBy + " DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = sortBy + " ASC"
	}

	var users []*identity.User
	if err := query.Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	for _, user := range users {
		if err := r.LoadUserRoles(ctx, user); err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

// FindByRoleID finds all users with a specific role
func (r *GormUserRepository) FindByRoleID(ctx context.Context, roleID uuid.UUID) ([]*identity.User, error) {
	var users []*identity.User
	if err := r.db.WithContext(ctx).
		Where("id IN (?)",
			r.db.Model(&identity.UserRole{}).Select("user_id").Where("role_id = ?", roleID)).
		Order("email ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsByEmail checks if an email is already registered
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveUserRoles replaces the user's role assignments
func (r *GormUserRepository) SaveUserRoles(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.UserRole{}, "user_id = ?", user.ID).Error; err != nil {
			return err
		}
		if len(user.RoleIDs) == 0 {
			return nil
		}
		rows := make([]identity.UserRole, 0, len(user.RoleIDs))
		for _, roleID := range user.RoleIDs {
			rows = append(rows, identity.UserRole{UserID: user.ID, RoleID: roleID})
		}
		return tx.Create(&rows).Error
	})
}

// LoadUserRoles loads the user's role IDs from the join table
func (r *GormUserRepository) LoadUserRoles(ctx context.Context, user *identity.User) error {
	var rows []identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&rows).Error; err != nil {
		return err
	}
	roleIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		roleIDs = append(roleIDs, row.RoleID)
	}
	user.RoleIDs = roleIDs
	return nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
