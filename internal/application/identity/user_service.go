package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserService handles admin user account management
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Create creates a user account, optionally a staff account with roles
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	var user *identity.User
	if req.IsStaff {
		user, err = identity.NewStaffUser(req.Email, req.Password)
	} else {
		user, err = identity.NewUser(req.Email, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" || req.LastName != "" {
		if err := user.SetName(req.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}

	if len(req.RoleIDs) > 0 {
		if err := s.checkRolesExist(ctx, req.RoleIDs); err != nil {
			return nil, err
		}
		if err := user.SetRoles(req.RoleIDs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(user.RoleIDs) > 0 {
		if err := s.userRepo.SaveUserRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	s.logger.Info("User account created",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_staff", user.IsStaff),
	)
	return toUserResponse(user), nil
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.SetName(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Get returns a single user account
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List returns user accounts matching the filter with the total count
func (s *UserService) List(ctx context.Context, req UserListFilter) ([]*UserResponse, int64, error) {
	filter := identity.NewUserFilter()
	if req.Search != "" {
		filter = filter.WithKeyword(req.Search)
	}
	if req.Status != "" {
		filter = filter.WithStatus(identity.UserStatus(req.Status))
	}
	if req.StaffOnly {
		filter = filter.WithStaffOnly()
	}
	if req.RoleID != nil {
		filter = filter.WithRoleID(*req.RoleID)
	}
	if req.Page > 0 || req.PageSize > 0 {
		filter = filter.WithPagination(req.Page, req.PageSize)
	}
	if req.OrderBy != "" {
		filter.SortBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.SortOrder = req.OrderDir
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, total, nil
}

// AssignRoles replaces a staff user's roles
func (s *UserService) AssignRoles(ctx context.Context, id uuid.UUID, req AssignRolesRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(req.RoleIDs) > 0 {
		if err := s.checkRolesExist(ctx, req.RoleIDs); err != nil {
			return nil, err
		}
	}
	if err := user.SetRoles(req.RoleIDs); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUserRoles(ctx, user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Activate re-enables a deactivated account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Unlock clears a lockout before it expires
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Unlock(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) checkRolesExist(ctx context.Context, roleIDs []uuid.UUID) error {
	roles, err := s.roleRepo.FindByIDs(ctx, roleIDs)
	if err != nil {
		return err
	}
	if len(roles) != len(roleIDs) {
		return shared.NewDomainError("INVALID_ROLE", "One or more roles do not exist")
	}
	return nil
}
