package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// RoleService handles role and permission management
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository, userRepo identity.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// Create creates a new role with an optional permission set
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this code already exists")
	}

	role, err := identity.NewRole(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := role.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		role.SetSortOrder(*req.SortOrder)
	}
	if len(req.Permissions) > 0 {
		perms, err := parsePermissions(req.Permissions)
		if err != nil {
			return nil, err
		}
		if err := role.SetPermissions(perms); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	if err := s.roleRepo.SavePermissions(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Update updates a role and optionally replaces its permissions
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := role.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		role.SetSortOrder(*req.SortOrder)
	}
	if req.IsEnabled != nil {
		if *req.IsEnabled {
			err = role.Enable()
		} else {
			err = role.Disable()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}

	if req.Permissions != nil {
		perms, err := parsePermissions(*req.Permissions)
		if err != nil {
			return nil, err
		}
		if err := role.SetPermissions(perms); err != nil {
			return nil, err
		}
		if err := s.roleRepo.SavePermissions(ctx, role); err != nil {
			return nil, err
		}
	}
	return toRoleResponse(role), nil
}

// Get returns a single role with its permissions
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List returns all roles matching the filter
func (s *RoleService) List(ctx context.Context, search string) ([]*RoleResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = search

	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, toRoleResponse(role))
	}
	return responses, nil
}

// Delete removes a role. System roles and roles still assigned to users
// cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !role.CanDelete() {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	users, err := s.userRepo.FindByRoleID(ctx, id)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is assigned to users and cannot be deleted")
	}

	return s.roleRepo.Delete(ctx, id)
}

func parsePermissions(codes []string) ([]identity.Permission, error) {
	perms := make([]identity.Permission, 0, len(codes))
	for _, code := range codes {
		perm, err := identity.NewPermissionFromCode(code)
		if err != nil {
			return nil, err
		}
		perms = append(perms, *perm)
	}
	return perms, nil
}
