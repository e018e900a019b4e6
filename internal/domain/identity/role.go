package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Permission represents a functional permission (resource:action pattern)
// It is a value object
type Permission struct {
	Code        string // e.g., "product:create"
	Resource    string // e.g., "product"
	Action      string // e.g., "create"
	Description string
}

var permissionPartRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NewPermission creates a new Permission value object
func NewPermission(resource, action string) (*Permission, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))

	if !permissionPartRegex.MatchString(resource) {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission resource must be lowercase alphanumeric")
	}
	if !permissionPartRegex.MatchString(action) {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission action must be lowercase alphanumeric")
	}

	return &Permission{
		Code:     resource + ":" + action,
		Resource: resource,
		Action:   action,
	}, nil
}

// NewPermissionFromCode creates a Permission from a code string (e.g., "product:create")
func NewPermissionFromCode(code string) (*Permission, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return NewPermission(parts[0], parts[1])
}

// Equals checks if two permissions are equal
func (p Permission) Equals(other Permission) bool {
	return p.Code == other.Code
}

// IsEmpty returns true if the permission is empty
func (p Permission) IsEmpty() bool {
	return p.Code == ""
}

// Role represents a named set of admin permissions
// It is the aggregate root for role-related operations
type Role struct {
	shared.BaseAggregateRoot
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(100);not null"`
	Description  string `gorm:"type:text"`
	IsSystemRole bool   `gorm:"not null;default:false"` // System roles cannot be deleted
	IsEnabled    bool   `gorm:"not null;default:true"`
	SortOrder    int    `gorm:"not null;default:0"`
	Permissions  []Permission `gorm:"-"` // Stored in separate table, loaded by repository
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// RolePermission is the persistence row backing a role's permission
type RolePermission struct {
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(100);primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (RolePermission) TableName() string {
	return "role_permissions"
}

// NewRole creates a new role
func NewRole(code, name string) (*Role, error) {
	if err := validateRoleCode(code); err != nil {
		return nil, err
	}
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		IsEnabled:         true,
		Permissions:       make([]Permission, 0),
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// NewSystemRole creates a built-in role that cannot be deleted
func NewSystemRole(code, name string) (*Role, error) {
	role, err := NewRole(code, name)
	if err != nil {
		return nil, err
	}

	role.IsSystemRole = true
	return role, nil
}

// Update updates the role's display fields
func (r *Role) Update(name, description string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(name)
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoleUpdatedEvent(r))

	return nil
}

// SetSortOrder sets the display order of the role
func (r *Role) SetSortOrder(order int) {
	r.SortOrder = order
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Enable allows the role's permissions to take effect
func (r *Role) Enable() error {
	if r.IsEnabled {
		return shared.NewDomainError("ALREADY_ENABLED", "Role is already enabled")
	}

	r.IsEnabled = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Disable suspends the role without removing its assignments
func (r *Role) Disable() error {
	if !r.IsEnabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Role is already disabled")
	}
	if r.IsSystemRole {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be disabled")
	}

	r.IsEnabled = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// GrantPermission adds a permission to the role
func (r *Role) GrantPermission(perm Permission) error {
	if perm.IsEmpty() {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission cannot be empty")
	}

	for _, p := range r.Permissions {
		if p.Equals(perm) {
			return shared.NewDomainError("PERMISSION_ALREADY_GRANTED", "Role already has this permission")
		}
	}

	r.Permissions = append(r.Permissions, perm)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// RevokePermission removes a permission from the role
func (r *Role) RevokePermission(code string) error {
	found := false
	remaining := make([]Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.Code != code {
			remaining = append(remaining, p)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("PERMISSION_NOT_GRANTED", "Role does not have this permission")
	}

	r.Permissions = remaining
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// SetPermissions replaces the role's permissions
func (r *Role) SetPermissions(perms []Permission) error {
	seen := make(map[string]bool)
	unique := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if p.IsEmpty() {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission cannot be empty")
		}
		if !seen[p.Code] {
			seen[p.Code] = true
			unique = append(unique, p)
		}
	}

	r.Permissions = unique
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// HasPermission checks if the role grants a permission code
func (r *Role) HasPermission(code string) bool {
	if !r.IsEnabled {
		return false
	}
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// CanDelete returns true if the role may be deleted
func (r *Role) CanDelete() bool {
	return !r.IsSystemRole
}

func validateRoleCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Role code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Role code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return shared.NewDomainError("INVALID_CODE", "Role code can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

func validateRoleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}
