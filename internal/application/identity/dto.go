package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// ============================================================================
// Request DTOs
// ============================================================================

// RegisterRequest represents a shopper registration request. Names are
// required because registration also creates the customer profile.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=200"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// CreateUserRequest represents an admin request to create a user account
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email,max=200"`
	Password  string      `json:"password" binding:"required,min=8,max=72"`
	FirstName string      `json:"first_name" binding:"omitempty,max=100"`
	LastName  string      `json:"last_name" binding:"omitempty,max=100"`
	IsStaff   bool        `json:"is_staff"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
}

// UpdateUserRequest represents an admin request to update a user account
type UpdateUserRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
}

// AssignRolesRequest represents a request to replace a user's roles
type AssignRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required"`
}

// UserListFilter represents admin user list query parameters
type UserListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status" binding:"omitempty,oneof=active inactive locked"`
	StaffOnly bool       `form:"staff_only"`
	RoleID    *uuid.UUID `form:"role_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Code        string   `json:"code" binding:"required,min=2,max=50"`
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	SortOrder   *int     `json:"sort_order"`
}

// UpdateRoleRequest represents a request to update a role
type UpdateRoleRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Description string    `json:"description"`
	Permissions *[]string `json:"permissions"`
	SortOrder   *int      `json:"sort_order"`
	IsEnabled   *bool     `json:"is_enabled"`
}

// CreateAPIKeyRequest represents a request to create an API key
type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Scopes    string     `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// AuthResponse represents a successful login or registration
type AuthResponse struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UserResponse represents a user account in API responses
type UserResponse struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	FirstName      string      `json:"first_name,omitempty"`
	LastName       string      `json:"last_name,omitempty"`
	Status         string      `json:"status"`
	IsStaff        bool        `json:"is_staff"`
	RoleIDs        []uuid.UUID `json:"role_ids,omitempty"`
	LastLoginAt    *time.Time  `json:"last_login_at,omitempty"`
	FailedAttempts int         `json:"failed_attempts,omitempty"`
	LockedUntil    *time.Time  `json:"locked_until,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IsSystemRole bool      `json:"is_system_role"`
	IsEnabled    bool      `json:"is_enabled"`
	SortOrder    int       `json:"sort_order"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// APIKeyResponse represents an API key in API responses. The plaintext
// key is only present in the creation response and never stored.
type APIKeyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	Scopes     string     `json:"scopes,omitempty"`
	PlainKey   string     `json:"plain_key,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ============================================================================
// Mappers
// ============================================================================

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Status:         string(u.Status),
		IsStaff:        u.IsStaff,
		RoleIDs:        u.RoleIDs,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toRoleResponse(r *identity.Role) *RoleResponse {
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Code)
	}
	return &RoleResponse{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Description:  r.Description,
		IsSystemRole: r.IsSystemRole,
		IsEnabled:    r.IsEnabled,
		SortOrder:    r.SortOrder,
		Permissions:  perms,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toAPIKeyResponse(k *identity.APIKey) *APIKeyResponse {
	return &APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Prefix:     k.Prefix,
		Scopes:     k.Scopes,
		LastUsedAt: k.LastUsedAt,
		ExpiresAt:  k.ExpiresAt,
		IsActive:   k.IsActive,
		CreatedAt:  k.CreatedAt,
	}
}
