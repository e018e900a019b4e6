package identity

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRole = "Role"

// Event type constants
const (
	EventTypeRoleCreated            = "RoleCreated"
	EventTypeRoleUpdated            = "RoleUpdated"
	EventTypeRolePermissionsChanged = "RolePermissionsChanged"
	EventTypeRoleDeleted            = "RoleDeleted"
)

// RoleCreatedEvent is published when a new role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, role.ID, AggregateTypeRole),
		RoleID:          role.ID,
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RoleUpdatedEvent is published when a role is updated
type RoleUpdatedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
}

// NewRoleUpdatedEvent creates a new RoleUpdatedEvent
func NewRoleUpdatedEvent(role *Role) *RoleUpdatedEvent {
	return &RoleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleUpdated, role.ID, AggregateTypeRole),
		RoleID:          role.ID,
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RolePermissionsChangedEvent is published when a role's permissions change
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	RoleID          uuid.UUID `json:"role_id"`
	Code            string    `json:"code"`
	PermissionCodes []string  `json:"permission_codes"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(role *Role) *RolePermissionsChangedEvent {
	codes := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		codes[i] = p.Code
	}
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, role.ID, AggregateTypeRole),
		RoleID:          role.ID,
		Code:            role.Code,
		PermissionCodes: codes,
	}
}

// RoleDeletedEvent is published when a role is deleted
type RoleDeletedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Code   string    `json:"code"`
}

// NewRoleDeletedEvent creates a new RoleDeletedEvent
func NewRoleDeletedEvent(role *Role) *RoleDeletedEvent {
	return &RoleDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleDeleted, role.ID, AggregateTypeRole),
		RoleID:          role.ID,
		Code:            role.Code,
	}
}
