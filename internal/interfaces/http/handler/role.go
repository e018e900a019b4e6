package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/identity"
)

// RoleHandler serves admin role management
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *appidentity.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create creates a role
// POST /api/v1/admin/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req appidentity.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// Update updates a role
// PUT /api/v1/admin/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	var req appidentity.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Get returns a role by ID
// GET /api/v1/admin/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	role, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// List returns all roles, optionally filtered by search term
// GET /api/v1/admin/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// Permissions returns the permission codes route gating understands
// GET /api/v1/admin/roles/permissions
func (h *RoleHandler) Permissions(c *gin.Context) {
	h.Success(c, identity.KnownPermissions())
}

// Delete removes a role that is not assigned to any user
// DELETE /api/v1/admin/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
