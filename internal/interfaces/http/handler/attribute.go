package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// AttributeHandler serves admin product attribute management
type AttributeHandler struct {
	BaseHandler
	attributeService *appcatalog.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *appcatalog.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

// Create creates an attribute
// POST /api/v1/admin/attributes
func (h *AttributeHandler) Create(c *gin.Context) {
	var req appcatalog.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	attribute, err := h.attributeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attribute)
}

// Update updates an attribute
// PUT /api/v1/admin/attributes/:id
func (h *AttributeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID")
		return
	}

	var req appcatalog.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	attribute, err := h.attributeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attribute)
}

// Get returns an attribute by ID
// GET /api/v1/admin/attributes/:id
func (h *AttributeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID")
		return
	}

	attribute, err := h.attributeService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attribute)
}

// List returns attributes matching the filter
// GET /api/v1/admin/attributes
func (h *AttributeHandler) List(c *gin.Context) {
	var filter appcatalog.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	attributes, total, err := h.attributeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, attributes, total, filter.Page, filter.PageSize)
}

// Delete removes an attribute
// DELETE /api/v1/admin/attributes/:id
func (h *AttributeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID")
		return
	}

	if err := h.attributeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
