package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// APIKeyHandler serves admin API key management. The plaintext key is
// returned once from Create and never again.
type APIKeyHandler struct {
	BaseHandler
	apiKeyService *appidentity.APIKeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler
func NewAPIKeyHandler(apiKeyService *appidentity.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// Create creates an API key and returns its plaintext secret
// POST /api/v1/admin/api-keys
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req appidentity.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	key, err := h.apiKeyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, key)
}

// Get returns an API key by ID
// GET /api/v1/admin/api-keys/:id
func (h *APIKeyHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid API key ID")
		return
	}

	key, err := h.apiKeyService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}

// List returns API keys matching the filter
// GET /api/v1/admin/api-keys
func (h *APIKeyHandler) List(c *gin.Context) {
	var query struct {
		Search   string `form:"search"`
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	filter.Search = query.Search
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	keys, total, err := h.apiKeyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, keys, total, filter.Page, filter.PageSize)
}

type renameAPIKeyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Rename changes an API key's display name
// PUT /api/v1/admin/api-keys/:id
func (h *APIKeyHandler) Rename(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid API key ID")
		return
	}

	var req renameAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	key, err := h.apiKeyService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}

// Revoke deactivates an API key without deleting its audit trail
// POST /api/v1/admin/api-keys/:id/revoke
func (h *APIKeyHandler) Revoke(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid API key ID")
		return
	}

	if err := h.apiKeyService.Revoke(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "API key revoked"})
}

// Delete removes an API key
// DELETE /api/v1/admin/api-keys/:id
func (h *APIKeyHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid API key ID")
		return
	}

	if err := h.apiKeyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
