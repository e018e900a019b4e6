package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// BrandHandler serves admin brand management
type BrandHandler struct {
	BaseHandler
	brandService *appcatalog.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *appcatalog.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// Create creates a brand
// POST /api/v1/admin/brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req appcatalog.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// Update updates a brand
// PUT /api/v1/admin/brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	var req appcatalog.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Get returns a brand by ID
// GET /api/v1/admin/brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	brand, err := h.brandService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// List returns brands matching the filter
// GET /api/v1/admin/brands
func (h *BrandHandler) List(c *gin.Context) {
	var filter appcatalog.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	brands, total, err := h.brandService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, brands, total, filter.Page, filter.PageSize)
}

// Activate makes a brand visible on the storefront
// POST /api/v1/admin/brands/:id/activate
func (h *BrandHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	brand, err := h.brandService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Deactivate hides a brand from the storefront
// POST /api/v1/admin/brands/:id/deactivate
func (h *BrandHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	brand, err := h.brandService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Delete removes a brand that is not referenced by products
// DELETE /api/v1/admin/brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
