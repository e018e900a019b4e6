package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// MasterDataHandler serves the generic lookup-record families
// (age groups, fits, lengths, necklines) under a single route shape
type MasterDataHandler struct {
	BaseHandler
	masterDataService *appcatalog.MasterDataService
}

// NewMasterDataHandler creates a new MasterDataHandler
func NewMasterDataHandler(masterDataService *appcatalog.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterDataService: masterDataService}
}

// Kinds returns the supported master data kinds
// GET /api/v1/admin/master-data
func (h *MasterDataHandler) Kinds(c *gin.Context) {
	h.Success(c, h.masterDataService.Kinds())
}

// Create creates an entry of the given kind
// POST /api/v1/admin/master-data/:kind
func (h *MasterDataHandler) Create(c *gin.Context) {
	var req appcatalog.CreateMasterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.masterDataService.Create(c.Request.Context(), c.Param("kind"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Update updates an entry
// PUT /api/v1/admin/master-data/:kind/:id
func (h *MasterDataHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req appcatalog.UpdateMasterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.masterDataService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// List returns all entries of a kind
// GET /api/v1/admin/master-data/:kind
func (h *MasterDataHandler) List(c *gin.Context) {
	entries, err := h.masterDataService.List(c.Request.Context(), c.Param("kind"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Delete removes an entry
// DELETE /api/v1/admin/master-data/:kind/:id
func (h *MasterDataHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.masterDataService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
