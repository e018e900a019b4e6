package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/storefront/backend/internal/application/customer"
)

// CustomerHandler serves admin customer and address management
type CustomerHandler struct {
	BaseHandler
	customerService *appcustomer.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *appcustomer.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create creates a customer profile
// POST /api/v1/admin/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req appcustomer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cust, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cust)
}

// Update updates a customer's contact details and preferences
// PUT /api/v1/admin/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appcustomer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cust, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// Get returns a customer with saved addresses
// GET /api/v1/admin/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	cust, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// List returns customers matching the filter
// GET /api/v1/admin/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter appcustomer.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// SetLevel changes a customer's loyalty tier
// POST /api/v1/admin/customers/:id/level
func (h *CustomerHandler) SetLevel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appcustomer.SetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cust, err := h.customerService.SetLevel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// AddStoreCredit adjusts a customer's store credit balance
// POST /api/v1/admin/customers/:id/store-credit
func (h *CustomerHandler) AddStoreCredit(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appcustomer.AdjustStoreCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cust, err := h.customerService.AddStoreCredit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

type setCustomerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// SetStatus changes a customer's account status
// POST /api/v1/admin/customers/:id/status
func (h *CustomerHandler) SetStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req setCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cust, err := h.customerService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// Delete removes a customer profile
// DELETE /api/v1/admin/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAddresses returns a customer's saved addresses
// GET /api/v1/admin/customers/:id/addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	addresses, err := h.customerService.ListAddresses(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// AddAddress saves a new address for a customer
// POST /api/v1/admin/customers/:id/addresses
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appcustomer.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.customerService.AddAddress(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// UpdateAddress updates a saved address
// PUT /api/v1/admin/customers/:id/addresses/:addressId
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	addressID, err := parseIDParam(c, "addressId")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req appcustomer.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.customerService.UpdateAddress(c.Request.Context(), id, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// SetDefaultAddress marks an address as the customer's default
// POST /api/v1/admin/customers/:id/addresses/:addressId/default
func (h *CustomerHandler) SetDefaultAddress(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	addressID, err := parseIDParam(c, "addressId")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.customerService.SetDefaultAddress(c.Request.Context(), id, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Default address updated"})
}

// DeleteAddress removes a saved address
// DELETE /api/v1/admin/customers/:id/addresses/:addressId
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	addressID, err := parseIDParam(c, "addressId")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.customerService.DeleteAddress(c.Request.Context(), id, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
