package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcustomer "github.com/storefront/backend/internal/application/customer"
	appshopping "github.com/storefront/backend/internal/application/shopping"
)

// CartHandler serves the authenticated shopper's cart
type CartHandler struct {
	BaseHandler
	cartService     *appshopping.CartService
	customerService *appcustomer.CustomerService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appshopping.CartService, customerService *appcustomer.CustomerService) *CartHandler {
	return &CartHandler{cartService: cartService, customerService: customerService}
}

// resolveCustomerID maps the authenticated user to their customer
// profile. Registration creates the profile, so a missing one means the
// caller is not a shopper.
func resolveCustomerID(c *gin.Context, customers *appcustomer.CustomerService) (uuid.UUID, error) {
	userID, err := getUserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	profile, err := customers.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

// Get returns the current cart
// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a product to the cart
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appshopping.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem changes the quantity of a cart line
// PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appshopping.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem removes a cart line
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear empties the cart
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
