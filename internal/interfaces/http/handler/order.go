package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/storefront/backend/internal/application/customer"
	appshopping "github.com/storefront/backend/internal/application/shopping"
)

// OrderHandler serves checkout, the shopper's order history and the
// admin order lifecycle
type OrderHandler struct {
	BaseHandler
	orderService    *appshopping.OrderService
	customerService *appcustomer.CustomerService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appshopping.OrderService, customerService *appcustomer.CustomerService) *OrderHandler {
	return &OrderHandler{orderService: orderService, customerService: customerService}
}

// Checkout places an order from the shopper's cart
// POST /api/v1/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appshopping.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListMine returns the shopper's order history
// GET /api/v1/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var query struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.ListForCustomer(c.Request.Context(), customerID, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, query.Page, query.PageSize)
}

// GetMine returns one of the shopper's own orders
// GET /api/v1/orders/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	customerID, err := resolveCustomerID(c, h.customerService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetForCustomer(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns orders matching the admin filter
// GET /api/v1/admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter appshopping.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns an order by ID
// GET /api/v1/admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Confirm moves a pending order to confirmed
// POST /api/v1/admin/orders/:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Ship marks a confirmed order as shipped
// POST /api/v1/admin/orders/:id/ship
func (h *OrderHandler) Ship(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appshopping.ShipOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	order, err := h.orderService.Ship(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Deliver marks a shipped order as delivered
// POST /api/v1/admin/orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Deliver(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order that has not been delivered
// POST /api/v1/admin/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appshopping.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
