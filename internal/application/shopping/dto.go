package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shopping"
)

// ============================================================================
// Request DTOs
// ============================================================================

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateCartItemRequest changes the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}

// CheckoutRequest places an order from the current cart
type CheckoutRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,max=200"`
	Line1         string `json:"line1" binding:"required,max=200"`
	Line2         string `json:"line2" binding:"max=200"`
	City          string `json:"city" binding:"required,max=100"`
	Region        string `json:"region" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"required,max=20"`
	Country       string `json:"country" binding:"required,len=2"`
	Notes         string `json:"notes" binding:"max=500"`
}

// ShipOrderRequest marks an order as shipped
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

// OrderListFilter represents the admin order list query parameters
type OrderListFilter struct {
	Keyword    string     `form:"keyword"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	CustomerID *uuid.UUID `form:"customer_id"`
	PlacedFrom *time.Time `form:"placed_from" time_format:"2006-01-02"`
	PlacedTo   *time.Time `form:"placed_to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (f OrderListFilter) toFilter() shopping.OrderFilter {
	return shopping.OrderFilter{
		Keyword:    f.Keyword,
		Status:     shopping.OrderStatus(f.Status),
		CustomerID: f.CustomerID,
		PlacedFrom: f.PlacedFrom,
		PlacedTo:   f.PlacedTo,
		Page:       f.Page,
		PageSize:   f.PageSize,
		SortBy:     f.SortBy,
		SortOrder:  f.SortOrder,
	}
}

// ============================================================================
// Response DTOs
// ============================================================================

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CustomerEmail   string              `json:"customer_email"`
	Items           []OrderItemResponse `json:"items"`
	Currency        string              `json:"currency"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	Total           decimal.Decimal     `json:"total"`
	ShippingAddress string              `json:"shipping_address"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	TrackingNumber  string              `json:"tracking_number,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ============================================================================
// Mappers
// ============================================================================

func toCartResponse(cart *shopping.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return &CartResponse{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		UpdatedAt: cart.UpdatedAt,
	}
}

func toOrderResponse(o *shopping.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		CustomerEmail:   o.CustomerEmail,
		Items:           items,
		Currency:        o.Currency,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress.FullAddress(),
		Status:          string(o.Status),
		Notes:           o.Notes,
		TrackingNumber:  o.TrackingNumber,
		CancelReason:    o.CancelReason,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
