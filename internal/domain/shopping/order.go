package shopping

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CanTransitionTo checks whether a status transition is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem is a line on an order. Product name, SKU and price are
// snapshotted at checkout so later catalog edits never change what the
// customer agreed to pay.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	SKU       string          `gorm:"size:50;not null" json:"sku"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"line_total"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line from a cart line snapshot.
func NewOrderItem(orderID, productID uuid.UUID, sku, name string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  productID,
		SKU:        sku,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		LineTotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Order is the checkout aggregate. Orders are created in pending status
// from a non-empty cart and move through a fixed lifecycle; delivered
// and cancelled are terminal.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string              `gorm:"size:30;not null;uniqueIndex" json:"order_number"`
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerEmail   string              `gorm:"size:255;not null" json:"customer_email"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID" json:"items"`
	Currency        string              `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Subtotal        decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	ShippingFee     decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"shipping_fee"`
	Total           decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"total"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb" json:"shipping_address"`
	Status          OrderStatus         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes           string              `gorm:"size:500" json:"notes"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `gorm:"size:200" json:"cancel_reason,omitempty"`
	TrackingNumber  string              `gorm:"size:100" json:"tracking_number,omitempty"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// GenerateOrderNumber produces a human-friendly order number, e.g.
// ORD-20260829-4F2K7Q. Uniqueness is enforced by the database index.
func GenerateOrderNumber(now time.Time) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(alphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			suffix[i] = alphabet[int(now.UnixNano())%len(alphabet)]
			continue
		}
		suffix[i] = alphabet[n.Int64()]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), string(suffix))
}

// NewOrder creates a pending order from checkout input. The cart must
// contain at least one line and every line price must share the
// order's currency.
func NewOrder(customerID uuid.UUID, customerEmail string, cart *Cart, shippingAddress valueobject.Address, shippingFee decimal.Decimal) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerEmail == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if cart == nil || cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order from an empty cart")
	}
	if shippingAddress.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}

	currency := string(valueobject.USD)
	if len(cart.Items) > 0 && cart.Items[0].Currency != "" {
		currency = cart.Items[0].Currency
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       GenerateOrderNumber(time.Now()),
		CustomerID:        customerID,
		CustomerEmail:     customerEmail,
		Items:             make([]OrderItem, 0, len(cart.Items)),
		Currency:          currency,
		ShippingFee:       shippingFee,
		ShippingAddress:   shippingAddress,
		Status:            OrderStatusPending,
	}

	for _, line := range cart.Items {
		if line.Currency != "" && line.Currency != currency {
			return nil, shared.NewDomainError("CURRENCY_MISMATCH", "All cart lines must share one currency")
		}
		item, err := NewOrderItem(order.ID, line.ProductID, line.SKU, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
	}
	order.recalculateTotals()

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.ShippingFee)
}

// SetNotes sets free-form customer notes on the order.
func (o *Order) SetNotes(notes string) error {
	if len(notes) > 500 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	o.Notes = notes
	o.UpdatedAt = time.Now()
	return nil
}

// Confirm moves the order from pending to confirmed.
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusPending, OrderStatusConfirmed))

	return nil
}

// Ship marks the order as shipped with an optional carrier tracking number.
func (o *Order) Ship(trackingNumber string) error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.TrackingNumber = trackingNumber
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusConfirmed, OrderStatusShipped))

	return nil
}

// Deliver marks the order as delivered. Delivered is terminal.
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusShipped, OrderStatusDelivered))

	return nil
}

// Cancel cancels the order. Shipped and delivered orders cannot be
// cancelled.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	from := o.Status
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o, from, reason))

	return nil
}

// ItemCount returns the total number of units on the order.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
