package shopping

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type for order events
const AggregateTypeOrder = "Order"

// Order event types
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeOrderCancelled     = "order.cancelled"
)

// OrderPlacedEvent is emitted when a checkout creates a new order.
// Alerting rules subscribe to this event.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	CustomerID    string          `json:"customer_id"`
	CustomerEmail string          `json:"customer_email"`
	ItemCount     int             `json:"item_count"`
	Currency      string          `json:"currency"`
	Total         decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates a new order placed event
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, order.ID, AggregateTypeOrder),
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID.String(),
		CustomerEmail:   order.CustomerEmail,
		ItemCount:       order.ItemCount(),
		Currency:        order.Currency,
		Total:           order.Total,
	}
}

// OrderStatusChangedEvent is emitted on every forward lifecycle transition.
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new order status changed event
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, order.ID, AggregateTypeOrder),
		OrderNumber:     order.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderCancelledEvent is emitted when an order is cancelled.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	FromStatus  OrderStatus `json:"from_status"`
	Reason      string      `json:"reason"`
}

// NewOrderCancelledEvent creates a new order cancelled event
func NewOrderCancelledEvent(order *Order, from OrderStatus, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, order.ID, AggregateTypeOrder),
		OrderNumber:     order.OrderNumber,
		FromStatus:      from,
		Reason:          reason,
	}
}
