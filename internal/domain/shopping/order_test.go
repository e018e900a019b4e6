package shopping

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	return addr
}

func testCart(t *testing.T) *Cart {
	t.Helper()
	cart, err := NewCart("user:checkout")
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(uuid.New(), "TEE-1", "Basic Tee", usd(t, "19.99"), "", 2))
	require.NoError(t, cart.AddItem(uuid.New(), "MUG-1", "Logo Mug", usd(t, "8.50"), "", 1))
	return cart
}

func TestNewOrder(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates pending order from cart", func(t *testing.T) {
		order, err := NewOrder(customerID, "jane@example.com", testCart(t), testAddress(t), decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, 3, order.ItemCount())
		assert.Equal(t, "48.48", order.Subtotal.StringFixed(2))
		assert.Equal(t, "53.48", order.Total.StringFixed(2))
		assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		empty, _ := NewCart("user:empty")
		_, err := NewOrder(customerID, "jane@example.com", empty, testAddress(t), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects empty shipping address", func(t *testing.T) {
		_, err := NewOrder(customerID, "jane@example.com", testCart(t), valueobject.EmptyAddress(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative shipping fee", func(t *testing.T) {
		_, err := NewOrder(customerID, "jane@example.com", testCart(t), testAddress(t), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, "jane@example.com", testCart(t), testAddress(t), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		order, err := NewOrder(uuid.New(), "jane@example.com", testCart(t), testAddress(t), decimal.Zero)
		require.NoError(t, err)
		order.ClearDomainEvents()
		return order
	}

	t.Run("pending to delivered happy path", func(t *testing.T) {
		order := newOrder(t)

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.NotNil(t, order.ConfirmedAt)

		require.NoError(t, order.Ship("1Z999AA10123456784"))
		assert.Equal(t, OrderStatusShipped, order.Status)
		assert.Equal(t, "1Z999AA10123456784", order.TrackingNumber)

		require.NoError(t, order.Deliver())
		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.NotNil(t, order.DeliveredAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 3)
		for _, e := range events {
			assert.Equal(t, EventTypeOrderStatusChanged, e.EventType())
		}
	})

	t.Run("cancel from pending", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Cancel("changed my mind"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "changed my mind", order.CancelReason)
	})

	t.Run("cancel from confirmed", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Confirm())
		assert.NoError(t, order.Cancel("out of stock"))
	})

	t.Run("cannot cancel shipped order", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship(""))
		assert.Error(t, order.Cancel("too late"))
	})

	t.Run("cannot skip confirmation", func(t *testing.T) {
		order := newOrder(t)
		assert.Error(t, order.Ship(""))
		assert.Error(t, order.Deliver())
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Cancel("test"))
		assert.Error(t, order.Confirm())
		assert.True(t, order.Status.IsTerminal())
	})
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	n := GenerateOrderNumber(now)
	assert.True(t, strings.HasPrefix(n, "ORD-20260829-"))
	assert.Len(t, n, len("ORD-20260829-")+6)
}
