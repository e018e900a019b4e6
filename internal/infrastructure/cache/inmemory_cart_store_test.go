package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/shopping"
)

func TestInMemoryCartStore(t *testing.T) {
	ctx := context.Background()

	newCartWithItem := func(t *testing.T, owner string) *shopping.Cart {
		t.Helper()
		cart, err := shopping.NewCart(owner)
		require.NoError(t, err)
		price, err := valueobject.NewMoneyFromString("19.99", valueobject.USD)
		require.NoError(t, err)
		require.NoError(t, cart.AddItem(uuid.New(), "TEE-1", "Basic Tee", price, "", 2))
		return cart
	}

	t.Run("missing cart comes back empty", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)

		cart, err := store.Get(ctx, "user:missing")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
		assert.Equal(t, "user:missing", cart.OwnerKey)
	})

	t.Run("round trips a cart", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)
		cart := newCartWithItem(t, "user:abc")

		require.NoError(t, store.Put(ctx, cart))

		loaded, err := store.Get(ctx, "user:abc")
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, "TEE-1", loaded.Items[0].SKU)
		assert.Equal(t, 2, loaded.Items[0].Quantity)
		assert.Equal(t, "39.98", loaded.Subtotal().StringFixed(2))
	})

	t.Run("expired cart comes back empty", func(t *testing.T) {
		store := NewInMemoryCartStore(-time.Second)
		require.NoError(t, store.Put(ctx, newCartWithItem(t, "user:old")))

		cart, err := store.Get(ctx, "user:old")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("delete clears the cart", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)
		require.NoError(t, store.Put(ctx, newCartWithItem(t, "user:gone")))
		require.NoError(t, store.Delete(ctx, "user:gone"))

		cart, err := store.Get(ctx, "user:gone")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}
