package customer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates guest profile", func(t *testing.T) {
		cust, err := NewCustomer("Jane@Example.com", "Jane", "Doe")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", cust.Email)
		assert.Equal(t, "Jane Doe", cust.FullName())
		assert.Equal(t, CustomerLevelStandard, cust.Level)
		assert.True(t, cust.IsGuest())
		assert.True(t, cust.IsActive())
	})

	t.Run("links to sign-in account", func(t *testing.T) {
		userID := uuid.New()
		cust, err := NewCustomerForUser(userID, "jane@example.com", "Jane", "Doe")
		require.NoError(t, err)
		assert.False(t, cust.IsGuest())
		assert.Equal(t, userID, *cust.UserID)
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		_, err := NewCustomerForUser(uuid.Nil, "jane@example.com", "Jane", "Doe")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewCustomer("nope", "Jane", "Doe")
		assert.Error(t, err)
	})

	t.Run("emits created event", func(t *testing.T) {
		cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")
		events := cust.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
	})
}

func TestCustomerUpdate(t *testing.T) {
	cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")

	t.Run("updates contact details", func(t *testing.T) {
		require.NoError(t, cust.Update("Janet", "Smith", "+1 555 123 4567"))
		assert.Equal(t, "Janet Smith", cust.FullName())
		assert.Equal(t, "+1 555 123 4567", cust.Phone)
	})

	t.Run("rejects bad phone", func(t *testing.T) {
		assert.Error(t, cust.Update("Janet", "Smith", "555"))
	})

	t.Run("changes email", func(t *testing.T) {
		require.NoError(t, cust.SetEmail("JANET@example.com"))
		assert.Equal(t, "janet@example.com", cust.Email)
	})
}

func TestCustomerStoreCredit(t *testing.T) {
	cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")

	t.Run("grant and spend", func(t *testing.T) {
		require.NoError(t, cust.AddStoreCredit(decimal.NewFromInt(50)))
		require.NoError(t, cust.SpendStoreCredit(decimal.NewFromInt(20)))
		assert.True(t, cust.StoreCredit.Equal(decimal.NewFromInt(30)))
	})

	t.Run("cannot overspend", func(t *testing.T) {
		assert.Error(t, cust.SpendStoreCredit(decimal.NewFromInt(100)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		assert.Error(t, cust.AddStoreCredit(decimal.Zero))
		assert.Error(t, cust.SpendStoreCredit(decimal.NewFromInt(-5)))
	})
}

func TestCustomerLevels(t *testing.T) {
	cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")

	cust.ClearDomainEvents()
	require.NoError(t, cust.SetLevel(CustomerLevelGold))
	assert.Equal(t, CustomerLevelGold, cust.Level)

	events := cust.GetDomainEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(*CustomerLevelChangedEvent)
	require.True(t, ok)
	assert.Equal(t, CustomerLevelStandard, evt.OldLevel)

	assert.Error(t, cust.SetLevel("diamond"))
}

func TestCustomerStatus(t *testing.T) {
	cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")

	require.NoError(t, cust.Suspend())
	assert.False(t, cust.IsActive())
	assert.Error(t, cust.Suspend())

	require.NoError(t, cust.Activate())
	assert.True(t, cust.IsActive())

	require.NoError(t, cust.Deactivate())
	assert.Error(t, cust.Deactivate())
}
