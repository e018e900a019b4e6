package customer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func mustLocation(t *testing.T) valueobject.Address {
	t.Helper()
	loc, err := valueobject.NewAddress("1 Market St", "San Francisco", "94105", "US", valueobject.WithRegion("CA"))
	require.NoError(t, err)
	return loc
}

func TestNewAddress(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates saved address", func(t *testing.T) {
		addr, err := NewAddress(customerID, "Jane Doe", mustLocation(t))
		require.NoError(t, err)
		assert.Equal(t, customerID, addr.CustomerID)
		assert.Equal(t, "Jane Doe", addr.RecipientName)
		assert.False(t, addr.IsDefault)
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		_, err := NewAddress(uuid.Nil, "Jane Doe", mustLocation(t))
		assert.Error(t, err)
	})

	t.Run("rejects empty recipient", func(t *testing.T) {
		_, err := NewAddress(customerID, "  ", mustLocation(t))
		assert.Error(t, err)
	})

	t.Run("rejects empty location", func(t *testing.T) {
		_, err := NewAddress(customerID, "Jane Doe", valueobject.EmptyAddress())
		assert.Error(t, err)
	})
}

func TestAddressUpdate(t *testing.T) {
	addr, err := NewAddress(uuid.New(), "Jane Doe", mustLocation(t))
	require.NoError(t, err)

	t.Run("updates details", func(t *testing.T) {
		require.NoError(t, addr.Update("Janet Smith", "+1 555 123 4567", mustLocation(t)))
		assert.Equal(t, "Janet Smith", addr.RecipientName)
	})

	t.Run("rejects bad phone", func(t *testing.T) {
		assert.Error(t, addr.Update("Janet Smith", "555", mustLocation(t)))
	})

	t.Run("label and default flag", func(t *testing.T) {
		require.NoError(t, addr.SetLabel("Home"))
		assert.Equal(t, "Home", addr.Label)

		addr.MarkDefault()
		assert.True(t, addr.IsDefault)
		addr.ClearDefault()
		assert.False(t, addr.IsDefault)
	})
}

func TestCustomerDefaultAddress(t *testing.T) {
	cust, _ := NewCustomer("jane@example.com", "Jane", "Doe")

	first, _ := NewAddress(cust.ID, "Jane Doe", mustLocation(t))
	second, _ := NewAddress(cust.ID, "Jane Doe", mustLocation(t))
	second.MarkDefault()
	cust.Addresses = []Address{*first, *second}

	def := cust.DefaultAddress()
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)
}
