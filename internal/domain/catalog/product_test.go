package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func usd(s string) valueobject.Money {
	m, err := valueobject.NewMoneyFromString(s, valueobject.USD)
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with normalized SKU", func(t *testing.T) {
		p, err := NewProduct("tee-basic-01", "Basic Tee", usd("19.99"))
		require.NoError(t, err)
		assert.Equal(t, "TEE-BASIC-01", p.SKU)
		assert.Equal(t, "basic-tee", p.Slug)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.True(t, p.Price.Equal(decimal.NewFromFloat(19.99)))
		assert.False(t, p.IsOnSale())
	})

	t.Run("rejects invalid SKU", func(t *testing.T) {
		for _, sku := range []string{"", "has space", "has.dot"} {
			_, err := NewProduct(sku, "Basic Tee", usd("19.99"))
			assert.Error(t, err, "sku %q", sku)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("TEE-01", "Basic Tee", usd("-1"))
		assert.Error(t, err)
	})

	t.Run("emits created event", func(t *testing.T) {
		p, err := NewProduct("TEE-01", "Basic Tee", usd("19.99"))
		require.NoError(t, err)
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})
}

func TestProductPricing(t *testing.T) {
	p, err := NewProduct("TEE-01", "Basic Tee", usd("19.99"))
	require.NoError(t, err)

	t.Run("sets discounted pricing", func(t *testing.T) {
		require.NoError(t, p.SetPricing(usd("15.00"), usd("20.00")))
		assert.True(t, p.IsOnSale())
		assert.Equal(t, "25", p.GetPercentOff().String())
	})

	t.Run("clears discount with zero compare-at", func(t *testing.T) {
		require.NoError(t, p.SetPricing(usd("15.00"), valueobject.ZeroUSD()))
		assert.False(t, p.IsOnSale())
		assert.True(t, p.GetPercentOff().IsZero())
	})

	t.Run("rejects compare-at below price", func(t *testing.T) {
		assert.Error(t, p.SetPricing(usd("15.00"), usd("10.00")))
		assert.Error(t, p.SetPricing(usd("15.00"), usd("15.00")))
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		assert.Error(t, p.SetPricing(usd("-1"), valueobject.ZeroUSD()))
	})

	t.Run("emits price changed event", func(t *testing.T) {
		p.ClearDomainEvents()
		require.NoError(t, p.SetPricing(usd("12.00"), usd("20.00")))
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, evt.NewPrice.Equal(decimal.NewFromInt(12)))
	})
}

func TestProductStatusTransitions(t *testing.T) {
	t.Run("active to inactive and back", func(t *testing.T) {
		p, _ := NewProduct("TEE-01", "Basic Tee", usd("19.99"))
		require.NoError(t, p.Deactivate())
		assert.False(t, p.IsActive())
		require.NoError(t, p.Activate())
		assert.True(t, p.IsActive())
	})

	t.Run("discontinued is terminal", func(t *testing.T) {
		p, _ := NewProduct("TEE-01", "Basic Tee", usd("19.99"))
		require.NoError(t, p.Discontinue())
		assert.True(t, p.IsDiscontinued())
		assert.Error(t, p.Activate())
		assert.Error(t, p.Deactivate())
		assert.Error(t, p.Discontinue())
	})
}

func TestProductAssociations(t *testing.T) {
	p, _ := NewProduct("TEE-01", "Basic Tee", usd("19.99"))

	t.Run("assigns brand and category", func(t *testing.T) {
		brandID := uuid.New()
		categoryID := uuid.New()
		p.SetBrand(&brandID)
		p.SetCategory(&categoryID)
		assert.True(t, p.HasBrand())
		assert.True(t, p.HasCategory())
	})

	t.Run("clears associations", func(t *testing.T) {
		p.SetBrand(nil)
		assert.False(t, p.HasBrand())
	})

	t.Run("attribute values must be a JSON object", func(t *testing.T) {
		require.NoError(t, p.SetAttributes(`{"fit":"slim","neckline":"crew"}`))
		assert.Error(t, p.SetAttributes(`[1,2]`))
		require.NoError(t, p.SetAttributes(""))
		assert.Equal(t, "{}", p.Attributes)
	})
}
