package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("parses from string", func(t *testing.T) {
		m, err := NewMoneyFromString("10.50", EUR)
		require.NoError(t, err)
		assert.Equal(t, "10.50 EUR", m.String())
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := NewMoneyFromString("ten dollars", USD)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	ten := NewMoneyUSD(decimal.NewFromInt(10))
	three := NewMoneyUSD(decimal.NewFromInt(3))

	t.Run("add", func(t *testing.T) {
		sum, err := ten.Add(three)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(13)))
	})

	t.Run("add rejects mixed currencies", func(t *testing.T) {
		other := Zero(GBP)
		_, err := ten.Add(other)
		assert.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := ten.Subtract(three)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(7)))
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		total := three.MultiplyByInt(4)
		assert.True(t, total.Amount().Equal(decimal.NewFromInt(12)))
	})

	t.Run("round", func(t *testing.T) {
		m := NewMoneyUSD(decimal.NewFromFloat(9.995))
		assert.Equal(t, "10.00 USD", m.Round(2).String())
	})
}

func TestMoneyComparison(t *testing.T) {
	five := NewMoneyUSD(decimal.NewFromInt(5))
	ten := NewMoneyUSD(decimal.NewFromInt(10))

	t.Run("equals", func(t *testing.T) {
		assert.True(t, five.Equals(NewMoneyUSD(decimal.NewFromInt(5))))
		assert.False(t, five.Equals(ten))
		assert.False(t, five.Equals(Zero(EUR)))
	})

	t.Run("less than", func(t *testing.T) {
		less, err := five.LessThan(ten)
		require.NoError(t, err)
		assert.True(t, less)
	})

	t.Run("greater than across currencies fails", func(t *testing.T) {
		_, err := five.GreaterThan(Zero(CAD))
		assert.Error(t, err)
	})

	t.Run("sign checks", func(t *testing.T) {
		assert.True(t, ZeroUSD().IsZero())
		assert.True(t, ten.IsPositive())
		assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	})
}
