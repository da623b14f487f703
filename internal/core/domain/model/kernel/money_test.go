package kernel_test

import (
	"testing"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("should round to two decimals", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("5.855"))

		require.NoError(t, err)
		assert.Equal(t, "5.86", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unparsable strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money

		assert.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
		assert.NoError(t, kernel.ZeroMoney().Validate())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	subtotal := mustMoney(t, "65.00")

	t.Run("percent", func(t *testing.T) {
		assert.Equal(t, "6.50", subtotal.Percent(decimal.NewFromInt(10)).String())
	})

	t.Run("sub floors at zero", func(t *testing.T) {
		assert.Equal(t, "0.00", mustMoney(t, "1.00").Sub(subtotal).String())
		assert.Equal(t, "58.50", subtotal.Sub(mustMoney(t, "6.50")).String())
	})

	t.Run("add and mul", func(t *testing.T) {
		assert.Equal(t, "75.00", subtotal.Add(mustMoney(t, "10")).String())
		assert.Equal(t, "37.50", mustMoney(t, "12.50").Mul(3).String())
	})

	t.Run("equality is numeric", func(t *testing.T) {
		assert.True(t, mustMoney(t, "10").IsEqual(mustMoney(t, "10.00")))
	})
}
