package guard_test

import (
	"errors"
	"testing"

	"discount/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Coupon must be created via NewCoupon")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errPercentageNotConstructed := errors.New("Percentage must be created via NewPercentage")

	type Percentage struct {
		value int
		guard guard.ConstructorGuard
	}

	newPercentage := func(v int) (Percentage, error) {
		if v < 1 || v > 100 {
			return Percentage{}, errors.New("percentage must be within 1..100")
		}
		return Percentage{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		p, err := newPercentage(15)

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPercentageNotConstructed))
		assert.Equal(t, 15, p.value)
	})

	t.Run("literal_value_fails", func(t *testing.T) {
		p := Percentage{value: 15}

		assert.Equal(t, errPercentageNotConstructed, p.guard.Validate(errPercentageNotConstructed))
	})

	t.Run("copies_keep_construction_state", func(t *testing.T) {
		p, err := newPercentage(50)
		require.NoError(t, err)

		cp := p

		require.NoError(t, cp.guard.Validate(errPercentageNotConstructed))
	})
}
