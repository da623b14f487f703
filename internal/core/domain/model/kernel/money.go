package kernel

import (
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for every monetary amount.
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when a Money literal bypassed NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

var hundred = decimal.NewFromInt(100)

// Money is a non-negative monetary amount rounded half-up to two decimal places.
// Arithmetic keeps the scale so that totals computed at order creation are
// reproducible from their parts.
type Money struct { //nolint:recvcheck // Validate on value receiver
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount to two places and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "∞")
	}
	return Money{amount: amount.Round(moneyScale), guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses amounts such as "65.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate ensures the amount was built through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(moneyScale), guard: guard.NewConstructorGuard()}
}

// Sub returns m - other floored at zero.
func (m Money) Sub(other Money) Money {
	res := m.amount.Sub(other.amount)
	if res.IsNegative() {
		res = decimal.Zero
	}
	return Money{amount: res.Round(moneyScale), guard: guard.NewConstructorGuard()}
}

// Mul returns m multiplied by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyScale), guard: guard.NewConstructorGuard()}
}

// Percent returns pct percent of m, e.g. Percent(10) of 65.00 is 6.50.
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct).Div(hundred).Round(moneyScale), guard: guard.NewConstructorGuard()}
}

// IsEqual compares two amounts numerically.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
