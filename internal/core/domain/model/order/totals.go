package order

import (
	"errors"
	"fmt"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	maxDiscountPercentage = decimal.NewFromInt(100)
	maxTaxRate            = decimal.NewFromInt(1)
)

// Pricing holds the inputs that turn a list of items into order totals.
type Pricing struct {
	// DiscountPercentage is the offer discount in percent, 0 when no coupon applies.
	DiscountPercentage decimal.Decimal
	// DeliveryFee is a flat fee added after the discount.
	DeliveryFee kernel.Money
	// TaxRate is a fraction (0.10 for 10%) applied to the discounted subtotal.
	TaxRate decimal.Decimal
}

// Totals are computed once when an order is created and never change.
//
// Invariant: Total = (Subtotal - Discount) + DeliveryFee + Tax, all values
// non-negative and rounded to two decimals.
type Totals struct {
	Subtotal           kernel.Money
	DiscountPercentage decimal.Decimal
	Discount           kernel.Money
	DeliveryFee        kernel.Money
	Tax                kernel.Money
	Total              kernel.Money
}

// SubtotalAfterDiscount returns Subtotal - Discount.
func (t Totals) SubtotalAfterDiscount() kernel.Money {
	return t.Subtotal.Sub(t.Discount)
}

// CalculateTotals prices the items.
//
// Example: subtotal 65.00 with 10% discount is 58.50; delivery fee 10.00; tax 10% of
// 58.50 is 5.85; total is 74.35.
func CalculateTotals(items []LineItem, pricing Pricing) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, errs.NewValueIsRequiredError("items")
	}
	if err := validatePricing(pricing); err != nil {
		return Totals{}, err
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	discount := subtotal.Percent(pricing.DiscountPercentage)
	discounted := subtotal.Sub(discount)
	tax := discounted.Percent(pricing.TaxRate.Mul(decimal.NewFromInt(100)))

	return Totals{
		Subtotal:           subtotal,
		DiscountPercentage: pricing.DiscountPercentage,
		Discount:           discount,
		DeliveryFee:        pricing.DeliveryFee,
		Tax:                tax,
		Total:              discounted.Add(pricing.DeliveryFee).Add(tax),
	}, nil
}

// RestoreTotals rebuilds persisted totals and re-checks the total invariant.
func RestoreTotals(
	subtotal, discount, deliveryFee, tax, total kernel.Money,
	discountPercentage decimal.Decimal,
) (Totals, error) {
	if err := errors.Join(
		subtotal.Validate(), discount.Validate(), deliveryFee.Validate(), tax.Validate(), total.Validate(),
	); err != nil {
		return Totals{}, err
	}

	t := Totals{
		Subtotal:           subtotal,
		DiscountPercentage: discountPercentage,
		Discount:           discount,
		DeliveryFee:        deliveryFee,
		Tax:                tax,
		Total:              total,
	}

	expected := t.SubtotalAfterDiscount().Add(deliveryFee).Add(tax)
	if !expected.IsEqual(total) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"total is invalid",
			fmt.Errorf("%s does not equal %s", total, expected),
		)
	}

	return t, nil
}

func validatePricing(p Pricing) error {
	var errList []error
	if p.DiscountPercentage.IsNegative() || p.DiscountPercentage.GreaterThan(maxDiscountPercentage) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("discount percentage", p.DiscountPercentage.String(), 0, 100))
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(maxTaxRate) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("tax rate", p.TaxRate.String(), 0, 1))
	}
	if err := p.DeliveryFee.Validate(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}
