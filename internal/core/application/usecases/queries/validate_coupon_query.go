package queries

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrValidateCouponQueryIsNotConstructed = errors.New(
	"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
)

// ValidateCouponQuery checks a code without changing it. Merchants always check
// against their own restaurant; admins may check globally by leaving the
// restaurant out.
type ValidateCouponQuery struct {
	code         coupon.Code
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewValidateCouponQuery(actor kernel.Actor, code string, restaurantID *kernel.UUID) (ValidateCouponQuery, error) {
	if err := services.RequireCapability(actor, services.CapValidateCoupons, "validate coupons"); err != nil {
		return ValidateCouponQuery{}, err
	}
	scope, err := services.RestaurantScope(actor, restaurantID)
	if err != nil {
		return ValidateCouponQuery{}, err
	}
	parsed, err := coupon.ParseCode(code)
	if err != nil {
		return ValidateCouponQuery{}, err
	}
	return ValidateCouponQuery{code: parsed, restaurantID: scope, guard: guard.NewConstructorGuard()}, nil
}

func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}

func (q ValidateCouponQuery) Code() coupon.Code          { return q.code }
func (q ValidateCouponQuery) RestaurantID() *kernel.UUID { return q.restaurantID }

// CouponValidation is the disclosed result of a check. Customer is set together with
// Validation.Coupon, that is only for the owning restaurant.
type CouponValidation struct {
	coupon.Validation
	Customer *customer.Customer
}

type ValidateCouponQueryHandler struct {
	coupons   ports.CouponRepository
	customers ports.CustomerRepository
}

func NewValidateCouponQueryHandler(coupons ports.CouponRepository, customers ports.CustomerRepository) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{coupons: coupons, customers: customers}
}

// Handle reports unknown codes in the result, not as an error.
func (h ValidateCouponQueryHandler) Handle(ctx context.Context, query ValidateCouponQuery) (CouponValidation, error) {
	if err := query.Validate(); err != nil {
		return CouponValidation{}, err
	}

	found, err := h.coupons.GetByCode(ctx, query.Code())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		found = nil
	case err != nil:
		return CouponValidation{}, err
	}

	result := CouponValidation{Validation: coupon.Validate(found, query.RestaurantID())}
	if result.Coupon == nil {
		return result, nil
	}

	holder, err := h.customers.Get(ctx, result.Coupon.CustomerID())
	if err != nil {
		return CouponValidation{}, err
	}
	result.Customer = holder

	return result, nil
}
