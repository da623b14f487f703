package commands

import (
	"errors"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrRedeemCouponCommandIsNotConstructed = errors.New(
	"RedeemCouponCommand must be created via NewRedeemCouponCommand constructor",
)

// RedeemCouponCommand marks a coupon used at a restaurant. A merchant always redeems
// for their own restaurant.
type RedeemCouponCommand struct {
	actor        kernel.Actor
	code         coupon.Code
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRedeemCouponCommand(actor kernel.Actor, code string, restaurantID *kernel.UUID) (RedeemCouponCommand, error) {
	if err := services.RequireCapability(actor, services.CapValidateCoupons, "redeem coupons"); err != nil {
		return RedeemCouponCommand{}, err
	}
	scope, err := services.RestaurantScope(actor, restaurantID)
	if err != nil {
		return RedeemCouponCommand{}, err
	}

	parsed, codeErr := coupon.ParseCode(code)
	var scopeErr error
	if scope == nil {
		scopeErr = errs.NewValueIsRequiredError("restaurant id")
	} else {
		scopeErr = scope.Validate()
	}
	if err = errors.Join(codeErr, scopeErr); err != nil {
		return RedeemCouponCommand{}, err
	}

	return RedeemCouponCommand{
		actor:        actor,
		code:         parsed,
		restaurantID: *scope,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RedeemCouponCommand) Validate() error {
	return c.guard.Validate(ErrRedeemCouponCommandIsNotConstructed)
}

func (c RedeemCouponCommand) Actor() kernel.Actor       { return c.actor }
func (c RedeemCouponCommand) Code() coupon.Code         { return c.code }
func (c RedeemCouponCommand) RestaurantID() kernel.UUID { return c.restaurantID }
