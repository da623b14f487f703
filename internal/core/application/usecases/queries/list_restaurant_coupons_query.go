package queries

import (
	"errors"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrListRestaurantCouponsQueryIsNotConstructed = errors.New(
	"ListRestaurantCouponsQuery must be created via NewListRestaurantCouponsQuery constructor",
)

// ListRestaurantCouponsQuery lists the coupons of one restaurant together with the
// holders' contact details. Merchants only see their own restaurant.
type ListRestaurantCouponsQuery struct {
	restaurantID kernel.UUID
	status       *coupon.Status

	guard guard.ConstructorGuard
}

// NewListRestaurantCouponsQuery accepts an empty status for all coupons.
func NewListRestaurantCouponsQuery(actor kernel.Actor, restaurantID kernel.UUID, status string) (ListRestaurantCouponsQuery, error) {
	if err := services.RequireCapability(actor, services.CapValidateCoupons, "list coupons"); err != nil {
		return ListRestaurantCouponsQuery{}, err
	}
	if err := restaurantID.Validate(); err != nil {
		return ListRestaurantCouponsQuery{}, err
	}
	scope, err := services.RestaurantScope(actor, &restaurantID)
	if err != nil {
		return ListRestaurantCouponsQuery{}, err
	}
	if scope == nil {
		return ListRestaurantCouponsQuery{}, errs.NewValueIsRequiredError("restaurant id")
	}

	q := ListRestaurantCouponsQuery{restaurantID: *scope, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := coupon.ParseStatus(status)
		if err != nil {
			return ListRestaurantCouponsQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListRestaurantCouponsQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantCouponsQueryIsNotConstructed)
}

func (q ListRestaurantCouponsQuery) RestaurantID() kernel.UUID { return q.restaurantID }
func (q ListRestaurantCouponsQuery) Status() *coupon.Status    { return q.status }

// RestaurantCouponItem is one coupon row with its holder.
type RestaurantCouponItem struct {
	ID            kernel.UUID
	Code          coupon.Code
	Status        coupon.Status
	CreatedAt     time.Time
	UsedAt        *time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}
