package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/coupon"
)

// RedeemCouponCommandHandler validates ownership and status, then stores the
// redemption with a conditional update. Of two concurrent redemptions exactly one
// succeeds; the other gets coupon.ErrAlreadyUsed.
type RedeemCouponCommandHandler struct {
	uowFactory UoWFactory
}

func NewRedeemCouponCommandHandler(uowFactory UoWFactory) RedeemCouponCommandHandler {
	return RedeemCouponCommandHandler{uowFactory: uowFactory}
}

// Handle returns the redeemed coupon.
//
// Errors:
//   - ObjectNotFoundError for an unknown code
//   - ActionIsForbiddenError for a coupon of another restaurant
//   - coupon.ErrAlreadyUsed (a StateConflictError) when it was used before
func (h RedeemCouponCommandHandler) Handle(ctx context.Context, command RedeemCouponCommand) (*coupon.Coupon, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CouponRepository()
	c, err := repo.GetByCode(ctx, command.Code())
	if err != nil {
		return nil, err
	}

	if err = c.Redeem(command.RestaurantID(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = repo.MarkUsed(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
