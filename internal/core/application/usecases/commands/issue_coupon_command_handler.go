package commands

import (
	"context"
	"errors"
	"io"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
)

const maxCodeAttempts = 10

// ErrCodeSpaceExhausted is returned when no unused code was found for a restaurant
// prefix within maxCodeAttempts.
var ErrCodeSpaceExhausted = errors.New("could not generate an unused coupon code")

// IssueCouponCommandHandler finds or registers the customer and stores a fresh coupon
// for the offer's restaurant.
//
// Code uniqueness is checked against the in-memory filter first; only codes the filter
// may have seen are looked up in the repository. The unique index on the code column
// remains the final arbiter for codes issued by other instances, and a collision there
// teaches the filter the code before another is drawn.
type IssueCouponCommandHandler struct {
	uowFactory UoWFactory
	filter     *coupon.CodeFilter
	random     io.Reader
}

// NewIssueCouponCommandHandler creates the handler. A nil random uses crypto/rand.
func NewIssueCouponCommandHandler(uowFactory UoWFactory, filter *coupon.CodeFilter, random io.Reader) IssueCouponCommandHandler {
	if filter == nil {
		filter = coupon.NewCodeFilter(0)
	}
	return IssueCouponCommandHandler{uowFactory: uowFactory, filter: filter, random: random}
}

func (h IssueCouponCommandHandler) Handle(ctx context.Context, command IssueCouponCommand) (*coupon.Coupon, error) {
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

	restaurant, err := uow.OfferRepository().Get(ctx, command.OfferID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	holder, err := h.findOrRegister(ctx, uow.CustomerRepository(), command, now)
	if err != nil {
		return nil, err
	}

	issued, err := h.store(ctx, uow.CouponRepository(), restaurant.DisplayName(), holder.ID(), restaurant.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	h.filter.Add(issued.Code())

	return issued, nil
}

// store adds a coupon under a fresh code. A code another instance issued is only
// caught by the unique index; it is remembered and another code is drawn.
func (h IssueCouponCommandHandler) store(
	ctx context.Context,
	repo ports.CouponRepository,
	restaurantName string,
	customerID, restaurantID kernel.UUID,
	now time.Time,
) (*coupon.Coupon, error) {
	for attempt := 1; ; attempt++ {
		code, err := h.freshCode(ctx, repo, restaurantName)
		if err != nil {
			return nil, err
		}
		issued, err := coupon.NewCoupon(code, customerID, restaurantID, now)
		if err != nil {
			return nil, err
		}

		err = repo.Add(ctx, issued)
		switch {
		case err == nil:
			return issued, nil
		case !errors.Is(err, coupon.ErrCodeIsTaken):
			return nil, err
		case attempt == maxCodeAttempts:
			return nil, ErrCodeSpaceExhausted
		}
		h.filter.Add(code)
	}
}

func (h IssueCouponCommandHandler) findOrRegister(
	ctx context.Context,
	repo ports.CustomerRepository,
	command IssueCouponCommand,
	now time.Time,
) (*customer.Customer, error) {
	existing, err := repo.GetByEmail(ctx, command.Email())
	switch {
	case err == nil:
		existing.UpdateContact(command.Name(), command.Phone())
		if err = repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, errs.ErrObjectNotFound):
	default:
		return nil, err
	}

	registered, err := customer.NewCustomer(command.Name(), command.Email(), command.Phone(), now)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, registered); err != nil {
		return nil, err
	}
	return registered, nil
}

func (h IssueCouponCommandHandler) freshCode(ctx context.Context, repo ports.CouponRepository, restaurantName string) (coupon.Code, error) {
	for range maxCodeAttempts {
		code, err := coupon.NewCode(restaurantName, h.random)
		if err != nil {
			return "", err
		}
		if !h.filter.MayContain(code) {
			return code, nil
		}
		taken, err := repo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
