package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PricingConfig holds the charges every order pays on top of its items.
type PricingConfig struct {
	DeliveryFee kernel.Money
	TaxRate     decimal.Decimal
}

// CreateOrderCommandHandler places orders. A coupon is redeemed in the same
// transaction as the order is stored, so a failed order never burns the coupon and a
// used coupon never yields a discounted order.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricing    PricingConfig
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, pricing PricingConfig) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, pricing: pricing}
}

// Handle returns the stored order.
//
// Errors:
//   - ObjectNotFoundError for an unknown restaurant or coupon
//   - ActionIsForbiddenError for a coupon of another restaurant
//   - StateConflictError for an already used coupon
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	placedBy, customerID, err := h.placedBy(command)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurant, err := uow.OfferRepository().Get(ctx, command.RestaurantID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pricing := order.Pricing{
		DiscountPercentage: decimal.Zero,
		DeliveryFee:        h.pricing.DeliveryFee,
		TaxRate:            h.pricing.TaxRate,
	}

	if code := command.CouponCode(); code != nil {
		couponRepo := uow.CouponRepository()
		c, err := couponRepo.GetByCode(ctx, *code)
		if err != nil {
			return nil, err
		}
		if err = c.Redeem(restaurant.ID(), now); err != nil {
			return nil, err
		}
		if err = couponRepo.MarkUsed(ctx, c); err != nil {
			return nil, err
		}
		pricing.DiscountPercentage = decimal.NewFromInt(int64(restaurant.Details().DiscountPercentage))
	}

	created, err := order.NewOrder(
		restaurant.ID(),
		customerID,
		command.Customer(),
		command.Items(),
		pricing,
		placedBy,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// placedBy returns the actor recorded in the order history and the customer the
// order is linked to. Guests are recorded under a fresh customer-role id.
func (h CreateOrderCommandHandler) placedBy(command CreateOrderCommand) (kernel.Actor, *kernel.UUID, error) {
	if actor := command.PlacedBy(); actor != nil {
		return *actor, actor.CustomerID, nil
	}
	guest, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	if err != nil {
		return kernel.Actor{}, nil, err
	}
	return guest, nil, nil
}
