package commands

import (
	"errors"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a delivery order at a restaurant, optionally paying part
// of it with a coupon of that restaurant.
//
// Example:
//
//	snapshot, _ := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
//	burger, _ := order.NewLineItem("Burger", price, 2)
//	cmd, err := NewCreateOrderCommand(nil, restaurantID, snapshot, []order.LineItem{burger}, "PIZ-04821")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	placedBy     *kernel.Actor
	restaurantID kernel.UUID
	customer     order.CustomerSnapshot
	items        []order.LineItem
	couponCode   *coupon.Code

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds the command. placedBy is nil for guests; couponCode may
// be empty.
func NewCreateOrderCommand(
	placedBy *kernel.Actor,
	restaurantID kernel.UUID,
	customer order.CustomerSnapshot,
	items []order.LineItem,
	couponCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setPlacedBy(placedBy),
		cmd.setRestaurantID(restaurantID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setCouponCode(couponCode),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) PlacedBy() *kernel.Actor          { return c.placedBy }
func (c CreateOrderCommand) RestaurantID() kernel.UUID        { return c.restaurantID }
func (c CreateOrderCommand) Customer() order.CustomerSnapshot { return c.customer }
func (c CreateOrderCommand) Items() []order.LineItem          { return c.items }
func (c CreateOrderCommand) CouponCode() *coupon.Code         { return c.couponCode }

func (c *CreateOrderCommand) setPlacedBy(actor *kernel.Actor) error {
	if actor == nil {
		return nil
	}
	if actor.Role != kernel.RoleCustomer {
		return errs.NewActionIsForbiddenError("place an order", actor.Role.String())
	}
	c.placedBy = actor
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setCustomer(snapshot order.CustomerSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	c.customer = snapshot
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setCouponCode(raw string) error {
	if raw == "" {
		return nil
	}
	code, err := coupon.ParseCode(raw)
	if err != nil {
		return err
	}
	c.couponCode = &code
	return nil
}
