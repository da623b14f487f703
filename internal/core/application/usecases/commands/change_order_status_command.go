package commands

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommandTo or NewChangeOrderStatusCommandByAction",
)

// ChangeOrderStatusCommand moves an order along the state machine, addressed either
// by target status or by the action name a dashboard button carries.
type ChangeOrderStatusCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	target  order.Status
	action  order.Action

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommandTo(actor kernel.Actor, orderID kernel.UUID, target order.Status) (ChangeOrderStatusCommand, error) {
	var targetErr error
	if target == order.Unknown {
		targetErr = errs.NewValueIsRequiredError("status")
	} else {
		targetErr = target.Validate()
	}
	if err := errors.Join(actor.ID.Validate(), orderID.Validate(), targetErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func NewChangeOrderStatusCommandByAction(actor kernel.Actor, orderID kernel.UUID, action order.Action) (ChangeOrderStatusCommand, error) {
	var actionErr error
	if action == "" {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if err := errors.Join(actor.ID.Validate(), orderID.Validate(), actionErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor  { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Action() order.Action { return c.action }

// ByAction reports whether the command names an action rather than a status.
func (c ChangeOrderStatusCommand) ByAction() bool { return c.action != "" }
