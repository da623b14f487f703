package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler applies one transition and its driver side effects
// in a single transaction. The order row is written with a check-and-set on the
// status it was read with, so of two concurrent transitions from the same status
// exactly one commits and the other gets a StateConflictError.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DriverDispatcher
}

func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDriverDispatcher(),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	expected := o.Status()
	actor := command.Actor()
	now := time.Now().UTC()

	var d *driver.Driver
	if h.isSelfAccept(command, o) {
		// Accepting a delivery is an assignment: the driver must be available and
		// becomes busy.
		if d, err = driverRepo.Get(ctx, *actor.DriverID); err != nil {
			return nil, err
		}
		if err = h.dispatcher.Assign(actor, o, d, now); err != nil {
			return nil, err
		}
	} else {
		if command.ByAction() {
			err = o.Perform(actor, command.Action(), now)
		} else {
			err = o.Transition(actor, command.Target(), now)
		}
		if err != nil {
			return nil, err
		}

		if o.DriverID() != nil && o.Status().IsTerminal() {
			if d, err = driverRepo.Get(ctx, *o.DriverID()); err != nil {
				return nil, err
			}
			if err = h.dispatcher.Settle(o, d); err != nil {
				return nil, err
			}
		}
	}

	if err = orderRepo.UpdateStatus(ctx, o, expected); err != nil {
		return nil, err
	}
	if d != nil {
		if err = driverRepo.Update(ctx, d); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h ChangeOrderStatusCommandHandler) isSelfAccept(command ChangeOrderStatusCommand, o *order.Order) bool {
	actor := command.Actor()
	if actor.Role != kernel.RoleDriver || actor.DriverID == nil || o.Status() != order.ReadyForPickup {
		return false
	}
	if command.ByAction() {
		return command.Action() == order.ActionAcceptDelivery
	}
	return command.Target() == order.AssignedToDriver
}
