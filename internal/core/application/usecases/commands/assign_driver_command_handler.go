package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
)

// AssignDriverCommandHandler stores the order and the driver it was given to in one
// transaction. A driver acting on their own behalf is always the assignee.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DriverDispatcher
}

func NewAssignDriverCommandHandler(uowFactory UoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDriverDispatcher(),
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (*order.Order, error) {
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

	driverID := command.DriverID()
	if driverID == nil && actor.DriverID != nil {
		driverID = actor.DriverID
	}

	var assigned *driver.Driver
	if driverID != nil {
		if assigned, err = driverRepo.Get(ctx, *driverID); err != nil {
			return nil, err
		}
		if err = h.dispatcher.Assign(actor, o, assigned, now); err != nil {
			return nil, err
		}
	} else {
		var available []*driver.Driver
		if available, err = driverRepo.GetAllAvailable(ctx); err != nil {
			return nil, err
		}
		if assigned, err = h.dispatcher.Dispatch(actor, o, available, command.City(), now); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.UpdateStatus(ctx, o, expected); err != nil {
		return nil, err
	}
	if err = driverRepo.Update(ctx, assigned); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
