package commands

import (
	"context"

	"discount/internal/core/domain/model/driver"
)

type SetDriverAvailabilityCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetDriverAvailabilityCommandHandler(uowFactory UoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle returns driver.ErrDriverIsBusy while the driver carries an order.
func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, command SetDriverAvailabilityCommand) (*driver.Driver, error) {
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

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}
	if err = d.SetAvailability(command.Status()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
