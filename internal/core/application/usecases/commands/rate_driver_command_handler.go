package commands

import (
	"context"

	"discount/internal/core/domain/model/driver"
)

type RateDriverCommandHandler struct {
	uowFactory UoWFactory
}

func NewRateDriverCommandHandler(uowFactory UoWFactory) RateDriverCommandHandler {
	return RateDriverCommandHandler{uowFactory: uowFactory}
}

// Handle returns the driver with the updated average. Ratings outside 1..5 are
// rejected by the driver.
func (h RateDriverCommandHandler) Handle(ctx context.Context, command RateDriverCommand) (*driver.Driver, error) {
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
	if _, err = d.Rate(command.Rating()); err != nil {
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
