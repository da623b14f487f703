package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/ports"
)

type RegisterStaffCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterStaffCommandHandler(uowFactory UoWFactory, hasher ports.PasswordHasher) RegisterStaffCommandHandler {
	return RegisterStaffCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h RegisterStaffCommandHandler) Handle(ctx context.Context, command RegisterStaffCommand) (*account.Account, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	binding := account.Binding{}
	if id := command.RestaurantID(); id != nil {
		restaurant, err := uow.OfferRepository().Get(ctx, *id)
		if err != nil {
			return nil, err
		}
		binding.RestaurantID = restaurant.ID().Ptr()
	}
	if p := command.Driver(); p != nil {
		d, err := driver.NewDriver(p.Name, p.Phone, driver.VehicleType(p.VehicleType), p.City)
		if err != nil {
			return nil, err
		}
		if err = uow.DriverRepository().Add(ctx, d); err != nil {
			return nil, err
		}
		binding.DriverID = d.ID().Ptr()
	}

	created, err := account.NewAccount(command.Email(), hash, command.Role(), binding, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = uow.AccountRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
