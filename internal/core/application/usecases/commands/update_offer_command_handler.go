package commands

import (
	"context"

	"discount/internal/core/domain/model/offer"
)

type UpdateOfferCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateOfferCommandHandler(uowFactory UoWFactory) UpdateOfferCommandHandler {
	return UpdateOfferCommandHandler{uowFactory: uowFactory}
}

func (h UpdateOfferCommandHandler) Handle(ctx context.Context, command UpdateOfferCommand) (*offer.Offer, error) {
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

	repo := uow.OfferRepository()
	o, err := repo.Get(ctx, command.OfferID())
	if err != nil {
		return nil, err
	}
	if err = o.Update(command.Details()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

type DeleteOfferCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteOfferCommandHandler(uowFactory UoWFactory) DeleteOfferCommandHandler {
	return DeleteOfferCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOfferCommandHandler) Handle(ctx context.Context, command DeleteOfferCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OfferRepository().Delete(ctx, command.OfferID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
