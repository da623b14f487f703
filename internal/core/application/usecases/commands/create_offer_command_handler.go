package commands

import (
	"context"
	"time"

	"discount/internal/core/domain/model/offer"
)

type CreateOfferCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOfferCommandHandler(uowFactory UoWFactory) CreateOfferCommandHandler {
	return CreateOfferCommandHandler{uowFactory: uowFactory}
}

func (h CreateOfferCommandHandler) Handle(ctx context.Context, command CreateOfferCommand) (*offer.Offer, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	created, err := offer.NewOffer(command.Details(), time.Now().UTC())
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

	if err = uow.OfferRepository().Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
