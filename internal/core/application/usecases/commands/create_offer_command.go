package commands

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrCreateOfferCommandIsNotConstructed = errors.New(
	"CreateOfferCommand must be created via NewCreateOfferCommand constructor",
)

// CreateOfferCommand publishes a new restaurant offer. Registering restaurants is an
// admin task; merchants edit the offer of the restaurant they are bound to.
type CreateOfferCommand struct {
	details offer.Details

	guard guard.ConstructorGuard
}

func NewCreateOfferCommand(actor kernel.Actor, details offer.Details) (CreateOfferCommand, error) {
	if actor.Role != kernel.RoleAdmin {
		return CreateOfferCommand{}, errs.NewActionIsForbiddenError("create offers", actor.Role.String())
	}
	if err := details.Validate(); err != nil {
		return CreateOfferCommand{}, err
	}
	return CreateOfferCommand{details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateOfferCommandIsNotConstructed)
}

func (c CreateOfferCommand) Details() offer.Details { return c.details }
