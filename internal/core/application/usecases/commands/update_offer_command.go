package commands

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var (
	ErrUpdateOfferCommandIsNotConstructed = errors.New(
		"UpdateOfferCommand must be created via NewUpdateOfferCommand constructor",
	)
	ErrDeleteOfferCommandIsNotConstructed = errors.New(
		"DeleteOfferCommand must be created via NewDeleteOfferCommand constructor",
	)
)

// UpdateOfferCommand replaces the editable attributes of an offer.
type UpdateOfferCommand struct {
	offerID kernel.UUID
	details offer.Details

	guard guard.ConstructorGuard
}

func NewUpdateOfferCommand(actor kernel.Actor, offerID kernel.UUID, details offer.Details) (UpdateOfferCommand, error) {
	if err := authorizeOfferEdit(actor, offerID, "update offers"); err != nil {
		return UpdateOfferCommand{}, err
	}
	if err := details.Validate(); err != nil {
		return UpdateOfferCommand{}, err
	}
	return UpdateOfferCommand{offerID: offerID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateOfferCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOfferCommandIsNotConstructed)
}

func (c UpdateOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c UpdateOfferCommand) Details() offer.Details { return c.details }

// DeleteOfferCommand removes an offer from the listing.
type DeleteOfferCommand struct {
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOfferCommand(actor kernel.Actor, offerID kernel.UUID) (DeleteOfferCommand, error) {
	if err := authorizeOfferEdit(actor, offerID, "delete offers"); err != nil {
		return DeleteOfferCommand{}, err
	}
	return DeleteOfferCommand{offerID: offerID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOfferCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOfferCommandIsNotConstructed)
}

func (c DeleteOfferCommand) OfferID() kernel.UUID { return c.offerID }

// authorizeOfferEdit lets admins edit any offer and merchants only their own.
func authorizeOfferEdit(actor kernel.Actor, offerID kernel.UUID, action string) error {
	if err := offerID.Validate(); err != nil {
		return err
	}
	if err := services.RequireCapability(actor, services.CapManageOffers, action); err != nil {
		return err
	}
	if actor.Role == kernel.RoleMerchant && !actor.OwnsRestaurant(offerID) {
		return errs.NewActionIsForbiddenError(action+" of another restaurant", actor.Role.String())
	}
	return nil
}
