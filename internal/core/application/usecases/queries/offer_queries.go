// Package queries contains read operations. Queries over a single aggregate go through
// the repository ports; listings that join tables read the database directly and
// return flat read models.
package queries

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/ports"
	"discount/internal/pkg/guard"
)

var (
	ErrListOffersQueryIsNotConstructed = errors.New(
		"ListOffersQuery must be created via NewListOffersQuery constructor",
	)
	ErrGetOfferQueryIsNotConstructed = errors.New(
		"GetOfferQuery must be created via NewGetOfferQuery constructor",
	)
)

// ListOffersQuery lists the public offers, optionally of one category.
type ListOffersQuery struct {
	category *offer.Category

	guard guard.ConstructorGuard
}

// NewListOffersQuery accepts an empty category for all offers.
func NewListOffersQuery(category string) (ListOffersQuery, error) {
	q := ListOffersQuery{guard: guard.NewConstructorGuard()}
	if category == "" {
		return q, nil
	}
	parsed, err := offer.ParseCategory(category)
	if err != nil {
		return ListOffersQuery{}, err
	}
	q.category = &parsed
	return q, nil
}

func (q ListOffersQuery) Validate() error {
	return q.guard.Validate(ErrListOffersQueryIsNotConstructed)
}

func (q ListOffersQuery) Category() *offer.Category { return q.category }

type ListOffersQueryHandler struct {
	offers ports.OfferRepository
}

func NewListOffersQueryHandler(offers ports.OfferRepository) ListOffersQueryHandler {
	return ListOffersQueryHandler{offers: offers}
}

func (h ListOffersQueryHandler) Handle(ctx context.Context, query ListOffersQuery) ([]*offer.Offer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.offers.List(ctx, query.Category())
}

// GetOfferQuery fetches one offer.
type GetOfferQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOfferQuery(id kernel.UUID) (GetOfferQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOfferQuery{}, err
	}
	return GetOfferQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOfferQuery) Validate() error {
	return q.guard.Validate(ErrGetOfferQueryIsNotConstructed)
}

func (q GetOfferQuery) ID() kernel.UUID { return q.id }

type GetOfferQueryHandler struct {
	offers ports.OfferRepository
}

func NewGetOfferQueryHandler(offers ports.OfferRepository) GetOfferQueryHandler {
	return GetOfferQueryHandler{offers: offers}
}

// Handle returns ObjectNotFoundError for unknown ids.
func (h GetOfferQueryHandler) Handle(ctx context.Context, query GetOfferQuery) (*offer.Offer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.offers.Get(ctx, query.ID())
}
