package queries

import (
	"context"
	"errors"
	"strings"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrSuggestDriversQueryIsNotConstructed = errors.New(
	"SuggestDriversQuery must be created via NewSuggestDriversQuery constructor",
)

// SuggestDriversQuery ranks available drivers for a ready order.
type SuggestDriversQuery struct {
	orderID kernel.UUID
	city    string

	guard guard.ConstructorGuard
}

func NewSuggestDriversQuery(actor kernel.Actor, orderID kernel.UUID, city string) (SuggestDriversQuery, error) {
	if err := services.RequireCapability(actor, services.CapAssignDrivers, "suggest drivers"); err != nil {
		return SuggestDriversQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return SuggestDriversQuery{}, err
	}
	return SuggestDriversQuery{
		orderID: orderID,
		city:    strings.TrimSpace(city),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q SuggestDriversQuery) Validate() error {
	return q.guard.Validate(ErrSuggestDriversQueryIsNotConstructed)
}

func (q SuggestDriversQuery) OrderID() kernel.UUID { return q.orderID }
func (q SuggestDriversQuery) City() string         { return q.city }

type SuggestDriversQueryHandler struct {
	orders     ports.OrderRepository
	drivers    ports.DriverRepository
	dispatcher services.DriverDispatcher
}

func NewSuggestDriversQueryHandler(orders ports.OrderRepository, drivers ports.DriverRepository) SuggestDriversQueryHandler {
	return SuggestDriversQueryHandler{
		orders:     orders,
		drivers:    drivers,
		dispatcher: services.NewDriverDispatcher(),
	}
}

// Handle returns a StateConflictError unless the order is ready for pickup.
func (h SuggestDriversQueryHandler) Handle(ctx context.Context, query SuggestDriversQuery) ([]*driver.Driver, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if o.Status() != order.ReadyForPickup {
		return nil, errs.NewStateConflictError("order", "is not ready for pickup")
	}

	available, err := h.drivers.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return h.dispatcher.Suggest(available, query.City())
}
