package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"discount/internal/core/domain/model/order"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery is the public, unauthenticated lookup by order number.
type TrackOrderQuery struct {
	number string
	locale order.Locale

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery never fails on a malformed number: the handler reports it as not
// found, like an unknown one.
func NewTrackOrderQuery(number string, locale order.Locale) TrackOrderQuery {
	return TrackOrderQuery{
		number: strings.ToUpper(strings.TrimSpace(number)),
		locale: locale,
		guard:  guard.NewConstructorGuard(),
	}
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackedOrder is everything an anonymous tracker may see. The customer appears by
// first name only.
type TrackedOrder struct {
	Number            order.Number
	Status            order.Status
	Label             string
	Color             string
	Progress          order.Progress
	CustomerFirstName string
	Items             []order.LineItem
	Totals            order.Totals
	HasDriver         bool
	CreatedAt         time.Time
	DeliveredAt       *time.Time
}

type TrackOrderQueryHandler struct {
	orders ports.OrderRepository
}

func NewTrackOrderQueryHandler(orders ports.OrderRepository) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{orders: orders}
}

// Handle returns an ObjectNotFoundError for unknown and malformed numbers alike.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackedOrder, error) {
	if err := query.Validate(); err != nil {
		return TrackedOrder{}, err
	}

	number, err := order.ParseNumber(query.number)
	if err != nil {
		return TrackedOrder{}, errs.NewObjectNotFoundError("order", query.number)
	}
	o, err := h.orders.GetByNumber(ctx, number)
	if err != nil {
		return TrackedOrder{}, err
	}

	badge := order.BadgeOf(o.Status())
	return TrackedOrder{
		Number:            o.Number(),
		Status:            o.Status(),
		Label:             badge.Label(query.locale),
		Color:             badge.Color,
		Progress:          o.Progress(),
		CustomerFirstName: firstName(o.Customer().Name()),
		Items:             o.Items(),
		Totals:            o.Totals(),
		HasDriver:         o.DriverID() != nil,
		CreatedAt:         o.CreatedAt(),
		DeliveredAt:       o.DeliveredAt(),
	}, nil
}

func firstName(full string) string {
	if fields := strings.Fields(full); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
