package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// StatusChange is one entry of the append-only audit trail of an order.
type StatusChange struct {
	From      Status
	To        Status
	ActorRole kernel.Role
	ActorID   kernel.UUID
	At        time.Time
}

// Order is the aggregate root of a single delivery order.
//
// Order follows these invariants:
//   - Customer snapshot, items and totals never change after creation
//   - Status moves only along the lifecycle graph, by the role authorized for the edge
//   - A driver is recorded from assigned_to_driver onwards
//   - deliveredAt is set exactly when the status is delivered
//   - Every status change appends one history entry; failed operations change nothing
type Order struct {
	id           kernel.UUID
	number       Number
	restaurantID kernel.UUID
	customerID   *kernel.UUID
	customer     CustomerSnapshot
	items        []LineItem
	totals       Totals
	driverID     *kernel.UUID
	status       Status
	createdAt    time.Time
	deliveredAt  *time.Time
	history      []StatusChange

	isConstructed bool
}

// NewOrder places an order for restaurantID. The order starts in
// PendingRestaurantAcceptance and its totals are computed from items and pricing.
//
// customerID is nil for guest orders. placedBy is recorded as the actor of the
// initial history entry.
func NewOrder(
	restaurantID kernel.UUID,
	customerID *kernel.UUID,
	customer CustomerSnapshot,
	items []LineItem,
	pricing Pricing,
	placedBy kernel.Actor,
	now time.Time,
) (*Order, error) {
	var customerIDErr error
	if customerID != nil {
		customerIDErr = customerID.Validate()
	}
	if err := errors.Join(
		restaurantID.Validate(),
		customerIDErr,
		customer.Validate(),
	); err != nil {
		return nil, err
	}

	totals, err := CalculateTotals(items, pricing)
	if err != nil {
		return nil, err
	}

	number, err := NewNumber(now)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:           kernel.NewUUID(),
		number:       number,
		restaurantID: restaurantID,
		customerID:   customerID,
		customer:     customer,
		items:        slices.Clone(items),
		totals:       totals,
		status:       PendingRestaurantAcceptance,
		createdAt:    now,
		history: []StatusChange{{
			From:      Unknown,
			To:        PendingRestaurantAcceptance,
			ActorRole: placedBy.Role,
			ActorID:   placedBy.ID,
			At:        now,
		}},
		isConstructed: true,
	}, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	Number       Number
	RestaurantID kernel.UUID
	CustomerID   *kernel.UUID
	Customer     CustomerSnapshot
	Items        []LineItem
	Totals       Totals
	DriverID     *kernel.UUID
	Status       Status
	CreatedAt    time.Time
	DeliveredAt  *time.Time
	History      []StatusChange
}

// RestoreOrder rebuilds an order from storage and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.RestaurantID.Validate(),
		s.Customer.Validate(),
		s.Status.Validate(),
		s.Totals.Total.Validate(),
	); err != nil {
		return nil, err
	}
	if _, err := ParseNumber(s.Number.String()); err != nil {
		return nil, err
	}
	if len(s.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := s.Status.ValidateCanHaveDriver(s.DriverID != nil); err != nil {
		return nil, err
	}
	if (s.Status == Delivered) != (s.DeliveredAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"delivered at",
			fmt.Errorf("delivered at must be set exactly when status is %s", Delivered),
		)
	}

	return &Order{
		id:            s.ID,
		number:        s.Number,
		restaurantID:  s.RestaurantID,
		customerID:    s.CustomerID,
		customer:      s.Customer,
		items:         slices.Clone(s.Items),
		totals:        s.Totals,
		driverID:      s.DriverID,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		deliveredAt:   s.DeliveredAt,
		history:       slices.Clone(s.History),
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CustomerID is nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

func (o *Order) Customer() CustomerSnapshot {
	return o.customer
}

func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) Totals() Totals {
	return o.totals
}

// DriverID is nil until a driver is assigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// History returns a copy of the audit trail, oldest first.
func (o *Order) History() []StatusChange {
	return slices.Clone(o.history)
}

// Progress returns the milestone step of the current status.
func (o *Order) Progress() Progress {
	return ProgressOf(o.status)
}

// Transition moves the order to status to on behalf of actor.
//
// Errors:
//   - StateConflictError if to is not reachable from the current status
//   - ActionIsForbiddenError if the actor's role is not authorized for the edge,
//     or the actor does not own the order (merchant of another restaurant,
//     driver other than the assigned one)
//   - ValueIsRequiredError when a dispatcher moves to assigned_to_driver without
//     naming a driver; use AssignDriver for that
//
// On error the order is left unchanged.
func (o *Order) Transition(actor kernel.Actor, to Status, now time.Time) error {
	t, err := FindTransition(o.status, to, actor.Role)
	if err != nil {
		return err
	}
	return o.apply(t, actor, nil, now)
}

// Perform is Transition addressed by action name, as dashboards send it.
func (o *Order) Perform(actor kernel.Actor, action Action, now time.Time) error {
	t, err := FindAction(o.status, action, actor.Role)
	if err != nil {
		return err
	}
	return o.apply(t, actor, nil, now)
}

// AssignDriver moves a ready order to assigned_to_driver with driverID.
// A dispatcher may assign any driver; a driver may only accept the delivery for
// themselves.
func (o *Order) AssignDriver(actor kernel.Actor, driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	t, err := FindTransition(o.status, AssignedToDriver, actor.Role)
	if err != nil {
		return err
	}
	return o.apply(t, actor, &driverID, now)
}

// CanBePerformedBy reports whether actor may take transition t on this order right now.
func (o *Order) CanBePerformedBy(t Transition, actor kernel.Actor) bool {
	return t.From == o.status && t.Role == actor.Role && o.authorize(t, actor, nil) == nil
}

func (o *Order) apply(t Transition, actor kernel.Actor, driverID *kernel.UUID, now time.Time) error {
	if err := o.authorize(t, actor, driverID); err != nil {
		return err
	}

	if t.To == AssignedToDriver {
		if driverID == nil {
			driverID = actor.DriverID
		}
		if driverID == nil {
			return errs.NewValueIsRequiredError("driver")
		}
		o.driverID = driverID.Ptr()
	}
	if t.To == Delivered {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	}

	o.history = append(o.history, StatusChange{
		From:      o.status,
		To:        t.To,
		ActorRole: actor.Role,
		ActorID:   actor.ID,
		At:        now,
	})
	o.status = t.To

	return nil
}

func (o *Order) authorize(t Transition, actor kernel.Actor, driverID *kernel.UUID) error {
	switch actor.Role {
	case kernel.RoleMerchant:
		if !actor.OwnsRestaurant(o.restaurantID) {
			return errs.NewActionIsForbiddenError(string(t.Action)+" an order of another restaurant", actor.Role.String())
		}
	case kernel.RoleDriver:
		if t.Action == ActionAcceptDelivery {
			if actor.DriverID == nil {
				return errs.NewActionIsForbiddenError(string(t.Action)+" without a driver profile", actor.Role.String())
			}
			if driverID != nil && !actor.DriverID.IsEqual(*driverID) {
				return errs.NewActionIsForbiddenError("assign an order to another driver", actor.Role.String())
			}
			return nil
		}
		if !actor.IsDriver(o.driverID) {
			return errs.NewActionIsForbiddenError(string(t.Action)+" an order assigned to another driver", actor.Role.String())
		}
	case kernel.RoleCustomer, kernel.RoleDispatcher, kernel.RoleAdmin:
	}
	return nil
}
