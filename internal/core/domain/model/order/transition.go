package order

import (
	"fmt"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

// Action names a transition from the point of view of the actor performing it.
// Dashboards render one button per enabled action.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionStartPreparing Action = "start_preparing"
	ActionMarkReady      Action = "mark_ready"
	ActionAssignDriver   Action = "assign_driver"
	ActionAcceptDelivery Action = "accept_delivery"
	ActionPickUp         Action = "pick_up"
	ActionStartTransit   Action = "start_transit"
	ActionDeliver        Action = "deliver"
	ActionCancel         Action = "cancel"
)

// Transition is one row of the authority table: the edge From -> To may be
// performed by Role, and is presented to that role as Action.
type Transition struct {
	From   Status
	To     Status
	Role   kernel.Role
	Action Action
}

// Transitions returns the complete authority table.
//
// The edge ReadyForPickup -> AssignedToDriver appears twice: a dispatcher assigns a
// driver manually, a driver accepts from the available pool. Cancellation from any
// non-terminal status belongs to the owning merchant and to admins; for a pending
// order the merchant's cancellation is the "reject" action.
func Transitions() []Transition {
	table := []Transition{
		{PendingRestaurantAcceptance, Confirmed, kernel.RoleMerchant, ActionAccept},
		{PendingRestaurantAcceptance, Cancelled, kernel.RoleMerchant, ActionReject},
		{Confirmed, Preparing, kernel.RoleMerchant, ActionStartPreparing},
		{Preparing, ReadyForPickup, kernel.RoleMerchant, ActionMarkReady},
		{ReadyForPickup, AssignedToDriver, kernel.RoleDispatcher, ActionAssignDriver},
		{ReadyForPickup, AssignedToDriver, kernel.RoleDriver, ActionAcceptDelivery},
		{AssignedToDriver, PickedUp, kernel.RoleDriver, ActionPickUp},
		{PickedUp, InTransit, kernel.RoleDriver, ActionStartTransit},
		{InTransit, Delivered, kernel.RoleDriver, ActionDeliver},
	}

	for _, s := range Statuses() {
		if s.IsTerminal() {
			continue
		}
		if s != PendingRestaurantAcceptance {
			table = append(table, Transition{s, Cancelled, kernel.RoleMerchant, ActionCancel})
		}
		table = append(table, Transition{s, Cancelled, kernel.RoleAdmin, ActionCancel})
	}

	return table
}

// TransitionsFrom returns the rows leaving s.
func TransitionsFrom(s Status) []Transition {
	var out []Transition
	for _, t := range Transitions() {
		if t.From == s {
			out = append(out, t)
		}
	}
	return out
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph,
// regardless of who performs it.
func CanTransition(from, to Status) bool {
	for _, t := range TransitionsFrom(from) {
		if t.To == to {
			return true
		}
	}
	return false
}

// FindTransition returns the row for from -> to performed by role.
//
// Errors:
//   - StateConflictError when from -> to is not an edge of the lifecycle graph
//   - ActionIsForbiddenError when the edge exists but role is not authorized for it
func FindTransition(from, to Status, role kernel.Role) (Transition, error) {
	if !CanTransition(from, to) {
		return Transition{}, errs.NewStateConflictError(
			"order",
			fmt.Sprintf("cannot move from %s to %s", from, to),
		)
	}
	for _, t := range TransitionsFrom(from) {
		if t.To == to && t.Role == role {
			return t, nil
		}
	}
	return Transition{}, errs.NewActionIsForbiddenError(fmt.Sprintf("move an order from %s to %s", from, to), role.String())
}

// FindAction returns the row matching action for role out of from.
func FindAction(from Status, action Action, role kernel.Role) (Transition, error) {
	for _, t := range TransitionsFrom(from) {
		if t.Action == action && t.Role == role {
			return t, nil
		}
	}
	for _, t := range Transitions() {
		if t.Action == action && t.Role == role {
			return Transition{}, errs.NewStateConflictError(
				"order",
				fmt.Sprintf("cannot %s while %s", action, from),
			)
		}
	}
	return Transition{}, errs.NewActionIsForbiddenError(string(action), role.String())
}
