package order

import (
	"fmt"

	"discount/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// State transitions:
//
//	PendingRestaurantAcceptance ──> Confirmed ──> Preparing ──> ReadyForPickup
//	        │                                                        │
//	        │                                                        v
//	        │      Delivered <── InTransit <── PickedUp <── AssignedToDriver
//	        │
//	        └──> Cancelled   (reachable from every non-terminal state)
//
// Delivered and Cancelled are terminal. The actor authorized for each edge is
// defined by the transition table in transition.go.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingRestaurantAcceptance is the initial status: the restaurant has not
	// accepted or rejected the order yet.
	PendingRestaurantAcceptance

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// ReadyForPickup means the order waits for a driver.
	ReadyForPickup

	// AssignedToDriver means a driver was assigned by a dispatcher or accepted
	// the order from the available pool.
	AssignedToDriver

	// PickedUp means the assigned driver collected the order.
	PickedUp

	// InTransit means the order is on its way to the customer.
	InTransit

	// Delivered is terminal; the delivered timestamp is set on entry.
	Delivered

	// Cancelled is terminal; the restaurant rejected or cancelled the order,
	// or an admin cancelled it.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                     "unknown",
		PendingRestaurantAcceptance: "pending_restaurant_acceptance",
		Confirmed:                   "confirmed",
		Preparing:                   "preparing",
		ReadyForPickup:              "ready_for_pickup",
		AssignedToDriver:            "assigned_to_driver",
		PickedUp:                    "picked_up",
		InTransit:                   "in_transit",
		Delivered:                   "delivered",
		Cancelled:                   "cancelled",
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		PendingRestaurantAcceptance,
		Confirmed,
		Preparing,
		ReadyForPickup,
		AssignedToDriver,
		PickedUp,
		InTransit,
		Delivered,
		Cancelled,
	}
}

// ParseStatus converts the persisted snake_case name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the nine lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name shared with the persistence layer and the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresDriver reports whether an order in s must reference a driver.
func (s Status) RequiresDriver() bool {
	return s == AssignedToDriver || s == PickedUp || s == InTransit || s == Delivered
}

// ValidateCanHaveDriver checks consistency between the status and the presence of an
// assigned driver. Cancelled orders may or may not keep the driver reference.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if s == Cancelled {
		return nil
	}
	if hasDriver && !s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}
	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}
