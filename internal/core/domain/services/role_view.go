package services

import (
	"slices"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
)

// DriverContact is the part of a driver shown next to an order.
type DriverContact struct {
	Name        string
	Phone       string
	VehicleType driver.VehicleType
}

// RoleView is what one viewer sees of one order.
type RoleView struct {
	Status   order.Status
	Label    string
	Color    string
	Progress order.Progress
	Actions  []order.Action
	// Customer is nil when the viewer may not see the customer's contact details.
	Customer *order.CustomerSnapshot
	// Driver is nil when no driver is assigned or the viewer may not see them.
	Driver *DriverContact
}

// RoleViewProjector derives per-viewer order views. It holds no state.
type RoleViewProjector struct{}

func NewRoleViewProjector() RoleViewProjector {
	return RoleViewProjector{}
}

// Project builds the view of o for viewer. d is the assigned driver, if any.
func (p RoleViewProjector) Project(o *order.Order, d *driver.Driver, viewer kernel.Actor, locale order.Locale) RoleView {
	badge := order.BadgeOf(o.Status())

	view := RoleView{
		Status:   o.Status(),
		Label:    badge.Label(locale),
		Color:    badge.Color,
		Progress: o.Progress(),
		Actions:  p.Actions(o, viewer),
	}

	if p.RevealsCustomer(o, viewer) {
		snapshot := o.Customer()
		view.Customer = &snapshot
	}
	if d != nil && kernel.SameRef(o.DriverID(), d.ID().Ptr()) && p.RevealsDriver(o, viewer) {
		view.Driver = &DriverContact{Name: d.Name(), Phone: d.Phone(), VehicleType: d.VehicleType()}
	}

	return view
}

// Actions lists the actions viewer can take on o right now, in table order.
func (RoleViewProjector) Actions(o *order.Order, viewer kernel.Actor) []order.Action {
	var out []order.Action
	for _, t := range order.TransitionsFrom(o.Status()) {
		if o.CanBePerformedBy(t, viewer) && !slices.Contains(out, t.Action) {
			out = append(out, t.Action)
		}
	}
	return out
}

// RevealsCustomer reports whether viewer may see the customer's name, phone and
// address.
func (RoleViewProjector) RevealsCustomer(o *order.Order, viewer kernel.Actor) bool {
	switch viewer.Role {
	case kernel.RoleAdmin, kernel.RoleDispatcher:
		return true
	case kernel.RoleMerchant:
		return viewer.OwnsRestaurant(o.RestaurantID())
	case kernel.RoleDriver:
		return viewer.IsDriver(o.DriverID())
	case kernel.RoleCustomer:
		return viewer.IsCustomer(o.CustomerID())
	default:
		return false
	}
}

// RevealsDriver reports whether viewer may see the assigned driver's contact.
func (RoleViewProjector) RevealsDriver(o *order.Order, viewer kernel.Actor) bool {
	if o.DriverID() == nil {
		return false
	}
	inProgress := o.Status() == order.AssignedToDriver || o.Status() == order.PickedUp || o.Status() == order.InTransit

	switch viewer.Role {
	case kernel.RoleAdmin, kernel.RoleDispatcher:
		return true
	case kernel.RoleMerchant:
		return inProgress && viewer.OwnsRestaurant(o.RestaurantID())
	case kernel.RoleCustomer:
		return inProgress && viewer.IsCustomer(o.CustomerID())
	case kernel.RoleDriver:
		return viewer.IsDriver(o.DriverID())
	default:
		return false
	}
}
