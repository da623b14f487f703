package queries

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

const defaultOrderLimit = 200

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders as one dashboard sees them. The requested
// filters are narrowed to what the viewer's role may list:
//   - merchants see their restaurant's orders
//   - drivers see their own orders, and unassigned ones when asking for ready_for_pickup
//   - customers see the orders they placed
//   - dispatchers and admins see everything
type GetOrdersByStatusQuery struct {
	viewer kernel.Actor
	filter ports.OrderFilter
	locale order.Locale

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery accepts an empty status for every status.
func NewGetOrdersByStatusQuery(
	viewer kernel.Actor,
	status string,
	restaurantID, driverID *kernel.UUID,
	locale order.Locale,
) (GetOrdersByStatusQuery, error) {
	if err := services.RequireCapability(viewer, services.CapViewOrders, "view orders"); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	filter := ports.OrderFilter{RestaurantID: restaurantID, DriverID: driverID, Limit: defaultOrderLimit}
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return GetOrdersByStatusQuery{}, err
		}
		filter.Status = &parsed
	}

	scoped, err := scopeOrders(viewer, filter)
	if err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		viewer: viewer,
		filter: scoped,
		locale: locale,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func scopeOrders(viewer kernel.Actor, f ports.OrderFilter) (ports.OrderFilter, error) {
	switch viewer.Role {
	case kernel.RoleMerchant:
		scope, err := services.RestaurantScope(viewer, f.RestaurantID)
		if err != nil {
			return f, err
		}
		f.RestaurantID = scope
	case kernel.RoleDriver:
		if viewer.DriverID == nil {
			return f, errs.NewActionIsForbiddenError("view orders without a driver profile", viewer.Role.String())
		}
		if f.DriverID != nil && !f.DriverID.IsEqual(*viewer.DriverID) {
			return f, errs.NewActionIsForbiddenError("view orders of another driver", viewer.Role.String())
		}
		if f.Status != nil && *f.Status == order.ReadyForPickup {
			f.DriverID = nil
			f.Unassigned = true
		} else {
			f.DriverID = viewer.DriverID
		}
	case kernel.RoleCustomer:
		if viewer.CustomerID == nil {
			return f, errs.NewActionIsForbiddenError("view orders without a customer profile", viewer.Role.String())
		}
		f.CustomerID = viewer.CustomerID
	case kernel.RoleDispatcher, kernel.RoleAdmin:
	}
	return f, nil
}

func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Viewer() kernel.Actor      { return q.viewer }
func (q GetOrdersByStatusQuery) Filter() ports.OrderFilter { return q.filter }
func (q GetOrdersByStatusQuery) Locale() order.Locale      { return q.locale }

// OrderView pairs an order with what the viewer may see of it. Callers render
// customer and driver contact from View only; Order carries the unfiltered aggregate.
type OrderView struct {
	Order *order.Order
	View  services.RoleView
}
