package services

import (
	"slices"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

// Capability is a coarse permission checked by the HTTP layer and every dashboard.
type Capability string

const (
	CapManageOffers       Capability = "manage_offers"
	CapValidateCoupons    Capability = "validate_coupons"
	CapListCustomers      Capability = "list_customers"
	CapViewOrders         Capability = "view_orders"
	CapViewAllOrders      Capability = "view_all_orders"
	CapAssignDrivers      Capability = "assign_drivers"
	CapRateDrivers        Capability = "rate_drivers"
	CapToggleAvailability Capability = "toggle_availability"
	CapPlaceOrders        Capability = "place_orders"
	CapViewStats          Capability = "view_stats"
)

// Capabilities is the set granted to one role.
type Capabilities []Capability

func (c Capabilities) Has(capability Capability) bool {
	return slices.Contains(c, capability)
}

// ResolveCapabilities is the single role -> capability mapping.
func ResolveCapabilities(role kernel.Role) Capabilities {
	switch role {
	case kernel.RoleAdmin:
		return Capabilities{
			CapManageOffers, CapValidateCoupons, CapListCustomers, CapViewOrders,
			CapViewAllOrders, CapRateDrivers, CapViewStats,
		}
	case kernel.RoleMerchant:
		return Capabilities{CapManageOffers, CapValidateCoupons, CapViewOrders, CapViewStats}
	case kernel.RoleDispatcher:
		return Capabilities{CapViewOrders, CapViewAllOrders, CapAssignDrivers, CapRateDrivers, CapViewStats}
	case kernel.RoleDriver:
		return Capabilities{CapViewOrders, CapToggleAvailability}
	case kernel.RoleCustomer:
		return Capabilities{CapViewOrders, CapPlaceOrders}
	default:
		return nil
	}
}

// RequireCapability rejects actors whose role does not grant capability. action names
// the attempted operation in the error.
func RequireCapability(actor kernel.Actor, capability Capability, action string) error {
	if !ResolveCapabilities(actor.Role).Has(capability) {
		return errs.NewActionIsForbiddenError(action, actor.Role.String())
	}
	return nil
}

// RestaurantScope returns the restaurant a coupon or listing operation acts for.
// Merchants are always scoped to their own restaurant whatever they ask for; other
// roles get what they requested.
func RestaurantScope(actor kernel.Actor, requested *kernel.UUID) (*kernel.UUID, error) {
	if actor.Role != kernel.RoleMerchant {
		return requested, nil
	}
	if actor.RestaurantID == nil {
		return nil, errs.NewActionIsForbiddenError("act without a restaurant", actor.Role.String())
	}
	if requested != nil && !requested.IsEqual(*actor.RestaurantID) {
		return nil, errs.NewActionIsForbiddenError("act for another restaurant", actor.Role.String())
	}
	return actor.RestaurantID, nil
}
