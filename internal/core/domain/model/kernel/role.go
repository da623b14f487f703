package kernel

import (
	"fmt"

	"discount/internal/pkg/errs"
)

// Role identifies which dashboard an actor operates.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleMerchant   Role = "merchant"
	RoleDispatcher Role = "dispatcher"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// Roles lists every valid role in a stable order.
func Roles() []Role {
	return []Role{RoleCustomer, RoleMerchant, RoleDispatcher, RoleDriver, RoleAdmin}
}

// ParseRole converts the persisted or transported form into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects roles outside the fixed set.
func (r Role) Validate() error {
	for _, known := range Roles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated party performing an operation, together with the
// restaurant, driver or customer profile their account is bound to.
type Actor struct {
	ID           UUID
	Role         Role
	RestaurantID *UUID
	DriverID     *UUID
	CustomerID   *UUID
}

// NewActor builds an actor without profile bindings.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// WithRestaurant binds a merchant actor to the restaurant it operates.
func (a Actor) WithRestaurant(id UUID) Actor {
	a.RestaurantID = id.Ptr()
	return a
}

// WithDriver binds a driver actor to its driver profile.
func (a Actor) WithDriver(id UUID) Actor {
	a.DriverID = id.Ptr()
	return a
}

// WithCustomer binds a customer actor to its customer profile.
func (a Actor) WithCustomer(id UUID) Actor {
	a.CustomerID = id.Ptr()
	return a
}

// OwnsRestaurant reports whether a merchant actor operates the given restaurant.
func (a Actor) OwnsRestaurant(id UUID) bool {
	return a.Role == RoleMerchant && a.RestaurantID != nil && a.RestaurantID.IsEqual(id)
}

// IsDriver reports whether a driver actor is the given driver.
func (a Actor) IsDriver(id *UUID) bool {
	return a.Role == RoleDriver && a.DriverID != nil && id != nil && a.DriverID.IsEqual(*id)
}

// IsCustomer reports whether a customer actor is the given customer.
func (a Actor) IsCustomer(id *UUID) bool {
	return a.Role == RoleCustomer && a.CustomerID != nil && id != nil && a.CustomerID.IsEqual(*id)
}
