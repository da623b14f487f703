package commands

import (
	"errors"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrRegisterStaffCommandIsNotConstructed = errors.New(
	"RegisterStaffCommand must be created via NewRegisterStaffCommand constructor",
)

// DriverProfile describes the driver created together with a driver account.
type DriverProfile struct {
	Name        string
	Phone       string
	VehicleType string
	City        string
}

// RegisterStaffCommand lets an admin create merchant, dispatcher, driver and admin
// accounts. A merchant is bound to an existing restaurant; a driver account gets a
// new driver profile.
type RegisterStaffCommand struct {
	email        string
	password     string
	role         kernel.Role
	restaurantID *kernel.UUID
	driver       *DriverProfile

	guard guard.ConstructorGuard
}

func NewRegisterStaffCommand(
	actor kernel.Actor,
	email, password string,
	role kernel.Role,
	restaurantID *kernel.UUID,
	profile *DriverProfile,
) (RegisterStaffCommand, error) {
	if actor.Role != kernel.RoleAdmin {
		return RegisterStaffCommand{}, errs.NewActionIsForbiddenError("register staff", actor.Role.String())
	}

	normalized, emailErr := customer.NormalizeEmail(email)
	roleErr := role.Validate()
	if roleErr == nil && role == kernel.RoleCustomer {
		roleErr = errs.NewValueIsInvalidError("role")
	}

	var bindingErr error
	switch {
	case role == kernel.RoleMerchant && restaurantID == nil:
		bindingErr = errs.NewValueIsRequiredError("restaurant id")
	case role != kernel.RoleMerchant && restaurantID != nil:
		bindingErr = errs.NewValueIsInvalidError("restaurant id")
	case role == kernel.RoleDriver && profile == nil:
		bindingErr = errs.NewValueIsRequiredError("driver profile")
	case role != kernel.RoleDriver && profile != nil:
		bindingErr = errs.NewValueIsInvalidError("driver profile")
	case profile != nil:
		_, bindingErr = driver.ParseVehicleType(profile.VehicleType)
	}

	if err := errors.Join(emailErr, account.ValidatePassword(password), roleErr, bindingErr); err != nil {
		return RegisterStaffCommand{}, err
	}

	return RegisterStaffCommand{
		email:        normalized,
		password:     password,
		role:         role,
		restaurantID: restaurantID,
		driver:       profile,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterStaffCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStaffCommandIsNotConstructed)
}

func (c RegisterStaffCommand) Email() string              { return c.email }
func (c RegisterStaffCommand) Password() string           { return c.password }
func (c RegisterStaffCommand) Role() kernel.Role          { return c.role }
func (c RegisterStaffCommand) RestaurantID() *kernel.UUID { return c.restaurantID }
func (c RegisterStaffCommand) Driver() *DriverProfile     { return c.driver }
