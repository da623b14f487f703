package account

import (
	"errors"
	"fmt"
	"time"

	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

// bcrypt ignores input past 72 bytes.
const (
	minPasswordLen = 8
	maxPasswordLen = 72
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

// Account is a login. Merchant, driver and customer accounts are bound to the profile
// they act for; dispatcher and admin accounts are not.
type Account struct {
	id           kernel.UUID
	email        string
	passwordHash string
	role         kernel.Role
	restaurantID *kernel.UUID
	driverID     *kernel.UUID
	customerID   *kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// Binding names the profile an account acts for.
type Binding struct {
	RestaurantID *kernel.UUID
	DriverID     *kernel.UUID
	CustomerID   *kernel.UUID
}

// NewAccount validates the role/binding combination. passwordHash is produced by a
// PasswordHasher; the domain never sees plain passwords after sign-up validation.
func NewAccount(email, passwordHash string, role kernel.Role, binding Binding, now time.Time) (*Account, error) {
	return build(kernel.NewUUID(), email, passwordHash, role, binding, now)
}

func RestoreAccount(
	id kernel.UUID,
	email, passwordHash string,
	role kernel.Role,
	binding Binding,
	createdAt time.Time,
) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return build(id, email, passwordHash, role, binding, createdAt)
}

func build(id kernel.UUID, email, passwordHash string, role kernel.Role, b Binding, createdAt time.Time) (*Account, error) {
	normalized, emailErr := customer.NormalizeEmail(email)
	var hashErr error
	if passwordHash == "" {
		hashErr = errs.NewValueIsRequiredError("password hash")
	}
	if err := errors.Join(emailErr, hashErr, role.Validate(), validateBinding(role, b)); err != nil {
		return nil, err
	}

	return &Account{
		id:            id,
		email:         normalized,
		passwordHash:  passwordHash,
		role:          role,
		restaurantID:  b.RestaurantID,
		driverID:      b.DriverID,
		customerID:    b.CustomerID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func validateBinding(role kernel.Role, b Binding) error {
	required := map[kernel.Role]*kernel.UUID{
		kernel.RoleMerchant: b.RestaurantID,
		kernel.RoleDriver:   b.DriverID,
	}
	if ref, ok := required[role]; ok && ref == nil {
		return errs.NewValueIsRequiredErrorWithCause("profile", fmt.Errorf("%s account must be bound to a profile", role))
	}
	if role != kernel.RoleMerchant && b.RestaurantID != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurant", fmt.Errorf("%s account cannot own a restaurant", role))
	}
	if role != kernel.RoleDriver && b.DriverID != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("%s account cannot be a driver", role))
	}
	return nil
}

func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) ID() kernel.UUID            { return a.id }
func (a *Account) Email() string              { return a.email }
func (a *Account) PasswordHash() string       { return a.passwordHash }
func (a *Account) Role() kernel.Role          { return a.role }
func (a *Account) RestaurantID() *kernel.UUID { return a.restaurantID }
func (a *Account) DriverID() *kernel.UUID     { return a.driverID }
func (a *Account) CustomerID() *kernel.UUID   { return a.customerID }
func (a *Account) CreatedAt() time.Time       { return a.createdAt }

// Actor returns the identity operations run under.
func (a *Account) Actor() kernel.Actor {
	actor := kernel.Actor{ID: a.id, Role: a.role}
	if a.restaurantID != nil {
		actor = actor.WithRestaurant(*a.restaurantID)
	}
	if a.driverID != nil {
		actor = actor.WithDriver(*a.driverID)
	}
	if a.customerID != nil {
		actor = actor.WithCustomer(*a.customerID)
	}
	return actor
}

// ValidatePassword enforces the sign-up password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return errs.NewValueIsOutOfRangeError("password length", len(password), minPasswordLen, maxPasswordLen)
	}
	return nil
}
