package commands

import (
	"errors"
	"strings"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/customer"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrSignUpCommandIsNotConstructed = errors.New(
	"SignUpCommand must be created via NewSignUpCommand constructor",
)

// SignUpCommand registers a customer account. Staff accounts are created with
// RegisterStaffCommand.
type SignUpCommand struct {
	email    string
	password string
	name     string
	phone    string

	guard guard.ConstructorGuard
}

func NewSignUpCommand(email, password, name, phone string) (SignUpCommand, error) {
	normalized, emailErr := customer.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(emailErr, account.ValidatePassword(password), nameErr); err != nil {
		return SignUpCommand{}, err
	}

	return SignUpCommand{
		email:    normalized,
		password: password,
		name:     name,
		phone:    strings.TrimSpace(phone),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SignUpCommand) Validate() error {
	return c.guard.Validate(ErrSignUpCommandIsNotConstructed)
}

func (c SignUpCommand) Email() string    { return c.email }
func (c SignUpCommand) Password() string { return c.password }
func (c SignUpCommand) Name() string     { return c.name }
func (c SignUpCommand) Phone() string    { return c.phone }
