package commands

import (
	"errors"

	"discount/internal/core/domain/model/customer"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var (
	ErrSignInCommandIsNotConstructed = errors.New(
		"SignInCommand must be created via NewSignInCommand constructor",
	)
	ErrSignOutCommandIsNotConstructed = errors.New(
		"SignOutCommand must be created via NewSignOutCommand constructor",
	)
)

// SignInCommand exchanges credentials for a session token.
type SignInCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewSignInCommand(email, password string) (SignInCommand, error) {
	normalized, err := customer.NormalizeEmail(email)
	if err != nil {
		return SignInCommand{}, err
	}
	if password == "" {
		return SignInCommand{}, errs.NewValueIsRequiredError("password")
	}
	return SignInCommand{email: normalized, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c SignInCommand) Validate() error {
	return c.guard.Validate(ErrSignInCommandIsNotConstructed)
}

func (c SignInCommand) Email() string    { return c.email }
func (c SignInCommand) Password() string { return c.password }

// SignOutCommand revokes the session it was built from.
type SignOutCommand struct {
	session ports.Session

	guard guard.ConstructorGuard
}

func NewSignOutCommand(session ports.Session) (SignOutCommand, error) {
	if session.ID == "" {
		return SignOutCommand{}, errs.NewValueIsRequiredError("session id")
	}
	return SignOutCommand{session: session, guard: guard.NewConstructorGuard()}, nil
}

func (c SignOutCommand) Validate() error {
	return c.guard.Validate(ErrSignOutCommandIsNotConstructed)
}

func (c SignOutCommand) Session() ports.Session { return c.session }
