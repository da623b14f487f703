package commands

import (
	"errors"
	"strings"

	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrIssueCouponCommandIsNotConstructed = errors.New(
	"IssueCouponCommand must be created via NewIssueCouponCommand constructor",
)

// IssueCouponCommand gives a customer, identified by email, a coupon for an offer.
type IssueCouponCommand struct {
	name    string
	email   string
	phone   string
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewIssueCouponCommand(name, email, phone string, offerID kernel.UUID) (IssueCouponCommand, error) {
	cmd := IssueCouponCommand{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}

	var nameErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	normalized, emailErr := customer.NormalizeEmail(email)
	if err := errors.Join(nameErr, emailErr, offerID.Validate()); err != nil {
		return IssueCouponCommand{}, err
	}
	cmd.email = normalized

	return cmd, nil
}

func (c IssueCouponCommand) Validate() error {
	return c.guard.Validate(ErrIssueCouponCommandIsNotConstructed)
}

func (c IssueCouponCommand) Name() string         { return c.name }
func (c IssueCouponCommand) Email() string        { return c.email }
func (c IssueCouponCommand) Phone() string        { return c.phone }
func (c IssueCouponCommand) OfferID() kernel.UUID { return c.offerID }
