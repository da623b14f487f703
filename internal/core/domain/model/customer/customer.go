package customer

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a person who received at least one coupon or placed an order.
// Email is the natural key: issuing a coupon to a known email reuses the customer.
type Customer struct {
	id        kernel.UUID
	name      string
	email     string
	phone     string
	createdAt time.Time

	isConstructed bool
}

func NewCustomer(name, email, phone string, now time.Time) (*Customer, error) {
	return build(kernel.NewUUID(), name, email, phone, now)
}

func RestoreCustomer(id kernel.UUID, name, email, phone string, createdAt time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return build(id, name, email, phone, createdAt)
}

func build(id kernel.UUID, name, email, phone string, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		id:            id,
		name:          strings.TrimSpace(name),
		phone:         strings.TrimSpace(phone),
		createdAt:     createdAt,
		isConstructed: true,
	}

	var errList []error
	if c.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		errList = append(errList, err)
	}
	c.email = normalized
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return c, nil
}

// NormalizeEmail lower-cases and validates an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return email, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// UpdateContact refreshes name and phone when the customer comes back with new
// details. Orders keep their own snapshot.
func (c *Customer) UpdateContact(name, phone string) {
	if name = strings.TrimSpace(name); name != "" {
		c.name = name
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		c.phone = phone
	}
}

func (c *Customer) ID() kernel.UUID      { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
