package order

import (
	"errors"
	"fmt"
	"strings"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var (
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
	ErrCustomerIsNotConstructed = errors.New("CustomerSnapshot must be created via NewCustomerSnapshot constructor")
)

// LineItem is one immutable row of an order: what was ordered, at which unit price,
// and how many.
type LineItem struct { //nolint:recvcheck // Validate on value receiver
	name      string
	unitPrice kernel.Money
	quantity  int
	guard     guard.ConstructorGuard
}

// NewLineItem validates and builds a line item. Quantity must be positive.
func NewLineItem(name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{
		name:      strings.TrimSpace(name),
		unitPrice: unitPrice,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}

	var nameErr, priceErr, qtyErr error
	if item.name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	priceErr = unitPrice.Validate()
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(nameErr, priceErr, qtyErr); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// LineTotal is unit price times quantity.
func (i LineItem) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

// CustomerSnapshot captures the customer's contact details at order time. It never
// changes afterwards, even when the customer's profile does.
type CustomerSnapshot struct { //nolint:recvcheck // Validate on value receiver
	name    string
	phone   string
	address string
	guard   guard.ConstructorGuard
}

// NewCustomerSnapshot requires all three fields.
func NewCustomerSnapshot(name, phone, address string) (CustomerSnapshot, error) {
	s := CustomerSnapshot{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if s.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if s.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer phone"))
	}
	if s.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer address"))
	}
	if err := errors.Join(errList...); err != nil {
		return CustomerSnapshot{}, err
	}

	return s, nil
}

func (s CustomerSnapshot) Validate() error {
	return s.guard.Validate(ErrCustomerIsNotConstructed)
}

func (s CustomerSnapshot) Name() string {
	return s.name
}

func (s CustomerSnapshot) Phone() string {
	return s.phone
}

func (s CustomerSnapshot) Address() string {
	return s.address
}

// FirstName is what public tracking pages show instead of the full snapshot.
func (s CustomerSnapshot) FirstName() string {
	if fields := strings.Fields(s.name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
