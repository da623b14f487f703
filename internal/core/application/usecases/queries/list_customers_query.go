package queries

import (
	"errors"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/guard"
)

var ErrListCustomersQueryIsNotConstructed = errors.New(
	"ListCustomersQuery must be created via NewListCustomersQuery constructor",
)

// ListCustomersQuery lists every customer with their coupon counts. Admin only.
type ListCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCustomersQuery(actor kernel.Actor) (ListCustomersQuery, error) {
	if err := services.RequireCapability(actor, services.CapListCustomers, "list customers"); err != nil {
		return ListCustomersQuery{}, err
	}
	return ListCustomersQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomersQueryIsNotConstructed)
}

// CustomerListItem is one row of the customer listing.
type CustomerListItem struct {
	ID           kernel.UUID
	Name         string
	Email        string
	Phone        string
	CreatedAt    time.Time
	CouponsTotal int
	CouponsUsed  int
}
