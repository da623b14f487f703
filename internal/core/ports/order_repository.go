// Package ports defines the contracts between the core and its adapters: repositories,
// the unit of work, the change feed, idempotency keys and authentication.
package ports

import (
	"context"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
)

// OrderFilter narrows order listings. Nil fields do not filter.
type OrderFilter struct {
	Status       *order.Status
	RestaurantID *kernel.UUID
	DriverID     *kernel.UUID
	CustomerID   *kernel.UUID
	// Unassigned keeps only orders without a driver.
	Unassigned bool
	Limit      int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items and first history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists a status change as a check-and-set: the row is only
	// updated while its stored status still equals expected. Zero affected rows is a
	// StateConflictError. New history entries are appended in the same call.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber looks an order up by its public tracking number.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// Find lists orders newest first.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
