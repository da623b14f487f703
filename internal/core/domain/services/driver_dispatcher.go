package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
)

// ErrDriverNotFound is returned when no available driver can take an order.
var ErrDriverNotFound = errors.New("driver not found")

// DriverDispatcher matches ready orders with drivers and keeps the driver's
// availability in step with the order lifecycle.
//
// Business rules:
//   - Only available drivers are assigned; assignment makes them busy
//   - Suggestions rank drivers in the order's city first, then by rating, then by
//     experience
//   - Delivering frees the driver and counts the delivery; cancelling frees the driver
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Assign gives o to d on behalf of actor (a dispatcher, or d themselves accepting the
// delivery). Neither entity changes on error.
func (DriverDispatcher) Assign(actor kernel.Actor, o *order.Order, d *driver.Driver, now time.Time) error {
	if err := errors.Join(o.Validate(), d.Validate()); err != nil {
		return err
	}
	if !d.IsAvailable() {
		return driver.ErrDriverIsNotAvailable
	}
	if err := o.AssignDriver(actor, d.ID(), now); err != nil {
		return err
	}
	return d.TakeOrder()
}

// Dispatch assigns o to the best suggested driver.
func (s DriverDispatcher) Dispatch(
	actor kernel.Actor,
	o *order.Order,
	drivers []*driver.Driver,
	city string,
	now time.Time,
) (*driver.Driver, error) {
	candidates, err := s.Suggest(drivers, city)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrDriverNotFound
	}

	best := candidates[0]
	if err = s.Assign(actor, o, best, now); err != nil {
		return nil, err
	}
	return best, nil
}

// Suggest returns the available drivers ordered from best to worst match.
func (DriverDispatcher) Suggest(drivers []*driver.Driver, city string) ([]*driver.Driver, error) {
	var out []*driver.Driver
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.IsAvailable() {
			out = append(out, d)
		}
	}

	city = strings.TrimSpace(city)
	slices.SortStableFunc(out, func(a, b *driver.Driver) int {
		if city != "" {
			aLocal, bLocal := a.IsInCity(city), b.IsInCity(city)
			if aLocal != bLocal {
				if aLocal {
					return -1
				}
				return 1
			}
		}
		if c := b.Rating().Cmp(a.Rating()); c != 0 {
			return c
		}
		return b.TotalDeliveries() - a.TotalDeliveries()
	})

	return out, nil
}

// Settle applies the driver side effects of the order's latest status. d is the
// order's assigned driver, nil when there is none.
func (DriverDispatcher) Settle(o *order.Order, d *driver.Driver) error {
	if d == nil {
		return nil
	}
	if !kernel.SameRef(o.DriverID(), d.ID().Ptr()) {
		return errors.New("driver is not assigned to the order")
	}

	switch o.Status() {
	case order.Delivered:
		return d.CompleteDelivery()
	case order.Cancelled:
		d.Release()
	default:
	}
	return nil
}
