package order_test

import (
	"testing"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type actors struct {
	restaurantID kernel.UUID
	driverID     kernel.UUID
	merchant     kernel.Actor
	otherShop    kernel.Actor
	dispatcher   kernel.Actor
	driver       kernel.Actor
	otherDriver  kernel.Actor
	admin        kernel.Actor
	customer     kernel.Actor
}

func newActors(t *testing.T) actors {
	t.Helper()

	mk := func(role kernel.Role) kernel.Actor {
		a, err := kernel.NewActor(kernel.NewUUID(), role)
		require.NoError(t, err)
		return a
	}

	a := actors{restaurantID: kernel.NewUUID(), driverID: kernel.NewUUID()}
	a.merchant = mk(kernel.RoleMerchant).WithRestaurant(a.restaurantID)
	a.otherShop = mk(kernel.RoleMerchant).WithRestaurant(kernel.NewUUID())
	a.dispatcher = mk(kernel.RoleDispatcher)
	a.driver = mk(kernel.RoleDriver).WithDriver(a.driverID)
	a.otherDriver = mk(kernel.RoleDriver).WithDriver(kernel.NewUUID())
	a.admin = mk(kernel.RoleAdmin)
	a.customer = mk(kernel.RoleCustomer).WithCustomer(kernel.NewUUID())
	return a
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func defaultPricing(t *testing.T) order.Pricing {
	return order.Pricing{
		DiscountPercentage: decimal.NewFromInt(10),
		DeliveryFee:        money(t, "10.00"),
		TaxRate:            decimal.RequireFromString("0.10"),
	}
}

func sampleItems(t *testing.T) []order.LineItem {
	t.Helper()
	burger, err := order.NewLineItem("Burger", money(t, "25.00"), 2)
	require.NoError(t, err)
	fries, err := order.NewLineItem("Fries", money(t, "15.00"), 1)
	require.NoError(t, err)
	return []order.LineItem{burger, fries}
}

func newTestOrder(t *testing.T, a actors) *order.Order {
	t.Helper()
	snapshot, err := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
	require.NoError(t, err)

	o, err := order.NewOrder(a.restaurantID, a.customer.CustomerID, snapshot, sampleItems(t), defaultPricing(t), a.customer, now)
	require.NoError(t, err)
	return o
}

// advance walks o through the happy path up to and including target.
func advance(t *testing.T, a actors, o *order.Order, target order.Status) {
	t.Helper()
	steps := []struct {
		to    order.Status
		actor kernel.Actor
	}{
		{order.Confirmed, a.merchant},
		{order.Preparing, a.merchant},
		{order.ReadyForPickup, a.merchant},
		{order.AssignedToDriver, a.driver},
		{order.PickedUp, a.driver},
		{order.InTransit, a.driver},
		{order.Delivered, a.driver},
	}
	for _, step := range steps {
		if o.Status() == target {
			return
		}
		require.NoError(t, o.Transition(step.actor, step.to, now))
	}
}

func TestNewOrder(t *testing.T) {
	a := newActors(t)

	t.Run("should create pending order with computed totals", func(t *testing.T) {
		o := newTestOrder(t, a)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.PendingRestaurantAcceptance, o.Status())
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.DeliveredAt())
		assert.True(t, o.RestaurantID().IsEqual(a.restaurantID))
		assert.Equal(t, "65.00", o.Totals().Subtotal.String())
		assert.Equal(t, "6.50", o.Totals().Discount.String())
		assert.Equal(t, "5.85", o.Totals().Tax.String())
		assert.Equal(t, "74.35", o.Totals().Total.String())
		assert.Regexp(t, `^ORD-261015-[A-Z0-9]{5}$`, o.Number().String())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Unknown, history[0].From)
		assert.Equal(t, order.PendingRestaurantAcceptance, history[0].To)
		assert.Equal(t, kernel.RoleCustomer, history[0].ActorRole)
	})

	t.Run("should accept guest orders", func(t *testing.T) {
		snapshot, err := order.NewCustomerSnapshot("Guest", "123", "Somewhere")
		require.NoError(t, err)

		o, err := order.NewOrder(a.restaurantID, nil, snapshot, sampleItems(t), defaultPricing(t), a.customer, now)

		require.NoError(t, err)
		assert.Nil(t, o.CustomerID())
	})

	t.Run("should fail without items", func(t *testing.T) {
		snapshot, _ := order.NewCustomerSnapshot("Sara", "1", "x")

		o, err := order.NewOrder(a.restaurantID, nil, snapshot, nil, defaultPricing(t), a.customer, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should fail with unconstructed snapshot and restaurant", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, nil, order.CustomerSnapshot{}, sampleItems(t), defaultPricing(t), a.customer, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "CustomerSnapshot must be created")
	})
}

func TestOrder_HappyPath(t *testing.T) {
	a := newActors(t)
	o := newTestOrder(t, a)

	require.NoError(t, o.Transition(a.merchant, order.Confirmed, now))
	assert.Equal(t, order.MilestoneConfirmed, o.Progress().Step)

	require.NoError(t, o.Transition(a.merchant, order.Preparing, now))
	require.NoError(t, o.Transition(a.merchant, order.ReadyForPickup, now))
	require.NoError(t, o.AssignDriver(a.dispatcher, a.driverID, now))
	assert.True(t, o.DriverID().IsEqual(a.driverID))
	assert.Equal(t, order.MilestonePreparing, o.Progress().Step)

	require.NoError(t, o.Transition(a.driver, order.PickedUp, now))
	require.NoError(t, o.Transition(a.driver, order.InTransit, now))
	assert.Equal(t, order.MilestoneOnTheWay, o.Progress().Step)
	assert.Nil(t, o.DeliveredAt())

	deliveredAt := now.Add(30 * time.Minute)
	require.NoError(t, o.Transition(a.driver, order.Delivered, deliveredAt))

	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, deliveredAt, *o.DeliveredAt())
	assert.Equal(t, order.MilestoneDelivered, o.Progress().Step)
	assert.Len(t, o.History(), 8)
}

func TestOrder_Transition(t *testing.T) {
	t.Run("should reject skipping states without changing anything", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)

		err := o.Transition(a.driver, order.InTransit, now)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, order.PendingRestaurantAcceptance, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("should reject unauthorized role as forbidden", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)

		err := o.Transition(a.dispatcher, order.Confirmed, now)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Equal(t, order.PendingRestaurantAcceptance, o.Status())
	})

	t.Run("should reject merchant of another restaurant", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)

		err := o.Transition(a.otherShop, order.Confirmed, now)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Equal(t, order.PendingRestaurantAcceptance, o.Status())
	})

	t.Run("should reject a driver who is not assigned", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.AssignedToDriver)

		err := o.Transition(a.otherDriver, order.PickedUp, now)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Equal(t, order.AssignedToDriver, o.Status())
	})

	t.Run("should reject repeating an applied transition", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.Delivered)
		deliveredAt := *o.DeliveredAt()

		err := o.Transition(a.driver, order.Delivered, now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.Len(t, o.History(), 8)
	})

	t.Run("should let the merchant reject a pending order", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)

		require.NoError(t, o.Perform(a.merchant, order.ActionReject, now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.True(t, o.Progress().Cancelled)
	})

	t.Run("should let admin cancel any non-terminal order", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.InTransit)

		require.NoError(t, o.Transition(a.admin, order.Cancelled, now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should reject cancelling terminal orders", func(t *testing.T) {
		a := newActors(t)
		delivered := newTestOrder(t, a)
		advance(t, a, delivered, order.Delivered)
		cancelled := newTestOrder(t, a)
		require.NoError(t, cancelled.Transition(a.admin, order.Cancelled, now))

		require.ErrorIs(t, delivered.Transition(a.admin, order.Cancelled, now), errs.ErrStateConflict)
		require.ErrorIs(t, cancelled.Transition(a.admin, order.Cancelled, now), errs.ErrStateConflict)
	})

	t.Run("should require a driver when a dispatcher transitions directly", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.ReadyForPickup)

		err := o.Transition(a.dispatcher, order.AssignedToDriver, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.ReadyForPickup, o.Status())
		assert.Nil(t, o.DriverID())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("should let a driver accept a ready order for themselves", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.ReadyForPickup)

		require.NoError(t, o.Perform(a.driver, order.ActionAcceptDelivery, now))

		assert.Equal(t, order.AssignedToDriver, o.Status())
		assert.True(t, o.DriverID().IsEqual(a.driverID))
	})

	t.Run("should forbid a driver assigning someone else", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.ReadyForPickup)

		err := o.AssignDriver(a.otherDriver, a.driverID, now)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Nil(t, o.DriverID())
	})

	t.Run("should conflict when the order is not ready", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)

		err := o.AssignDriver(a.dispatcher, a.driverID, now)

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("should conflict on a second assignment", func(t *testing.T) {
		a := newActors(t)
		o := newTestOrder(t, a)
		advance(t, a, o, order.AssignedToDriver)

		err := o.AssignDriver(a.dispatcher, kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.True(t, o.DriverID().IsEqual(a.driverID))
	})
}

func TestRestoreOrder(t *testing.T) {
	a := newActors(t)
	o := newTestOrder(t, a)
	advance(t, a, o, order.Delivered)

	base := order.Snapshot{
		ID:           o.ID(),
		Number:       o.Number(),
		RestaurantID: o.RestaurantID(),
		CustomerID:   o.CustomerID(),
		Customer:     o.Customer(),
		Items:        o.Items(),
		Totals:       o.Totals(),
		DriverID:     o.DriverID(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		DeliveredAt:  o.DeliveredAt(),
		History:      o.History(),
	}

	t.Run("should restore a consistent snapshot", func(t *testing.T) {
		restored, err := order.RestoreOrder(base)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Len(t, restored.History(), len(o.History()))
	})

	t.Run("should reject delivered without delivered at", func(t *testing.T) {
		s := base
		s.DeliveredAt = nil

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject in transit without driver", func(t *testing.T) {
		s := base
		s.Status = order.InTransit
		s.DeliveredAt = nil
		s.DriverID = nil

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "to have no driver")
	})

	t.Run("should reject malformed number", func(t *testing.T) {
		s := base
		s.Number = "12345"

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}
