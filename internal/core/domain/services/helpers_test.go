package services_test

import (
	"testing"
	"time"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, restaurantID kernel.UUID, customer kernel.Actor) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString("20.00")
	require.NoError(t, err)
	item, err := order.NewLineItem("Shawarma", price, 1)
	require.NoError(t, err)
	snapshot, err := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
	require.NoError(t, err)

	o, err := order.NewOrder(restaurantID, customer.CustomerID, snapshot, []order.LineItem{item}, order.Pricing{
		DeliveryFee: kernel.ZeroMoney(),
		TaxRate:     decimal.Zero,
	}, customer, now)
	require.NoError(t, err)
	return o
}

func readyOrder(t *testing.T, merchant, customer kernel.Actor) *order.Order {
	t.Helper()
	o := newOrder(t, *merchant.RestaurantID, customer)
	for _, to := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		require.NoError(t, o.Transition(merchant, to, now))
	}
	return o
}

func newDriver(t *testing.T, name, city string, rating string, deliveries int, status driver.Status) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(driver.Snapshot{
		ID: kernel.NewUUID(), Name: name, Phone: "+971", VehicleType: driver.Scooter, Status: status, City: city,
		RatingSum: int(decimal.RequireFromString(rating).Shift(1).IntPart()), RatingCount: 10, TotalDeliveries: deliveries,
	})
	require.NoError(t, err)
	return d
}
