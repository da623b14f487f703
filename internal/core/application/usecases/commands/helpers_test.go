package commands_test

import (
	"testing"
	"time"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
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

func customerActor(t *testing.T) kernel.Actor {
	return actor(t, kernel.RoleCustomer).WithCustomer(kernel.NewUUID())
}

func merchantOf(t *testing.T, restaurantID kernel.UUID) kernel.Actor {
	return actor(t, kernel.RoleMerchant).WithRestaurant(restaurantID)
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func pricing(t *testing.T) commands.PricingConfig {
	return commands.PricingConfig{
		DeliveryFee: money(t, "10.00"),
		TaxRate:     decimal.RequireFromString("0.10"),
	}
}

func newOffer(t *testing.T, name string, discount int) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(offer.Details{
		Name:               name,
		RestaurantName:     name,
		OfferName:          "House deal",
		DiscountPercentage: discount,
		Category:           offer.CategoryRestaurant,
	}, now)
	require.NoError(t, err)
	return o
}

func snapshot(t *testing.T) order.CustomerSnapshot {
	t.Helper()
	s, err := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
	require.NoError(t, err)
	return s
}

func items(t *testing.T) []order.LineItem {
	t.Helper()
	burger, err := order.NewLineItem("Burger", money(t, "25.00"), 2)
	require.NoError(t, err)
	fries, err := order.NewLineItem("Fries", money(t, "15.00"), 1)
	require.NoError(t, err)
	return []order.LineItem{burger, fries}
}

func placedOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	c := customerActor(t)
	o, err := order.NewOrder(restaurantID, c.CustomerID, snapshot(t), items(t), order.Pricing{
		DeliveryFee: money(t, "10.00"),
		TaxRate:     decimal.RequireFromString("0.10"),
	}, c, now)
	require.NoError(t, err)
	return o
}

func orderAt(t *testing.T, merchant kernel.Actor, status order.Status) *order.Order {
	t.Helper()
	o := placedOrder(t, *merchant.RestaurantID)
	for _, to := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		if o.Status() == status {
			break
		}
		require.NoError(t, o.Transition(merchant, to, now))
	}
	require.Equal(t, status, o.Status())
	return o
}

func newDriver(t *testing.T, status driver.Status) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(driver.Snapshot{
		ID: kernel.NewUUID(), Name: "Omar", Phone: "+971501", VehicleType: driver.Motorcycle, Status: status,
		City: "Dubai", RatingSum: 9, RatingCount: 2, TotalDeliveries: 10,
	})
	require.NoError(t, err)
	return d
}
