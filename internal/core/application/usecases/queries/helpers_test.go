package queries_test

import (
	"testing"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
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

func newOffer(t *testing.T, name string) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(offer.Details{
		Name:               name,
		RestaurantName:     name,
		DiscountPercentage: 10,
		Category:           offer.CategoryRestaurant,
	}, now)
	require.NoError(t, err)
	return o
}

func newCustomer(t *testing.T, name, email string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(name, email, "+971500000000", now)
	require.NoError(t, err)
	return c
}

func newCoupon(t *testing.T, code string, holder *customer.Customer, restaurant *offer.Offer) *coupon.Coupon {
	t.Helper()
	c, err := coupon.NewCoupon(coupon.Code(code), holder.ID(), restaurant.ID(), now)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, restaurantID kernel.UUID, placedBy kernel.Actor, total string) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString(total)
	require.NoError(t, err)
	item, err := order.NewLineItem("Shawarma", price, 1)
	require.NoError(t, err)
	snapshot, err := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
	require.NoError(t, err)

	o, err := order.NewOrder(restaurantID, placedBy.CustomerID, snapshot, []order.LineItem{item}, order.Pricing{
		DeliveryFee: kernel.ZeroMoney(),
		TaxRate:     decimal.Zero,
	}, placedBy, now)
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, o *order.Order, merchant kernel.Actor, to ...order.Status) {
	t.Helper()
	for _, s := range to {
		require.NoError(t, o.Transition(merchant, s, now))
	}
}

func newDriver(t *testing.T, name, city, rating string, status driver.Status) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(driver.Snapshot{
		ID: kernel.NewUUID(), Name: name, Phone: "+971501", VehicleType: driver.Car, Status: status, City: city,
		RatingSum: int(decimal.RequireFromString(rating).Shift(1).IntPart()), RatingCount: 10,
	})
	require.NoError(t, err)
	return d
}
