package dashboard_test

import (
	"testing"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func merchantOf(t *testing.T, restaurantID kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleMerchant)
	require.NoError(t, err)
	return a.WithRestaurant(restaurantID)
}

func pendingOrder(t *testing.T, restaurantID kernel.UUID, total string) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString(total)
	require.NoError(t, err)
	item, err := order.NewLineItem("Falafel", price, 1)
	require.NoError(t, err)
	snapshot, err := order.NewCustomerSnapshot("Sara Ali", "+971500000000", "Marina 12")
	require.NoError(t, err)
	placedBy, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)

	o, err := order.NewOrder(restaurantID, nil, snapshot, []order.LineItem{item}, order.Pricing{
		DeliveryFee: kernel.ZeroMoney(),
		TaxRate:     decimal.Zero,
	}, placedBy, now)
	require.NoError(t, err)
	return o
}

// restoredAs rebuilds o under the given status, as the backend would answer for it.
func restoredAs(t *testing.T, o *order.Order, status order.Status) *order.Order {
	t.Helper()
	restored, err := order.RestoreOrder(order.Snapshot{
		ID:           o.ID(),
		Number:       o.Number(),
		RestaurantID: o.RestaurantID(),
		CustomerID:   o.CustomerID(),
		Customer:     o.Customer(),
		Items:        o.Items(),
		Totals:       o.Totals(),
		Status:       status,
		CreatedAt:    o.CreatedAt(),
		History:      o.History(),
	})
	require.NoError(t, err)
	return restored
}

func deliveredOrder(t *testing.T, restaurantID kernel.UUID, total string, at time.Time) *order.Order {
	t.Helper()
	o := pendingOrder(t, restaurantID, total)
	merchant := merchantOf(t, restaurantID)
	for _, s := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		require.NoError(t, o.Transition(merchant, s, at))
	}

	driver, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDriver)
	require.NoError(t, err)
	driver = driver.WithDriver(kernel.NewUUID())
	for _, s := range []order.Status{order.AssignedToDriver, order.PickedUp, order.InTransit, order.Delivered} {
		require.NoError(t, o.Transition(driver, s, at))
	}
	return o
}

func issuedCoupon(t *testing.T, code string, restaurantID kernel.UUID, used bool) *coupon.Coupon {
	t.Helper()
	c, err := coupon.NewCoupon(coupon.Code(code), kernel.NewUUID(), restaurantID, now)
	require.NoError(t, err)
	if used {
		require.NoError(t, c.Redeem(restaurantID, now))
	}
	return c
}
