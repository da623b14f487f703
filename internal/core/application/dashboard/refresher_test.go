package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"discount/internal/core/application/dashboard"
	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func expectSnapshot(source *MockSource, orders []*order.Order) {
	source.On("Offers", mock.Anything).Return([]*offer.Offer{}, nil)
	source.On("Customers", mock.Anything).Return([]queries.CustomerListItem{}, nil)
	source.On("Coupons", mock.Anything).Return([]*coupon.Coupon{}, nil)
	source.On("Orders", mock.Anything).Return(orders, nil)
}

func TestRefresher_Refresh(t *testing.T) {
	t.Run("should replace the snapshot", func(t *testing.T) {
		o := pendingOrder(t, kernel.NewUUID(), "20.00")
		source := new(MockSource)
		expectSnapshot(source, []*order.Order{o})
		store := dashboard.NewStore()

		err := dashboard.NewRefresher(source, store, zap.NewNop()).Refresh(t.Context())

		require.NoError(t, err)
		require.Len(t, store.Orders(), 1)
		assert.False(t, store.LoadedAt().IsZero())
	})

	t.Run("should load the store when every collection is empty", func(t *testing.T) {
		source := new(MockSource)
		for _, method := range []string{"Offers", "Customers", "Coupons", "Orders"} {
			source.On(method, mock.Anything).Return(nil, nil).Once()
		}
		store := dashboard.NewStore()

		err := dashboard.NewRefresher(source, store, zap.NewNop()).Refresh(t.Context())

		require.NoError(t, err)
		assert.Empty(t, store.Orders())
		assert.False(t, store.LoadedAt().IsZero())
		source.AssertExpectations(t)
	})

	t.Run("should keep the previous snapshot when a fetch fails", func(t *testing.T) {
		o := pendingOrder(t, kernel.NewUUID(), "20.00")
		store := dashboard.NewStore()
		store.ReplaceAll(dashboard.Snapshot{Orders: []*order.Order{o}}, now)

		source := new(MockSource)
		source.On("Offers", mock.Anything).Return(nil, errors.New("connection refused"))
		source.On("Customers", mock.Anything).Return([]queries.CustomerListItem{}, nil).Maybe()
		source.On("Coupons", mock.Anything).Return([]*coupon.Coupon{}, nil).Maybe()
		source.On("Orders", mock.Anything).Return([]*order.Order{}, nil).Maybe()

		err := dashboard.NewRefresher(source, store, zap.NewNop()).Refresh(t.Context())

		require.ErrorContains(t, err, "connection refused")
		assert.Len(t, store.Orders(), 1)
		assert.Equal(t, now, store.LoadedAt())
	})
}

func TestRefresher_Watch(t *testing.T) {
	t.Run("should refresh after a resync", func(t *testing.T) {
		source := new(MockSource)
		expectSnapshot(source, []*order.Order{})
		changes := make(chan ports.Change, 1)
		changes <- ports.Change{Op: ports.ChangeResync}
		close(changes)

		err := dashboard.NewRefresher(source, dashboard.NewStore(), zap.NewNop()).
			Watch(t.Context(), channelFeed{changes: changes})

		require.NoError(t, err)
		source.AssertNumberOfCalls(t, "Orders", 2)
	})

	t.Run("should refresh on start and on relevant changes only", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		source := new(MockSource)
		expectSnapshot(source, []*order.Order{})
		feed := channelFeed{changes: make(chan ports.Change)}
		refresher := dashboard.NewRefresher(source, dashboard.NewStore(), zap.NewNop())

		done := make(chan error, 1)
		go func() { done <- refresher.Watch(ctx, feed) }()

		feed.changes <- ports.Change{Table: "accounts", Op: ports.ChangeInsert}
		feed.changes <- ports.Change{Table: "orders", Op: ports.ChangeUpdate}
		close(feed.changes)

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop after the feed closed")
		}

		source.AssertNumberOfCalls(t, "Orders", 2)
	})

	t.Run("should stop when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		source := new(MockSource)
		expectSnapshot(source, []*order.Order{})
		refresher := dashboard.NewRefresher(source, dashboard.NewStore(), zap.NewNop())

		done := make(chan error, 1)
		go func() { done <- refresher.Watch(ctx, channelFeed{changes: make(chan ports.Change)}) }()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop")
		}
	})
}
