package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"discount/internal/core/application/dashboard"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOptimisticTransitioner_Transition(t *testing.T) {
	restaurantID := kernel.NewUUID()
	merchant := merchantOf(t, restaurantID)

	t.Run("should show the target while the backend works and confirm its answer", func(t *testing.T) {
		o := pendingOrder(t, restaurantID, "20.00")
		store := dashboard.NewStore()
		store.ReplaceAll(dashboard.Snapshot{Orders: []*order.Order{o}}, now)

		confirmed := restoredAs(t, o, order.Confirmed)
		backend := new(MockStatusChanger)
		backend.On("ChangeStatus", mock.Anything, merchant, o.ID(), order.Confirmed).
			Run(func(mock.Arguments) {
				entry, _ := store.Order(o.ID())
				assert.Equal(t, order.Confirmed, entry.Status)
				assert.True(t, entry.Pending)
			}).
			Return(confirmed, nil).Once()

		got, err := dashboard.NewOptimisticTransitioner(store, backend, time.Second).
			Transition(t.Context(), merchant, o.ID(), order.Confirmed)

		require.NoError(t, err)
		assert.Same(t, confirmed, got)
		entry, _ := store.Order(o.ID())
		assert.Equal(t, order.Confirmed, entry.Status)
		assert.False(t, entry.Pending)
	})

	t.Run("should roll back and return the error on rejection", func(t *testing.T) {
		o := pendingOrder(t, restaurantID, "20.00")
		store := dashboard.NewStore()
		store.ReplaceAll(dashboard.Snapshot{Orders: []*order.Order{o}}, now)

		backend := new(MockStatusChanger)
		backend.On("ChangeStatus", mock.Anything, merchant, o.ID(), order.Delivered).
			Return(nil, errs.NewStateConflictError("order", "cannot move")).Once()

		_, err := dashboard.NewOptimisticTransitioner(store, backend, time.Second).
			Transition(t.Context(), merchant, o.ID(), order.Delivered)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		entry, _ := store.Order(o.ID())
		assert.Equal(t, order.PendingRestaurantAcceptance, entry.Status)
		assert.False(t, entry.Pending)
	})

	t.Run("should roll back when the backend times out", func(t *testing.T) {
		o := pendingOrder(t, restaurantID, "20.00")
		store := dashboard.NewStore()
		store.ReplaceAll(dashboard.Snapshot{Orders: []*order.Order{o}}, now)

		backend := new(MockStatusChanger)
		backend.On("ChangeStatus", mock.Anything, merchant, o.ID(), order.Confirmed).
			Return(nil, context.DeadlineExceeded).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).Once()

		_, err := dashboard.NewOptimisticTransitioner(store, backend, 10*time.Millisecond).
			Transition(t.Context(), merchant, o.ID(), order.Confirmed)

		require.True(t, errors.Is(err, context.DeadlineExceeded))
		entry, _ := store.Order(o.ID())
		assert.False(t, entry.Pending)
	})

	t.Run("should still call the backend for orders outside the snapshot", func(t *testing.T) {
		o := pendingOrder(t, restaurantID, "20.00")
		store := dashboard.NewStore()
		backend := new(MockStatusChanger)
		backend.On("ChangeStatus", mock.Anything, merchant, o.ID(), order.Confirmed).Return(o, nil).Once()

		_, err := dashboard.NewOptimisticTransitioner(store, backend, 0).
			Transition(t.Context(), merchant, o.ID(), order.Confirmed)

		require.NoError(t, err)
		_, ok := store.Order(o.ID())
		assert.True(t, ok)
	})
}
