package commands_test

import (
	"testing"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// inTransit returns an order on the road with d, who is busy.
func inTransit(t *testing.T, merchant kernel.Actor, d *driver.Driver) *order.Order {
	t.Helper()
	o := orderAt(t, merchant, order.ReadyForPickup)
	require.NoError(t, services.NewDriverDispatcher().Assign(actor(t, kernel.RoleDispatcher), o, d, now))
	driverActor := actor(t, kernel.RoleDriver).WithDriver(d.ID())
	require.NoError(t, o.Transition(driverActor, order.PickedUp, now))
	require.NoError(t, o.Transition(driverActor, order.InTransit, now))
	return o
}

func TestNewChangeOrderStatusCommand(t *testing.T) {
	merchant := merchantOf(t, kernel.NewUUID())

	t.Run("should build a status command", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommandTo(merchant, kernel.NewUUID(), order.Confirmed)

		require.NoError(t, err)
		assert.False(t, cmd.ByAction())
		assert.Equal(t, order.Confirmed, cmd.Target())
	})

	t.Run("should build an action command", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommandByAction(merchant, kernel.NewUUID(), order.ActionAccept)

		require.NoError(t, err)
		assert.True(t, cmd.ByAction())
	})

	t.Run("should require a target status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommandTo(merchant, kernel.NewUUID(), order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an action", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommandByAction(merchant, kernel.NewUUID(), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an order id", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommandTo(merchant, kernel.UUID{}, order.Confirmed)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestChangeOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should accept an order with a check on the status it was read in", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := placedOrder(t, *merchant.RestaurantID)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.PendingRestaurantAcceptance).Return(nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandByAction(merchant, o.ID(), order.ActionAccept)
		require.NoError(t, err)

		updated, err := commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, updated.Status())
		f.drivers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertCalled(t, "Commit", ctx)
		f.assert(t)
	})

	t.Run("should surface a lost race as a conflict", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := placedOrder(t, *merchant.RestaurantID)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.PendingRestaurantAcceptance).
			Return(errs.NewStateConflictError("order", "status changed concurrently")).Once()

		cmd, err := commands.NewChangeOrderStatusCommandTo(merchant, o.ID(), order.Confirmed)
		require.NoError(t, err)

		_, err = commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject transitions outside the actor's authority", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := placedOrder(t, *merchant.RestaurantID)
		stranger := merchantOf(t, kernel.NewUUID())

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandTo(stranger, o.ID(), order.Confirmed)
		require.NoError(t, err)

		_, err = commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Equal(t, order.PendingRestaurantAcceptance, o.Status())
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should make a driver accepting a delivery busy", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)
		d := newDriver(t, driver.Available)
		driverActor := actor(t, kernel.RoleDriver).WithDriver(d.ID())

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.ReadyForPickup).Return(nil).Once()
		f.drivers.On("Update", ctx, d).Return(nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandByAction(driverActor, o.ID(), order.ActionAcceptDelivery)
		require.NoError(t, err)

		updated, err := commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.AssignedToDriver, updated.Status())
		require.NotNil(t, updated.DriverID())
		assert.True(t, d.ID().IsEqual(*updated.DriverID()))
		assert.Equal(t, driver.Busy, d.Status())
		f.assert(t)
	})

	t.Run("should not let an offline driver accept a delivery", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)
		d := newDriver(t, driver.Offline)
		driverActor := actor(t, kernel.RoleDriver).WithDriver(d.ID())

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandTo(driverActor, o.ID(), order.AssignedToDriver)
		require.NoError(t, err)

		_, err = commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, driver.ErrDriverIsNotAvailable)
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("should free the driver and count the delivery", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		d := newDriver(t, driver.Available)
		o := inTransit(t, merchant, d)
		driverActor := actor(t, kernel.RoleDriver).WithDriver(d.ID())

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.InTransit).Return(nil).Once()
		f.drivers.On("Update", ctx, d).Return(nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandByAction(driverActor, o.ID(), order.ActionDeliver)
		require.NoError(t, err)

		updated, err := commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, updated.Status())
		assert.NotNil(t, updated.DeliveredAt())
		assert.Equal(t, driver.Available, d.Status())
		assert.Equal(t, 11, d.TotalDeliveries())
		f.assert(t)
	})

	t.Run("should release the driver when an admin cancels", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		d := newDriver(t, driver.Available)
		o := inTransit(t, merchant, d)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.InTransit).Return(nil).Once()
		f.drivers.On("Update", ctx, d).Return(nil).Once()

		cmd, err := commands.NewChangeOrderStatusCommandTo(actor(t, kernel.RoleAdmin), o.ID(), order.Cancelled)
		require.NoError(t, err)

		_, err = commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, driver.Available, d.Status())
		assert.Equal(t, 10, d.TotalDeliveries())
	})

	t.Run("should report an unknown order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

		cmd, err := commands.NewChangeOrderStatusCommandTo(actor(t, kernel.RoleAdmin), id, order.Cancelled)
		require.NoError(t, err)

		_, err = commands.NewChangeOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestAssignDriverCommandHandler_Handle(t *testing.T) {
	t.Run("should assign the named driver", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)
		d := newDriver(t, driver.Available)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.ReadyForPickup).Return(nil).Once()
		f.drivers.On("Update", ctx, d).Return(nil).Once()

		cmd, err := commands.NewAssignDriverCommand(actor(t, kernel.RoleDispatcher), o.ID(), d.ID().Ptr(), "")
		require.NoError(t, err)

		updated, err := commands.NewAssignDriverCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.AssignedToDriver, updated.Status())
		assert.Equal(t, driver.Busy, d.Status())
		f.assert(t)
	})

	t.Run("should pick the best available driver in the city", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)
		elsewhere, err := driver.RestoreDriver(driver.Snapshot{
			ID: kernel.NewUUID(), Name: "Ali", Phone: "+971502", VehicleType: driver.Car, Status: driver.Available,
			City: "Sharjah", RatingSum: 15, RatingCount: 3, TotalDeliveries: 40,
		})
		require.NoError(t, err)
		local := newDriver(t, driver.Available)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("GetAllAvailable", ctx).Return([]*driver.Driver{elsewhere, local}, nil).Once()
		f.orders.On("UpdateStatus", ctx, o, order.ReadyForPickup).Return(nil).Once()
		f.drivers.On("Update", ctx, local).Return(nil).Once()

		cmd, err := commands.NewAssignDriverCommand(actor(t, kernel.RoleDispatcher), o.ID(), nil, "Dubai")
		require.NoError(t, err)

		updated, err := commands.NewAssignDriverCommandHandler(f.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, updated.DriverID())
		assert.True(t, local.ID().IsEqual(*updated.DriverID()))
		assert.Equal(t, driver.Available, elsewhere.Status())
		f.assert(t)
	})

	t.Run("should fail when nobody is available", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("GetAllAvailable", ctx).Return(nil, nil).Once()

		cmd, err := commands.NewAssignDriverCommand(actor(t, kernel.RoleDispatcher), o.ID(), nil, "")
		require.NoError(t, err)

		_, err = commands.NewAssignDriverCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrDriverNotFound)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should not let a merchant assign drivers", func(t *testing.T) {
		ctx := t.Context()
		merchant := merchantOf(t, kernel.NewUUID())
		o := orderAt(t, merchant, order.ReadyForPickup)
		d := newDriver(t, driver.Available)

		f := newFixture()
		f.expectTx(nil)
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()

		cmd, err := commands.NewAssignDriverCommand(merchant, o.ID(), d.ID().Ptr(), "")
		require.NoError(t, err)

		_, err = commands.NewAssignDriverCommandHandler(f.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrActionIsForbidden)
		assert.Equal(t, driver.Available, d.Status())
	})
}
