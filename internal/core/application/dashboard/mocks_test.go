package dashboard_test

import (
	"context"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Offers(ctx context.Context) ([]*offer.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockSource) Customers(ctx context.Context) ([]queries.CustomerListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.CustomerListItem), args.Error(1)
}

func (m *MockSource) Coupons(ctx context.Context) ([]*coupon.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coupon.Coupon), args.Error(1)
}

func (m *MockSource) Orders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStatusChanger struct {
	mock.Mock
}

func (m *MockStatusChanger) ChangeStatus(
	ctx context.Context,
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatsBackend struct {
	mock.Mock
}

func (m *MockStatsBackend) Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.DashboardStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DashboardStats), args.Error(1)
}

// channelFeed hands out a channel the test writes to.
type channelFeed struct {
	changes chan ports.Change
}

func (f channelFeed) Subscribe(context.Context) (<-chan ports.Change, error) {
	return f.changes, nil
}
