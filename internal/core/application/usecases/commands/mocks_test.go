package commands_test

import (
	"context"
	"time"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func ptrOrNil[T any](args mock.Arguments, i int) *T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*T)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[order.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	return ptrOrNil[order.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	return ptrOrNil[coupon.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponRepository) ExistsByCode(ctx context.Context, code coupon.Code) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) MarkUsed(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepository) List(ctx context.Context, restaurantID *kernel.UUID) ([]*coupon.Coupon, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListCodes(ctx context.Context) ([]coupon.Code, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]coupon.Code), args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[offer.Offer](args, 0), args.Error(1)
}

func (m *MockOfferRepository) List(ctx context.Context, category *offer.Category) ([]*offer.Offer, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[driver.Driver](args, 0), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[customer.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	return ptrOrNil[customer.Customer](args, 0), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[account.Account](args, 0), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	return ptrOrNil[account.Account](args, 0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CouponRepository() ports.CouponRepository {
	return m.Called().Get(0).(ports.CouponRepository)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	return m.Called().Get(0).(ports.OfferRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	return m.Called().Get(0).(ports.AccountRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockHasher struct{ mock.Mock }

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockIssuer struct{ mock.Mock }

func (m *MockIssuer) Issue(actor kernel.Actor, email string) (string, ports.Session, error) {
	args := m.Called(actor, email)
	return args.String(0), args.Get(1).(ports.Session), args.Error(2)
}

func (m *MockIssuer) Parse(token string) (ports.Session, error) {
	args := m.Called(token)
	return args.Get(0).(ports.Session), args.Error(1)
}

type MockRevoker struct{ mock.Mock }

func (m *MockRevoker) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	return m.Called(ctx, sessionID, until).Error(0)
}

func (m *MockRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// fixture wires one unit of work with every repository mocked. Accessor calls are
// optional; repository expectations are set per test.
type fixture struct {
	factory   *MockUoWFactory
	uow       *MockUoW
	orders    *MockOrderRepository
	coupons   *MockCouponRepository
	offers    *MockOfferRepository
	drivers   *MockDriverRepository
	customers *MockCustomerRepository
	accounts  *MockAccountRepository
}

func newFixture() *fixture {
	f := &fixture{
		factory:   new(MockUoWFactory),
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		coupons:   new(MockCouponRepository),
		offers:    new(MockOfferRepository),
		drivers:   new(MockDriverRepository),
		customers: new(MockCustomerRepository),
		accounts:  new(MockAccountRepository),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("CouponRepository").Return(f.coupons).Maybe()
	f.uow.On("OfferRepository").Return(f.offers).Maybe()
	f.uow.On("DriverRepository").Return(f.drivers).Maybe()
	f.uow.On("CustomerRepository").Return(f.customers).Maybe()
	f.uow.On("AccountRepository").Return(f.accounts).Maybe()
	return f
}

// expectTx expects a transaction that commits with commitErr. Rollback always runs
// from the deferred call.
func (f *fixture) expectTx(commitErr error) {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(commitErr).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (f *fixture) assert(t mock.TestingT) {
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.coupons.AssertExpectations(t)
	f.offers.AssertExpectations(t)
	f.drivers.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
}
