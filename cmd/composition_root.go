package cmd

import (
	"crypto/rand"
	"time"

	httpapi "discount/internal/adapters/in/http"
	"discount/internal/adapters/out/postgres"
	"discount/internal/core/application/dashboard"
	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const transitionTimeout = 10 * time.Second

// Infrastructure holds the adapters built in main that handlers depend on.
type Infrastructure struct {
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	KeyStore    KeyStore
	Changes     ports.ChangeFeed
	CodeFilter  *coupon.CodeFilter
	Logger      *zap.Logger
	DashboardAs kernel.Actor
}

// KeyStore is the Redis-backed store used for both idempotency keys and revoked
// sessions.
type KeyStore interface {
	ports.IdempotencyStore
	ports.SessionRevoker
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	infra      Infrastructure
	store      *dashboard.Store
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, infra Infrastructure) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		infra:      infra,
		store:      dashboard.NewStore(),
	}
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOfferCommandHandler() commands.CreateOfferCommandHandler {
	return commands.NewCreateOfferCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOfferCommandHandler() commands.UpdateOfferCommandHandler {
	return commands.NewUpdateOfferCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOfferCommandHandler() commands.DeleteOfferCommandHandler {
	return commands.NewDeleteOfferCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateIssueCouponCommandHandler() commands.IssueCouponCommandHandler {
	return commands.NewIssueCouponCommandHandler(c.newUoWFactory(), c.infra.CodeFilter, rand.Reader)
}

func (c *CompositionRoot) CreateRedeemCouponCommandHandler() commands.RedeemCouponCommandHandler {
	return commands.NewRedeemCouponCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.newUoWFactory(), c.config.Pricing())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateRateDriverCommandHandler() commands.RateDriverCommandHandler {
	return commands.NewRateDriverCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateSignUpCommandHandler() commands.SignUpCommandHandler {
	return commands.NewSignUpCommandHandler(c.newUoWFactory(), c.infra.Hasher)
}

func (c *CompositionRoot) CreateSignInCommandHandler() commands.SignInCommandHandler {
	return commands.NewSignInCommandHandler(c.newUoWFactory(), c.infra.Hasher, c.infra.Tokens)
}

func (c *CompositionRoot) CreateSignOutCommandHandler() commands.SignOutCommandHandler {
	return commands.NewSignOutCommandHandler(c.infra.KeyStore)
}

func (c *CompositionRoot) CreateRegisterStaffCommandHandler() commands.RegisterStaffCommandHandler {
	return commands.NewRegisterStaffCommandHandler(c.newUoWFactory(), c.infra.Hasher)
}

func (c *CompositionRoot) CreateListOffersQueryHandler() queries.ListOffersQueryHandler {
	return queries.NewListOffersQueryHandler(c.uowFactory.Create().OfferRepository())
}

func (c *CompositionRoot) CreateGetOfferQueryHandler() queries.GetOfferQueryHandler {
	return queries.NewGetOfferQueryHandler(c.uowFactory.Create().OfferRepository())
}

func (c *CompositionRoot) CreateListCustomersQueryHandler() queries.ListCustomersQueryHandler {
	return queries.NewListCustomersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRestaurantCouponsQueryHandler() queries.ListRestaurantCouponsQueryHandler {
	return queries.NewListRestaurantCouponsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidateCouponQueryHandler() queries.ValidateCouponQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewValidateCouponQueryHandler(uow.CouponRepository(), uow.CustomerRepository())
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrdersByStatusQueryHandler(uow.OrderRepository(), uow.DriverRepository())
}

func (c *CompositionRoot) CreateSuggestDriversQueryHandler() queries.SuggestDriversQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewSuggestDriversQueryHandler(uow.OrderRepository(), uow.DriverRepository())
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

// CreateDashboardRefresher reads full snapshots into the shared dashboard store.
func (c *CompositionRoot) CreateDashboardRefresher() *dashboard.Refresher {
	source := dashboard.NewQuerySource(
		c.infra.DashboardAs,
		c.CreateListOffersQueryHandler(),
		c.CreateListCustomersQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.uowFactory.Create().CouponRepository(),
	)
	return dashboard.NewRefresher(source, c.store, c.infra.Logger)
}

func (c *CompositionRoot) CreateServer() *httpapi.Server {
	changeStatus := c.CreateChangeOrderStatusCommandHandler()

	cmds := httpapi.Commands{
		CreateOffer:           c.CreateCreateOfferCommandHandler(),
		UpdateOffer:           c.CreateUpdateOfferCommandHandler(),
		DeleteOffer:           c.CreateDeleteOfferCommandHandler(),
		IssueCoupon:           c.CreateIssueCouponCommandHandler(),
		RedeemCoupon:          c.CreateRedeemCouponCommandHandler(),
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:     changeStatus,
		AssignDriver:          c.CreateAssignDriverCommandHandler(),
		RateDriver:            c.CreateRateDriverCommandHandler(),
		SetDriverAvailability: c.CreateSetDriverAvailabilityCommandHandler(),
		SignUp:                c.CreateSignUpCommandHandler(),
		SignIn:                c.CreateSignInCommandHandler(),
		SignOut:               c.CreateSignOutCommandHandler(),
		RegisterStaff:         c.CreateRegisterStaffCommandHandler(),
	}
	qs := httpapi.Queries{
		ListOffers:            c.CreateListOffersQueryHandler(),
		GetOffer:              c.CreateGetOfferQueryHandler(),
		ListCustomers:         c.CreateListCustomersQueryHandler(),
		ListRestaurantCoupons: c.CreateListRestaurantCouponsQueryHandler(),
		ValidateCoupon:        c.CreateValidateCouponQueryHandler(),
		TrackOrder:            c.CreateTrackOrderQueryHandler(),
		GetOrdersByStatus:     c.CreateGetOrdersByStatusQueryHandler(),
		SuggestDrivers:        c.CreateSuggestDriversQueryHandler(),
	}
	infra := httpapi.Infrastructure{
		Tokens:         c.infra.Tokens,
		Sessions:       c.infra.KeyStore,
		Idempotency:    c.infra.KeyStore,
		IdempotencyTTL: c.config.IdempotencyTTL,
		Changes:        c.infra.Changes,
		Transitioner: dashboard.NewOptimisticTransitioner(
			c.store, dashboard.NewCommandBackend(changeStatus), transitionTimeout),
		Stats:  dashboard.NewStatsReporter(c.CreateGetDashboardStatsQueryHandler(), c.store, c.infra.Logger),
		Logger: c.infra.Logger,
	}
	return httpapi.NewServer(cmds, qs, infra)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
