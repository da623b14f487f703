// Package http exposes the use cases over a JSON API built on echo.
//
// Routes are grouped under /api/v1. Requests carrying a bearer token get a session
// attached by the auth middleware; handlers that need one reject anonymous callers.
// Mutating routes honour an Idempotency-Key header.
package http

import (
	"net/http"
	"time"

	"discount/internal/core/application/dashboard"
	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Commands groups the command handlers the API dispatches to.
type Commands struct {
	CreateOffer           commands.CreateOfferCommandHandler
	UpdateOffer           commands.UpdateOfferCommandHandler
	DeleteOffer           commands.DeleteOfferCommandHandler
	IssueCoupon           commands.IssueCouponCommandHandler
	RedeemCoupon          commands.RedeemCouponCommandHandler
	CreateOrder           commands.CreateOrderCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	AssignDriver          commands.AssignDriverCommandHandler
	RateDriver            commands.RateDriverCommandHandler
	SetDriverAvailability commands.SetDriverAvailabilityCommandHandler
	SignUp                commands.SignUpCommandHandler
	SignIn                commands.SignInCommandHandler
	SignOut               commands.SignOutCommandHandler
	RegisterStaff         commands.RegisterStaffCommandHandler
}

// Queries groups the query handlers the API reads through.
type Queries struct {
	ListOffers            queries.ListOffersQueryHandler
	GetOffer              queries.GetOfferQueryHandler
	ListCustomers         queries.ListCustomersQueryHandler
	ListRestaurantCoupons queries.ListRestaurantCouponsQueryHandler
	ValidateCoupon        queries.ValidateCouponQueryHandler
	TrackOrder            queries.TrackOrderQueryHandler
	GetOrdersByStatus     queries.GetOrdersByStatusQueryHandler
	SuggestDrivers        queries.SuggestDriversQueryHandler
}

// Infrastructure is what the middleware and the streaming routes depend on.
type Infrastructure struct {
	Tokens         ports.TokenIssuer
	Sessions       ports.SessionRevoker
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	Changes        ports.ChangeFeed
	Transitioner   dashboard.OptimisticTransitioner
	Stats          dashboard.StatsReporter
	Logger         *zap.Logger
}

// Server implements the HTTP handlers on top of the use cases.
type Server struct {
	commands  Commands
	queries   Queries
	infra     Infrastructure
	projector services.RoleViewProjector
	logger    *zap.Logger
	now       func() time.Time
}

func NewServer(cmds Commands, qs Queries, infra Infrastructure) *Server {
	return &Server{
		commands:  cmds,
		queries:   qs,
		infra:     infra,
		projector: services.NewRoleViewProjector(),
		logger:    infra.Logger.With(zap.String("component", "http")),
		now:       time.Now,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.authenticate)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	idempotent := s.idempotent

	api.GET("/offers", s.ListOffers)
	api.GET("/offers/:id", s.GetOffer)
	api.POST("/offers", s.CreateOffer, requireSession, idempotent)
	api.PUT("/offers/:id", s.UpdateOffer, requireSession)
	api.DELETE("/offers/:id", s.DeleteOffer, requireSession)

	api.GET("/customers", s.ListCustomers, requireSession)

	api.POST("/coupons", s.IssueCoupon, idempotent)
	api.POST("/coupons/validate", s.ValidateCoupon, requireSession)
	api.POST("/coupons/redeem", s.RedeemCoupon, requireSession, idempotent)
	api.GET("/restaurants/:id/coupons", s.ListRestaurantCoupons, requireSession)

	api.POST("/orders", s.CreateOrder, idempotent)
	api.GET("/orders", s.GetOrdersByStatus, requireSession)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus, requireSession, idempotent)
	api.POST("/orders/:id/assign", s.AssignDriver, requireSession, idempotent)
	api.GET("/orders/:id/driver-suggestions", s.SuggestDrivers, requireSession)
	api.GET("/track/:number", s.TrackOrder)

	api.POST("/drivers/:id/rating", s.RateDriver, requireSession, idempotent)
	api.PUT("/drivers/me/status", s.SetDriverAvailability, requireSession)

	api.GET("/stats", s.GetStats, requireSession)
	api.GET("/changes", s.StreamChanges, requireSession)

	api.POST("/auth/signup", s.SignUp, idempotent)
	api.POST("/auth/signin", s.SignIn)
	api.POST("/auth/signout", s.SignOut, requireSession)
	api.GET("/auth/session", s.GetSession, requireSession)
	api.POST("/staff", s.RegisterStaff, requireSession, idempotent)
}
