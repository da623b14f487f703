package queries

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery aggregates the numbers shown at the top of a dashboard.
// Merchants get their restaurant's numbers, dispatchers and admins the platform's.
type GetDashboardStatsQuery struct {
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDashboardStatsQuery(actor kernel.Actor) (GetDashboardStatsQuery, error) {
	if err := services.RequireCapability(actor, services.CapViewStats, "view stats"); err != nil {
		return GetDashboardStatsQuery{}, err
	}
	scope, err := services.RestaurantScope(actor, nil)
	if err != nil {
		return GetDashboardStatsQuery{}, err
	}
	return GetDashboardStatsQuery{restaurantID: scope, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

func (q GetDashboardStatsQuery) RestaurantID() *kernel.UUID { return q.restaurantID }

// DashboardStats are the aggregated dashboard numbers. Estimated marks numbers
// computed from a local snapshot instead of the backend.
type DashboardStats struct {
	OrdersByStatus   map[order.Status]int
	TotalOrders      int
	ActiveOrders     int
	DeliveredToday   int
	Revenue          decimal.Decimal
	CouponsIssued    int
	CouponsUsed      int
	AvailableDrivers int
	Estimated        bool
}

// Count adds n orders in status s.
func (s *DashboardStats) Count(status order.Status, n int) {
	if s.OrdersByStatus == nil {
		s.OrdersByStatus = make(map[order.Status]int)
	}
	s.OrdersByStatus[status] += n
	s.TotalOrders += n
	if !status.IsTerminal() {
		s.ActiveOrders += n
	}
}
