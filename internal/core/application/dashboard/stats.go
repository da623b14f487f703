package dashboard

import (
	"context"
	"errors"
	"time"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsBackend computes dashboard statistics on the backend.
type StatsBackend interface {
	Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.DashboardStats, error)
}

// StatsReporter answers from the backend and falls back to an estimate over the
// store when the backend is unreachable.
type StatsReporter struct {
	backend StatsBackend
	store   *Store
	logger  *zap.Logger
	now     func() time.Time
}

func NewStatsReporter(backend StatsBackend, store *Store, logger *zap.Logger) StatsReporter {
	return StatsReporter{
		backend: backend,
		store:   store,
		logger:  logger.With(zap.String("component", "dashboard_stats")),
		now:     time.Now,
	}
}

// Stats returns backend numbers, or an estimate marked Estimated. Domain errors and
// failures before the store was first loaded are returned as they are.
func (r StatsReporter) Stats(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.DashboardStats, error) {
	stats, err := r.backend.Handle(ctx, query)
	if err == nil {
		return stats, nil
	}
	if isDomainError(err) || r.store.LoadedAt().IsZero() {
		return queries.DashboardStats{}, err
	}

	r.logger.Warn("backend stats failed, estimating from snapshot", zap.Error(err))
	return r.store.Estimate(query.RestaurantID(), r.now()), nil
}

func isDomainError(err error) bool {
	return errs.IsValidation(err) ||
		errors.Is(err, errs.ErrActionIsForbidden) ||
		errors.Is(err, errs.ErrObjectNotFound)
}

// Estimate computes the statistics over the snapshot, limited to restaurantID when
// set. Available drivers are not part of the snapshot and stay zero.
func (s *Store) Estimate(restaurantID *kernel.UUID, now time.Time) queries.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := queries.DashboardStats{Revenue: decimal.Zero, Estimated: true}
	startOfDay := now.UTC().Truncate(24 * time.Hour)

	for _, o := range s.snapshot.Orders {
		if restaurantID != nil && !o.RestaurantID().IsEqual(*restaurantID) {
			continue
		}
		e := s.entry(o)
		stats.Count(e.Status, 1)
		if e.Status == order.Delivered && !e.Pending {
			stats.Revenue = stats.Revenue.Add(o.Totals().Total.Amount())
			if at := o.DeliveredAt(); at != nil && !at.Before(startOfDay) {
				stats.DeliveredToday++
			}
		}
	}

	for _, c := range s.snapshot.Coupons {
		if restaurantID != nil && !c.BelongsTo(*restaurantID) {
			continue
		}
		stats.CouponsIssued++
		if c.Status() == coupon.Used {
			stats.CouponsUsed++
		}
	}

	return stats
}
