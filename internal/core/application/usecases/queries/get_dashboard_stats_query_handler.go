package queries

import (
	"context"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/order"

	faster "github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetDashboardStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db, now: time.Now}
}

// Handle runs three aggregates in one read-only transaction so the numbers agree with
// each other.
func (h GetDashboardStatsQueryHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{OrdersByStatus: make(map[order.Status]int), Revenue: decimal.Zero}
	startOfDay := h.now().UTC().Truncate(24 * time.Hour)

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := h.orderStats(tx, query, startOfDay, &stats); err != nil {
			return err
		}
		if err := h.couponStats(tx, query, &stats); err != nil {
			return err
		}
		if query.RestaurantID() == nil {
			return tx.Table("drivers").
				Where("status = ?", string(driver.Available)).
				Select("COUNT(*)").
				Row().Scan(&stats.AvailableDrivers)
		}
		return nil
	})
	if err != nil {
		return DashboardStats{}, faster.Wrap(err, "dashboard stats")
	}

	return stats, nil
}

func (h GetDashboardStatsQueryHandler) orderStats(
	tx *gorm.DB,
	query GetDashboardStatsQuery,
	startOfDay time.Time,
	stats *DashboardStats,
) error {
	q := tx.Table("orders").
		Select(`status, COUNT(*),
			COALESCE(SUM(total_price), 0),
			COUNT(*) FILTER (WHERE delivered_at >= ?)`, startOfDay).
		Group("status")
	if id := query.RestaurantID(); id != nil {
		q = q.Where("restaurant_id = ?", id.Bytes())
	}

	rows, err := q.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, deliveredToday int
		var sum decimal.Decimal
		if err = rows.Scan(&status, &count, &sum, &deliveredToday); err != nil {
			return err
		}

		s, err := order.ParseStatus(status)
		if err != nil {
			return err
		}
		stats.Count(s, count)
		if s == order.Delivered {
			stats.Revenue = sum
			stats.DeliveredToday = deliveredToday
		}
	}
	return rows.Err()
}

func (h GetDashboardStatsQueryHandler) couponStats(tx *gorm.DB, query GetDashboardStatsQuery, stats *DashboardStats) error {
	q := tx.Table("coupons").
		Select("COUNT(*), COUNT(*) FILTER (WHERE status = ?)", string(coupon.Used))
	if id := query.RestaurantID(); id != nil {
		q = q.Where("restaurant_id = ?", id.Bytes())
	}
	return q.Row().Scan(&stats.CouponsIssued, &stats.CouponsUsed)
}
