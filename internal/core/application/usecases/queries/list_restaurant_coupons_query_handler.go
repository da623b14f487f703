package queries

import (
	"context"
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"

	faster "github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRestaurantCouponsQueryHandler reads a restaurant's coupons, newest first.
type ListRestaurantCouponsQueryHandler struct {
	db *gorm.DB
}

func NewListRestaurantCouponsQueryHandler(db *gorm.DB) ListRestaurantCouponsQueryHandler {
	return ListRestaurantCouponsQueryHandler{db: db}
}

func (h ListRestaurantCouponsQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantCouponsQuery,
) ([]RestaurantCouponItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurantID := query.RestaurantID()
	db := h.db.WithContext(ctx).
		Table("coupons cp").
		Select("cp.id, cp.code, cp.status, cp.created_at, cp.used_at, c.name, c.email, COALESCE(c.phone, '')").
		Joins("JOIN customers c ON c.id = cp.customer_id").
		Where("cp.restaurant_id = ?", restaurantID.Bytes()).
		Order("cp.created_at DESC, cp.code")
	if status := query.Status(); status != nil {
		db = db.Where("cp.status = ?", string(*status))
	}

	rows, err := db.Rows()
	if err != nil {
		return nil, faster.Wrap(err, "list restaurant coupons")
	}
	defer rows.Close()

	coupons := make([]RestaurantCouponItem, 0)
	for rows.Next() {
		var item RestaurantCouponItem
		var id uuid.UUID
		var code, status string
		var usedAt *time.Time

		err = rows.Scan(
			&id,
			&code,
			&status,
			&item.CreatedAt,
			&usedAt,
			&item.CustomerName,
			&item.CustomerEmail,
			&item.CustomerPhone,
		)
		if err != nil {
			return nil, faster.Wrap(err, "scan coupon")
		}

		couponID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = couponID
		item.Code = coupon.Code(code)
		item.Status = coupon.Status(status)
		item.UsedAt = usedAt

		coupons = append(coupons, item)
	}

	if err = rows.Err(); err != nil {
		return nil, faster.Wrap(err, "iterate coupons")
	}

	return coupons, nil
}
