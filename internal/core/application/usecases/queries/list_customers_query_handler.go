package queries

import (
	"context"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"

	faster "github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCustomersQueryHandler reads customers joined with their coupons, newest first.
type ListCustomersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomersQueryHandler(db *gorm.DB) ListCustomersQueryHandler {
	return ListCustomersQueryHandler{db: db}
}

func (h ListCustomersQueryHandler) Handle(ctx context.Context, query ListCustomersQuery) ([]CustomerListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers := make([]CustomerListItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.email,
			COALESCE(c.phone, ''),
			c.created_at,
			COUNT(cp.id),
			COUNT(cp.id) FILTER (WHERE cp.status = ?)
		FROM customers c
		LEFT JOIN coupons cp ON cp.customer_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.email
	`, string(coupon.Used)).Rows()
	if err != nil {
		return nil, faster.Wrap(err, "list customers")
	}
	defer rows.Close()

	for rows.Next() {
		var item CustomerListItem
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.CreatedAt,
			&item.CouponsTotal,
			&item.CouponsUsed,
		)
		if err != nil {
			return nil, faster.Wrap(err, "scan customer")
		}

		customerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = customerID

		customers = append(customers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, faster.Wrap(err, "iterate customers")
	}

	return customers, nil
}
