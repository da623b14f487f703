package couponrepo

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

type GormCouponRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCouponRepository(db *gorm.DB, tracker aggregateTracker) *GormCouponRepository {
	return &GormCouponRepository{db: db, tracker: tracker}
}

func (r *GormCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}

	// The nested transaction is a savepoint inside a unit of work, so a taken code
	// leaves the outer transaction usable for another attempt.
	dto := fromDomain(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return coupon.ErrCodeIsTaken
		}
		return faster.Wrap(err, "insert coupon")
	}

	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

func (r *GormCouponRepository) GetByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code.String())
		}
		return nil, faster.Wrap(err, "get coupon")
	}
	return toDomain(dto)
}

func (r *GormCouponRepository) ExistsByCode(ctx context.Context, code coupon.Code) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&CouponDTO{}).Where("code = ?", code.String()).Count(&count).Error; err != nil {
		return false, faster.Wrap(err, "check coupon code")
	}
	return count > 0, nil
}

// MarkUsed is conditioned on the stored status still being unused, so that of two
// racing redemptions exactly one affects a row.
func (r *GormCouponRepository) MarkUsed(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Status() != coupon.Used || c.UsedAt() == nil {
		return errs.NewValueIsInvalidError("coupon must be redeemed before it is stored as used")
	}

	result := r.db.WithContext(ctx).Model(&CouponDTO{}).
		Where("code = ? AND restaurant_id = ? AND status = ?",
			c.Code().String(), c.RestaurantID().Bytes(), coupon.Unused.String()).
		Updates(map[string]any{
			"status":  coupon.Used.String(),
			"used_at": *c.UsedAt(),
		})
	if result.Error != nil {
		return faster.Wrap(result.Error, "mark coupon used")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrAlreadyUsed
	}

	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

// List returns coupons newest first, all of them when restaurantID is nil.
func (r *GormCouponRepository) List(ctx context.Context, restaurantID *kernel.UUID) ([]*coupon.Coupon, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if restaurantID != nil {
		db = db.Where("restaurant_id = ?", restaurantID.Bytes())
	}

	var dtos []CouponDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, faster.Wrap(err, "list coupons")
	}

	out := make([]*coupon.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *GormCouponRepository) ListCodes(ctx context.Context) ([]coupon.Code, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&CouponDTO{}).Pluck("code", &codes).Error; err != nil {
		return nil, faster.Wrap(err, "list coupon codes")
	}

	out := make([]coupon.Code, len(codes))
	for i, c := range codes {
		out[i] = coupon.Code(c)
	}
	return out, nil
}
