package driverrepo

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

// ErrDriverChanged means another request wrote the driver after it was read.
var ErrDriverChanged = errs.NewStateConflictError("driver", "was changed by another request")

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{db: db, tracker: tracker}
}

func (r *GormDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return faster.Wrap(err, "insert driver")
	}
	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Update writes the driver only if the row is still at the version it was read
// at, so two requests assigning or rating the same driver cannot both win. The
// stored rating is recomputed from the exact sum in the same statement.
func (r *GormDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	dto := fromDomain(d)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":             dto.Name,
			"phone":            dto.Phone,
			"vehicle_type":     dto.VehicleType,
			"status":           dto.Status,
			"city":             dto.City,
			"rating_sum":       dto.RatingSum,
			"rating_count":     dto.RatingCount,
			"rating":           gorm.Expr("COALESCE(ROUND(?::numeric / NULLIF(?, 0), 2), 0)", dto.RatingSum, dto.RatingCount),
			"total_deliveries": dto.TotalDeliveries,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return faster.Wrap(result.Error, "update driver")
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, d.ID())
	}
	d.MarkPersisted()
	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDriverRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return faster.Wrap(err, "check driver")
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}
	return ErrDriverChanged
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, faster.Wrap(err, "get driver")
	}
	return toDomain(dto)
}

// GetAllAvailable returns drivers whose status is available, best rated first.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", driver.Available.String()).
		Order("rating DESC").
		Find(&dtos).Error; err != nil {
		return nil, faster.Wrap(err, "list available drivers")
	}

	out := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
