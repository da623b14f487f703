package offerrepo

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{db: db, tracker: tracker}
}

func (r *GormOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	dto := fromDomain(o)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return faster.Wrap(err, "insert offer")
	}
	r.tracker.TrackAggregate(o.ID(), o)
	return nil
}

func (r *GormOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	dto := fromDomain(o)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return faster.Wrap(result.Error, "update offer")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("offer", o.ID().String())
	}
	r.tracker.TrackAggregate(o.ID(), o)
	return nil
}

func (r *GormOfferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&OfferDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return faster.Wrap(result.Error, "delete offer")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("offer", id.String())
	}
	return nil
}

func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, faster.Wrap(err, "get offer")
	}
	return toDomain(dto)
}

func (r *GormOfferRepository) List(ctx context.Context, category *offer.Category) ([]*offer.Offer, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if category != nil {
		query = query.Where("category = ?", string(*category))
	}

	var dtos []OfferDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, faster.Wrap(err, "list offers")
	}

	out := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
