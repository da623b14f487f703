package customerrepo

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{db: db, tracker: tracker}
}

func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("customer", "email is already registered", err)
		}
		return faster.Wrap(err, "insert customer")
	}
	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).Where("id = ?", c.ID().Bytes()).
		Updates(map[string]any{"name": c.Name(), "phone": c.Phone()})
	if result.Error != nil {
		return faster.Wrap(result.Error, "update customer")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", c.ID().String())
	}
	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.first(ctx, email, "email = ?", email)
}

func (r *GormCustomerRepository) first(ctx context.Context, key string, cond string, arg any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", key)
		}
		return nil, faster.Wrap(err, "get customer")
	}
	return toDomain(dto)
}
