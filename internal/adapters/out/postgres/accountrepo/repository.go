package accountrepo

import (
	"context"
	"errors"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Add(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("account", "email is already registered", err)
		}
		return faster.Wrap(err, "insert account")
	}
	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.first(ctx, email, "email = ?", email)
}

func (r *GormAccountRepository) first(ctx context.Context, key, cond string, arg any) (*account.Account, error) {
	var dto AccountDTO
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", key)
		}
		return nil, faster.Wrap(err, "get account")
	}
	return toDomain(dto)
}
