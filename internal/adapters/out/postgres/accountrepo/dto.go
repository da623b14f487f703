// Package accountrepo persists login accounts.
package accountrepo

import (
	"time"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AccountDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(16);not null"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
	DriverID     *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"not null"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func ref(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func deref(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:           a.ID().Bytes(),
		Email:        a.Email(),
		PasswordHash: a.PasswordHash(),
		Role:         a.Role().String(),
		RestaurantID: ref(a.RestaurantID()),
		DriverID:     ref(a.DriverID()),
		CustomerID:   ref(a.CustomerID()),
		CreatedAt:    a.CreatedAt(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	var b account.Binding
	if b.RestaurantID, err = deref(dto.RestaurantID); err != nil {
		return nil, err
	}
	if b.DriverID, err = deref(dto.DriverID); err != nil {
		return nil, err
	}
	if b.CustomerID, err = deref(dto.CustomerID); err != nil {
		return nil, err
	}
	return account.RestoreAccount(id, dto.Email, dto.PasswordHash, role, b, dto.CreatedAt)
}
