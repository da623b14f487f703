// Package driverrepo persists drivers.
package driverrepo

import (
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DriverDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Phone           string          `gorm:"type:varchar(64);not null"`
	VehicleType     string          `gorm:"type:varchar(16);not null"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	City            string          `gorm:"type:varchar(128);not null"`
	Rating          decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0;index"`
	RatingSum       int             `gorm:"not null;default:0"`
	RatingCount     int             `gorm:"not null;default:0"`
	TotalDeliveries int             `gorm:"not null;default:0"`
	Version         int             `gorm:"not null;default:0"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              d.ID().Bytes(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		VehicleType:     d.VehicleType().String(),
		Status:          d.Status().String(),
		City:            d.City(),
		Rating:          d.Rating(),
		RatingSum:       d.RatingSum(),
		RatingCount:     d.RatingCount(),
		TotalDeliveries: d.TotalDeliveries(),
		Version:         d.Version(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(driver.Snapshot{
		ID:              id,
		Name:            dto.Name,
		Phone:           dto.Phone,
		VehicleType:     driver.VehicleType(dto.VehicleType),
		Status:          driver.Status(dto.Status),
		City:            dto.City,
		RatingSum:       dto.RatingSum,
		RatingCount:     dto.RatingCount,
		TotalDeliveries: dto.TotalDeliveries,
		Version:         dto.Version,
	})
}
