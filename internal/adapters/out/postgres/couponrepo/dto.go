// Package couponrepo persists coupons.
package couponrepo

import (
	"time"

	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CouponDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(8);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UsedAt       *time.Time
}

func (CouponDTO) TableName() string {
	return "coupons"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	return CouponDTO{
		ID:           c.ID().Bytes(),
		Code:         c.Code().String(),
		CustomerID:   c.CustomerID().Bytes(),
		RestaurantID: c.RestaurantID().Bytes(),
		Status:       c.Status().String(),
		CreatedAt:    c.CreatedAt(),
		UsedAt:       c.UsedAt(),
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	status, err := coupon.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return coupon.RestoreCoupon(id, coupon.Code(dto.Code), customerID, restaurantID, status, dto.CreatedAt, dto.UsedAt)
}
