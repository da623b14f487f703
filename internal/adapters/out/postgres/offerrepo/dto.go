// Package offerrepo persists restaurant offers.
package offerrepo

import (
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

type OfferDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(255);not null"`
	RestaurantName     string    `gorm:"type:varchar(255);not null"`
	OfferName          string    `gorm:"type:varchar(255)"`
	ImageURL           string    `gorm:"type:text"`
	LogoURL            string    `gorm:"type:text"`
	DiscountPercentage int       `gorm:"not null;check:discount_percentage BETWEEN 1 AND 100"`
	Description        string    `gorm:"type:text"`
	Category           string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt          time.Time `gorm:"not null"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

func fromDomain(o *offer.Offer) OfferDTO {
	d := o.Details()
	return OfferDTO{
		ID:                 o.ID().Bytes(),
		Name:               d.Name,
		RestaurantName:     d.RestaurantName,
		OfferName:          d.OfferName,
		ImageURL:           d.ImageURL,
		LogoURL:            d.LogoURL,
		DiscountPercentage: d.DiscountPercentage,
		Description:        d.Description,
		Category:           string(d.Category),
		CreatedAt:          o.CreatedAt(),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return offer.RestoreOffer(id, offer.Details{
		Name:               dto.Name,
		RestaurantName:     dto.RestaurantName,
		OfferName:          dto.OfferName,
		ImageURL:           dto.ImageURL,
		LogoURL:            dto.LogoURL,
		DiscountPercentage: dto.DiscountPercentage,
		Description:        dto.Description,
		Category:           offer.Category(dto.Category),
	}, dto.CreatedAt)
}
