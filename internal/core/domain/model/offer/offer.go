package offer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

// Category groups offers on the public listing.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryBakery     Category = "bakery"
	CategorySweets     Category = "sweets"
	CategoryGrocery    Category = "grocery"
	CategoryOther      Category = "other"
)

func Categories() []Category {
	return []Category{CategoryRestaurant, CategoryCafe, CategoryBakery, CategorySweets, CategoryGrocery, CategoryOther}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
}

// Details are the editable attributes of an offer.
type Details struct {
	Name               string
	RestaurantName     string
	OfferName          string
	ImageURL           string
	LogoURL            string
	DiscountPercentage int
	Description        string
	Category           Category
}

func (d Details) normalize() Details {
	d.Name = strings.TrimSpace(d.Name)
	d.RestaurantName = strings.TrimSpace(d.RestaurantName)
	d.OfferName = strings.TrimSpace(d.OfferName)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	d.LogoURL = strings.TrimSpace(d.LogoURL)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Validate checks every field and reports all problems at once.
func (d Details) Validate() error {
	var errList []error
	if d.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if d.RestaurantName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurant name"))
	}
	if d.DiscountPercentage < 1 || d.DiscountPercentage > 100 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("discount percentage", d.DiscountPercentage, 1, 100))
	}
	if _, err := ParseCategory(string(d.Category)); err != nil {
		errList = append(errList, err)
	}
	for name, raw := range map[string]string{"image url": d.ImageURL, "logo url": d.LogoURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errList = append(errList, errs.NewValueIsInvalidError(name))
		}
	}
	return errors.Join(errList...)
}

// Offer is a restaurant's published discount. Its id doubles as the restaurant id
// that orders and coupons refer to.
type Offer struct {
	id        kernel.UUID
	details   Details
	createdAt time.Time

	isConstructed bool
}

func NewOffer(details Details, now time.Time) (*Offer, error) {
	details = details.normalize()
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return &Offer{id: kernel.NewUUID(), details: details, createdAt: now, isConstructed: true}, nil
}

func RestoreOffer(id kernel.UUID, details Details, createdAt time.Time) (*Offer, error) {
	if err := errors.Join(id.Validate(), details.Validate()); err != nil {
		return nil, err
	}
	return &Offer{id: id, details: details, createdAt: createdAt, isConstructed: true}, nil
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

// Update replaces the editable attributes. The offer is unchanged on error.
func (o *Offer) Update(details Details) error {
	details = details.normalize()
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Offer) ID() kernel.UUID      { return o.id }
func (o *Offer) Details() Details     { return o.details }
func (o *Offer) CreatedAt() time.Time { return o.createdAt }

// DisplayName prefers the specific restaurant name over the listing name.
func (o *Offer) DisplayName() string {
	if o.details.RestaurantName != "" {
		return o.details.RestaurantName
	}
	return o.details.Name
}
