package driver

import (
	"errors"
	"fmt"
	"strings"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	minRating = 1
	maxRating = 5
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired        = errs.NewValueIsRequiredError("phone")
	ErrCityIsRequired         = errs.NewValueIsRequiredError("city")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	ErrDriverIsBusy           = errs.NewStateConflictError("driver", "is on a delivery")
	ErrDriverIsNotAvailable   = errs.NewStateConflictError("driver", "is not available")
)

// Driver is a delivery agent.
//
// Invariants:
//   - Status is available, busy or offline; only the system moves a driver in and
//     out of busy
//   - Rating stays within 0..5 and is the mean of all ratings received, kept as an
//     exact sum and count
//   - TotalDeliveries only grows, by one per completed delivery
type Driver struct {
	id              kernel.UUID
	name            string
	phone           string
	vehicleType     VehicleType
	status          Status
	city            string
	ratingSum       int
	ratingCount     int
	totalDeliveries int
	version         int
	guard           guard.ConstructorGuard
}

// NewDriver registers an offline driver with no rating.
func NewDriver(name, phone string, vehicleType VehicleType, city string) (*Driver, error) {
	d := &Driver{
		id:     kernel.NewUUID(),
		status: Offline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setName(name),
		d.setPhone(phone),
		d.setVehicleType(vehicleType),
		d.setCity(city),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot is a driver as stored. Version counts the writes the row has seen.
type Snapshot struct {
	ID              kernel.UUID
	Name            string
	Phone           string
	VehicleType     VehicleType
	Status          Status
	City            string
	RatingSum       int
	RatingCount     int
	TotalDeliveries int
	Version         int
}

// RestoreDriver rebuilds a driver from storage.
func RestoreDriver(s Snapshot) (*Driver, error) {
	d := &Driver{
		id:              s.ID,
		status:          s.Status,
		ratingSum:       s.RatingSum,
		ratingCount:     s.RatingCount,
		totalDeliveries: s.TotalDeliveries,
		version:         s.Version,
		guard:           guard.NewConstructorGuard(),
	}

	var rangeErr error
	if s.RatingCount < 0 || s.TotalDeliveries < 0 || s.Version < 0 {
		rangeErr = errs.NewValueIsInvalidError("counters must not be negative")
	} else if s.RatingSum < minRating*s.RatingCount || s.RatingSum > maxRating*s.RatingCount {
		rangeErr = errs.NewValueIsOutOfRangeError("rating", d.Rating().String(), 0, maxRating)
	}

	if err := errors.Join(
		s.ID.Validate(),
		d.setName(s.Name),
		d.setPhone(s.Phone),
		d.setVehicleType(s.VehicleType),
		d.setCity(s.City),
		s.Status.Validate(),
		rangeErr,
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID          { return d.id }
func (d *Driver) Name() string             { return d.name }
func (d *Driver) Phone() string            { return d.phone }
func (d *Driver) VehicleType() VehicleType { return d.vehicleType }
func (d *Driver) Status() Status           { return d.status }
func (d *Driver) City() string             { return d.city }
func (d *Driver) RatingSum() int           { return d.ratingSum }
func (d *Driver) RatingCount() int         { return d.ratingCount }
func (d *Driver) Version() int             { return d.version }
func (d *Driver) TotalDeliveries() int     { return d.totalDeliveries }
func (d *Driver) IsAvailable() bool        { return d.status == Available }
// Rating is the mean of every rating received, rounded to two places. Zero until
// the first rating.
func (d *Driver) Rating() decimal.Decimal {
	if d.ratingCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(d.ratingSum)).Div(decimal.NewFromInt(int64(d.ratingCount))).Round(2)
}

// MarkPersisted records that the current state was written as the next version.
func (d *Driver) MarkPersisted() {
	d.version++
}

func (d *Driver) IsInCity(city string) bool {
	return strings.EqualFold(d.city, strings.TrimSpace(city))
}

// SetAvailability is the driver's own toggle between available and offline.
// A busy driver cannot toggle until the current delivery ends.
func (d *Driver) SetAvailability(status Status) error {
	if status == Busy {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is set by assignment only", Busy))
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if d.status == Busy {
		return ErrDriverIsBusy
	}
	d.status = status
	return nil
}

// TakeOrder marks an available driver busy.
func (d *Driver) TakeOrder() error {
	if d.status != Available {
		return ErrDriverIsNotAvailable
	}
	d.status = Busy
	return nil
}

// Release frees a busy driver whose order was cancelled.
func (d *Driver) Release() {
	if d.status == Busy {
		d.status = Available
	}
}

// CompleteDelivery frees the driver and counts the delivery.
func (d *Driver) CompleteDelivery() error {
	if d.status != Busy {
		return errs.NewStateConflictError("driver", "has no delivery in progress")
	}
	d.status = Available
	d.totalDeliveries++
	return nil
}

// Rate adds one rating between 1 and 5 and returns the new mean rounded to two
// places.
func (d *Driver) Rate(rating int) (decimal.Decimal, error) {
	if rating < minRating || rating > maxRating {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}

	d.ratingSum += rating
	d.ratingCount++

	return d.Rating(), nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}

func (d *Driver) setVehicleType(v VehicleType) error {
	if err := v.Validate(); err != nil {
		return err
	}
	d.vehicleType = v
	return nil
}

func (d *Driver) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrCityIsRequired
	}
	d.city = city
	return nil
}
