package driver

import (
	"fmt"

	"discount/internal/pkg/errs"
)

// Status is the availability of a driver.
type Status string

const (
	Available Status = "available"
	Busy      Status = "busy"
	Offline   Status = "offline"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case Available, Busy, Offline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string { return string(s) }

// VehicleType is what the driver delivers with.
type VehicleType string

const (
	Motorcycle VehicleType = "motorcycle"
	Bicycle    VehicleType = "bicycle"
	Car        VehicleType = "car"
	Scooter    VehicleType = "scooter"
)

func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

func (v VehicleType) Validate() error {
	switch v {
	case Motorcycle, Bicycle, Car, Scooter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
}

func (v VehicleType) String() string { return string(v) }
