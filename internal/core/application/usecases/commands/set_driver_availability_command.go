package commands

import (
	"errors"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/errs"
	"discount/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand lets a driver go online (available) or offline.
type SetDriverAvailabilityCommand struct {
	driverID kernel.UUID
	status   driver.Status

	guard guard.ConstructorGuard
}

func NewSetDriverAvailabilityCommand(actor kernel.Actor, status string) (SetDriverAvailabilityCommand, error) {
	if err := services.RequireCapability(actor, services.CapToggleAvailability, "toggle availability"); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}
	if actor.DriverID == nil {
		return SetDriverAvailabilityCommand{}, errs.NewActionIsForbiddenError("toggle availability without a driver profile", actor.Role.String())
	}
	parsed, err := driver.ParseStatus(status)
	if err != nil {
		return SetDriverAvailabilityCommand{}, err
	}
	return SetDriverAvailabilityCommand{
		driverID: *actor.DriverID,
		status:   parsed,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID { return c.driverID }
func (c SetDriverAvailabilityCommand) Status() driver.Status { return c.status }
