package commands

import (
	"errors"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/services"
	"discount/internal/pkg/guard"
)

var ErrRateDriverCommandIsNotConstructed = errors.New(
	"RateDriverCommand must be created via NewRateDriverCommand constructor",
)

// RateDriverCommand adds one 1-5 rating to a driver's average.
type RateDriverCommand struct {
	actor    kernel.Actor
	driverID kernel.UUID
	rating   int

	guard guard.ConstructorGuard
}

func NewRateDriverCommand(actor kernel.Actor, driverID kernel.UUID, rating int) (RateDriverCommand, error) {
	if err := services.RequireCapability(actor, services.CapRateDrivers, "rate drivers"); err != nil {
		return RateDriverCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return RateDriverCommand{}, err
	}
	return RateDriverCommand{
		actor:    actor,
		driverID: driverID,
		rating:   rating,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RateDriverCommand) Validate() error {
	return c.guard.Validate(ErrRateDriverCommandIsNotConstructed)
}

func (c RateDriverCommand) DriverID() kernel.UUID { return c.driverID }
func (c RateDriverCommand) Rating() int           { return c.rating }
