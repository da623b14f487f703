package commands

import (
	"errors"
	"strings"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand hands a ready order to a driver. Without a driver id the best
// available driver is picked, preferring drivers in city.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(dispatcher, orderID, nil, "Dubai")
//	if err != nil {
//	    return err
//	}
//	assigned, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    log.Println("all drivers are busy")
//	}
type AssignDriverCommand struct {
	actor    kernel.Actor
	orderID  kernel.UUID
	driverID *kernel.UUID
	city     string

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(actor kernel.Actor, orderID kernel.UUID, driverID *kernel.UUID, city string) (AssignDriverCommand, error) {
	var driverErr error
	if driverID != nil {
		driverErr = driverID.Validate()
	}
	if err := errors.Join(actor.ID.Validate(), orderID.Validate(), driverErr); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		actor:    actor,
		orderID:  orderID,
		driverID: driverID,
		city:     strings.TrimSpace(city),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Actor() kernel.Actor    { return c.actor }
func (c AssignDriverCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AssignDriverCommand) DriverID() *kernel.UUID { return c.driverID }
func (c AssignDriverCommand) City() string           { return c.city }
