package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrAssignDriverCommandIsNotConstructed = errors.New(
		"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
	)
	ErrUnassignDriverCommandIsNotConstructed = errors.New(
		"UnassignDriverCommand must be created via NewUnassignDriverCommand constructor",
	)
	ErrApplyForDeliveryCommandIsNotConstructed = errors.New(
		"ApplyForDeliveryCommand must be created via NewApplyForDeliveryCommand constructor",
	)
)

// AssignDriverCommand puts a driver in the slot of a delivery, replacing any
// previous driver.
type AssignDriverCommand struct {
	deliveryTarget
	driver kernel.Address

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(deliveryID kernel.UUID, caller, driver kernel.Address) (AssignDriverCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return AssignDriverCommand{}, err
	}
	if err = driver.Validate(); err != nil {
		return AssignDriverCommand{}, errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	return AssignDriverCommand{deliveryTarget: target, driver: driver, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Driver() kernel.Address {
	return c.driver
}

type UnassignDriverCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewUnassignDriverCommand(deliveryID kernel.UUID, caller kernel.Address) (UnassignDriverCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return UnassignDriverCommand{}, err
	}
	return UnassignDriverCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c UnassignDriverCommand) Validate() error {
	return c.guard.Validate(ErrUnassignDriverCommandIsNotConstructed)
}

// ApplyForDeliveryCommand asks to take over the driver slot of a delivery.
type ApplyForDeliveryCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewApplyForDeliveryCommand(deliveryID kernel.UUID, caller kernel.Address) (ApplyForDeliveryCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return ApplyForDeliveryCommand{}, err
	}
	return ApplyForDeliveryCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c ApplyForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrApplyForDeliveryCommandIsNotConstructed)
}
