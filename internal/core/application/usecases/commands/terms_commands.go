package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrExtendDueDateCommandIsNotConstructed = errors.New(
		"ExtendDueDateCommand must be created via NewExtendDueDateCommand constructor",
	)
	ErrUpdatePriceCommandIsNotConstructed = errors.New(
		"UpdatePriceCommand must be created via NewUpdatePriceCommand constructor",
	)
)

type ExtendDueDateCommand struct {
	deliveryTarget
	dueDate time.Time

	guard guard.ConstructorGuard
}

func NewExtendDueDateCommand(deliveryID kernel.UUID, caller kernel.Address, dueDate time.Time) (ExtendDueDateCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return ExtendDueDateCommand{}, err
	}
	if dueDate.IsZero() {
		return ExtendDueDateCommand{}, errs.NewValueIsRequiredError("due date")
	}
	return ExtendDueDateCommand{deliveryTarget: target, dueDate: dueDate, guard: guard.NewConstructorGuard()}, nil
}

func (c ExtendDueDateCommand) Validate() error {
	return c.guard.Validate(ErrExtendDueDateCommandIsNotConstructed)
}

func (c ExtendDueDateCommand) DueDate() time.Time {
	return c.dueDate
}

type UpdatePriceCommand struct {
	deliveryTarget
	cost uint64

	guard guard.ConstructorGuard
}

func NewUpdatePriceCommand(deliveryID kernel.UUID, caller kernel.Address, cost uint64) (UpdatePriceCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return UpdatePriceCommand{}, err
	}
	return UpdatePriceCommand{deliveryTarget: target, cost: cost, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePriceCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePriceCommandIsNotConstructed)
}

func (c UpdatePriceCommand) Cost() uint64 {
	return c.cost
}
