package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrDepositToEscrowCommandIsNotConstructed = errors.New(
		"DepositToEscrowCommand must be created via NewDepositToEscrowCommand constructor",
	)
	ErrSettleEscrowCommandIsNotConstructed = errors.New(
		"SettleEscrowCommand must be created via NewSettleEscrowCommand constructor",
	)
	ErrRefundEscrowCommandIsNotConstructed = errors.New(
		"RefundEscrowCommand must be created via NewRefundEscrowCommand constructor",
	)
	ErrWithdrawFromEscrowCommandIsNotConstructed = errors.New(
		"WithdrawFromEscrowCommand must be created via NewWithdrawFromEscrowCommand constructor",
	)
	ErrPayTipCommandIsNotConstructed = errors.New(
		"PayTipCommand must be created via NewPayTipCommand constructor",
	)
)

// DepositToEscrowCommand funds the escrow of a delivery. The amount must be positive.
type DepositToEscrowCommand struct {
	deliveryTarget
	amount uint64

	guard guard.ConstructorGuard
}

func NewDepositToEscrowCommand(deliveryID kernel.UUID, caller kernel.Address, amount uint64) (DepositToEscrowCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return DepositToEscrowCommand{}, err
	}
	if amount == 0 {
		return DepositToEscrowCommand{}, errs.NewValueIsRequiredError("amount")
	}
	return DepositToEscrowCommand{deliveryTarget: target, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c DepositToEscrowCommand) Validate() error {
	return c.guard.Validate(ErrDepositToEscrowCommandIsNotConstructed)
}

func (c DepositToEscrowCommand) Amount() uint64 {
	return c.amount
}

// SettleEscrowCommand pays the whole escrow of a completed delivery to its driver.
type SettleEscrowCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewSettleEscrowCommand(deliveryID kernel.UUID, caller kernel.Address) (SettleEscrowCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return SettleEscrowCommand{}, err
	}
	return SettleEscrowCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c SettleEscrowCommand) Validate() error {
	return c.guard.Validate(ErrSettleEscrowCommandIsNotConstructed)
}

// RefundEscrowCommand returns the whole escrow of a completed delivery to its company.
type RefundEscrowCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewRefundEscrowCommand(deliveryID kernel.UUID, caller kernel.Address) (RefundEscrowCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return RefundEscrowCommand{}, err
	}
	return RefundEscrowCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RefundEscrowCommand) Validate() error {
	return c.guard.Validate(ErrRefundEscrowCommandIsNotConstructed)
}

// WithdrawFromEscrowCommand moves part of the escrow back to the company.
type WithdrawFromEscrowCommand struct {
	deliveryTarget
	amount uint64

	guard guard.ConstructorGuard
}

func NewWithdrawFromEscrowCommand(deliveryID kernel.UUID, caller kernel.Address, amount uint64) (WithdrawFromEscrowCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return WithdrawFromEscrowCommand{}, err
	}
	return WithdrawFromEscrowCommand{deliveryTarget: target, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c WithdrawFromEscrowCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawFromEscrowCommandIsNotConstructed)
}

func (c WithdrawFromEscrowCommand) Amount() uint64 {
	return c.amount
}

// PayTipCommand moves part of the escrow to the assigned driver.
type PayTipCommand struct {
	deliveryTarget
	amount uint64

	guard guard.ConstructorGuard
}

func NewPayTipCommand(deliveryID kernel.UUID, caller kernel.Address, amount uint64) (PayTipCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return PayTipCommand{}, err
	}
	return PayTipCommand{deliveryTarget: target, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c PayTipCommand) Validate() error {
	return c.guard.Validate(ErrPayTipCommandIsNotConstructed)
}

func (c PayTipCommand) Amount() uint64 {
	return c.amount
}
