package commands

import (
	"context"

	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// EscrowCommandHandler handles every command that moves escrow funds. Each
// disbursement is credited to its recipient's account in the same transaction
// that debits the escrow.
//
// Example:
//
//	handler := NewEscrowCommandHandler(uowFactory, kernel.SystemClock{}, metrics)
//	cmd, _ := NewWithdrawFromEscrowCommand(deliveryID, company, 20)
//	payout, err := handler.Withdraw(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientFunds) {
//	    // escrow is unchanged
//	}
type EscrowCommandHandler struct {
	mutator  deliveryMutator
	observer Observer
}

func NewEscrowCommandHandler(uowFactory UoWFactory, clock kernel.Clock, observer Observer) EscrowCommandHandler {
	m := newDeliveryMutator(uowFactory, clock, observer)
	return EscrowCommandHandler{mutator: m, observer: m.observer}
}

func (h EscrowCommandHandler) Deposit(ctx context.Context, cmd DepositToEscrowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.DepositToEscrow(cmd.Caller(), coin.New(cmd.Amount())))
	})
	if err != nil {
		return err
	}

	h.observer.EscrowDeposited(cmd.Amount())
	return nil
}

func (h EscrowCommandHandler) Settle(ctx context.Context, cmd SettleEscrowCommand) (delivery.Payout, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Payout{}, err
	}

	return first(h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return single(work.Settle(cmd.Caller()))
	}))
}

func (h EscrowCommandHandler) Refund(ctx context.Context, cmd RefundEscrowCommand) (delivery.Payout, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Payout{}, err
	}

	return first(h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return single(work.Refund(cmd.Caller()))
	}))
}

func (h EscrowCommandHandler) Withdraw(ctx context.Context, cmd WithdrawFromEscrowCommand) (delivery.Payout, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Payout{}, err
	}

	return first(h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return single(work.Withdraw(cmd.Caller(), cmd.Amount()))
	}))
}

func (h EscrowCommandHandler) PayTip(ctx context.Context, cmd PayTipCommand) (delivery.Payout, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Payout{}, err
	}

	return first(h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return single(work.PayTip(cmd.Caller(), cmd.Amount()))
	}))
}

func first(payouts []delivery.Payout, err error) (delivery.Payout, error) {
	if err != nil || len(payouts) == 0 {
		return delivery.Payout{}, err
	}
	return payouts[0], nil
}
