package delivery

import (
	"logistics/internal/core/domain/model/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Settle drains the whole escrow to the assigned driver of a completed
// delivery. Company only.
func (d *DeliveryWork) Settle(caller kernel.Address) (Payout, error) {
	if err := access.RequireCompany(d, caller, "settle"); err != nil {
		return Payout{}, err
	}
	if !d.status.IsFinished() {
		return Payout{}, errs.NewInvalidStateError("settle", d.status.String())
	}
	return d.settle()
}

// Refund drains the whole escrow back to the company. Like Settle it requires
// a completed delivery. Company only.
func (d *DeliveryWork) Refund(caller kernel.Address) (Payout, error) {
	if err := access.RequireCompany(d, caller, "refund"); err != nil {
		return Payout{}, err
	}
	if !d.status.IsFinished() {
		return Payout{}, errs.NewInvalidStateError("refund", d.status.String())
	}
	return newPayout(PayoutRefund, d.company, d.escrow.Drain()), nil
}

// Withdraw moves amount from the escrow to the company in any lifecycle
// state, including during a dispute. Company only.
func (d *DeliveryWork) Withdraw(caller kernel.Address, amount uint64) (Payout, error) {
	if err := access.RequireCompany(d, caller, "withdraw"); err != nil {
		return Payout{}, err
	}

	c, err := d.escrow.Take(amount)
	if err != nil {
		return Payout{}, err
	}
	return newPayout(PayoutWithdrawal, d.company, c), nil
}

// PayTip moves amount from the escrow to the assigned driver. The driver
// authorizes the tip to themselves.
func (d *DeliveryWork) PayTip(caller kernel.Address, amount uint64) (Payout, error) {
	if err := access.RequireDriver(d, caller, "pay tip"); err != nil {
		return Payout{}, err
	}

	c, err := d.escrow.Take(amount)
	if err != nil {
		return Payout{}, err
	}
	return newPayout(PayoutTip, *d.driver, c), nil
}

// settle drains the escrow to the driver of a finished delivery and back to
// the company otherwise. Both callers require a finished delivery, so the
// company branch is never taken through the public surface.
func (d *DeliveryWork) settle() (Payout, error) {
	if !d.status.IsFinished() {
		return newPayout(PayoutRefund, d.company, d.escrow.Drain()), nil
	}
	if d.driver == nil {
		return Payout{}, errs.NewInvalidStateErrorWithCause("settle", d.status.String(), errNoDriverAssigned)
	}
	return newPayout(PayoutSettlement, *d.driver, d.escrow.Drain()), nil
}
