package delivery

import (
	"bytes"
	"time"

	"logistics/internal/core/domain/model/access"
	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// DepositToEscrow adds the coin to the escrow. Company only.
func (d *DeliveryWork) DepositToEscrow(caller kernel.Address, c coin.Coin) error {
	if err := access.RequireCompany(d, caller, "deposit to escrow"); err != nil {
		return err
	}
	return d.escrow.Join(c)
}

// AssignDriver puts driver in the slot, replacing any previous driver. Company only.
func (d *DeliveryWork) AssignDriver(caller kernel.Address, driver kernel.Address) error {
	if err := access.RequireCompany(d, caller, "assign driver"); err != nil {
		return err
	}
	if err := driver.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver", err)
	}

	status, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = status
	d.driver = &driver
	return nil
}

// UnassignDriver clears the driver slot. Company only.
func (d *DeliveryWork) UnassignDriver(caller kernel.Address) error {
	if err := access.RequireCompany(d, caller, "unassign driver"); err != nil {
		return err
	}

	status, err := d.status.Unassign()
	if err != nil {
		return err
	}

	d.status = status
	d.driver = nil
	return nil
}

// ApplyForDelivery puts the caller in the driver slot. The slot must already be
// occupied: an Open delivery rejects applications.
func (d *DeliveryWork) ApplyForDelivery(caller kernel.Address) error {
	if err := caller.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	if d.driver == nil {
		return errs.NewInvalidStateErrorWithCause("apply for delivery", d.status.String(), errDriverSlotEmpty)
	}

	d.driver = &caller
	return nil
}

// MarkComplete records that the assigned driver finished the delivery.
func (d *DeliveryWork) MarkComplete(caller kernel.Address) error {
	if err := access.RequireDriver(d, caller, "mark complete"); err != nil {
		return err
	}

	status, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = status
	return nil
}

// UploadProof stores the proof of delivery, marks the delivery complete and
// settles the whole escrow to the driver, as one step. It raises DeliveryCompleted.
func (d *DeliveryWork) UploadProof(caller kernel.Address, proof []byte) (Payout, error) {
	if err := access.RequireDriver(d, caller, "upload proof"); err != nil {
		return Payout{}, err
	}
	if len(proof) == 0 {
		return Payout{}, errs.NewValueIsRequiredError("proof of delivery")
	}

	status, err := d.status.Complete()
	if err != nil {
		return Payout{}, err
	}

	d.proof = bytes.Clone(proof)
	d.status = status

	payout, err := d.settle()
	if err != nil {
		return Payout{}, err
	}

	d.raise(DeliveryCompleted{
		deliveryID: d.id,
		company:    d.company,
		driver:     payout.Recipient(),
		proof:      bytes.Clone(proof),
		amount:     payout.Amount(),
	})
	return payout, nil
}

// ReportIssues moves an in-progress delivery to Disputed. Driver only.
func (d *DeliveryWork) ReportIssues(caller kernel.Address) error {
	if err := access.RequireDriver(d, caller, "report issues"); err != nil {
		return err
	}

	status, err := d.status.Dispute()
	if err != nil {
		return err
	}

	d.status = status
	return nil
}

// ResolveIssues reopens a disputed delivery without paying anyone. Company only;
// a driver must still be assigned.
func (d *DeliveryWork) ResolveIssues(caller kernel.Address) error {
	if err := access.RequireCompany(d, caller, "resolve issues"); err != nil {
		return err
	}

	status, err := d.status.Resolve()
	if err != nil {
		return err
	}
	if d.driver == nil {
		return errs.NewInvalidStateErrorWithCause("resolve issues", d.status.String(), errNoDriverAssigned)
	}

	d.status = status
	return nil
}

// ExtendDueDate replaces the due date. Company only.
func (d *DeliveryWork) ExtendDueDate(caller kernel.Address, dueDate time.Time) error {
	if err := access.RequireCompany(d, caller, "extend due date"); err != nil {
		return err
	}
	return d.setDueDate(dueDate)
}

// UpdatePrice replaces the delivery cost. Company only.
func (d *DeliveryWork) UpdatePrice(caller kernel.Address, cost uint64) error {
	if err := access.RequireCompany(d, caller, "update price"); err != nil {
		return err
	}

	d.cost = cost
	return nil
}
