package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand posts a new delivery task on behalf of a company.
//
// Example:
//
//	id := kernel.NewUUID()
//	cmd, err := NewCreateDeliveryCommand(id, company, delivery.Metadata{Method: []byte("van")}, 100, due)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	company    kernel.Address
	metadata   delivery.Metadata
	cost       uint64
	dueDate    time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates the request. The caller becomes the
// owning company of the delivery.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	company kernel.Address,
	metadata delivery.Metadata,
	cost uint64,
	dueDate time.Time,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		metadata: metadata,
		cost:     cost,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCompany(company),
		cmd.setDueDate(dueDate),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c CreateDeliveryCommand) Company() kernel.Address {
	return c.company
}

func (c CreateDeliveryCommand) Metadata() delivery.Metadata {
	return c.metadata
}

func (c CreateDeliveryCommand) Cost() uint64 {
	return c.cost
}

func (c CreateDeliveryCommand) DueDate() time.Time {
	return c.dueDate
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setCompany(company kernel.Address) error {
	if err := company.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("company", err)
	}
	c.company = company
	return nil
}

func (c *CreateDeliveryCommand) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("due date")
	}
	c.dueDate = dueDate
	return nil
}
