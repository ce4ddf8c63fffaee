package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// CreateDeliveryCommandHandler persists a new Open delivery with an empty
// escrow. The creation timestamp comes from the injected clock.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateDeliveryCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	work, err := delivery.NewDeliveryWork(
		cmd.DeliveryID(),
		cmd.Company(),
		cmd.Metadata(),
		cmd.Cost(),
		h.clock.Now(),
		cmd.DueDate(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, work); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
