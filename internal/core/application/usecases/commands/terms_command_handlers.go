package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// TermsCommandHandler lets the company change the due date and price.
type TermsCommandHandler struct {
	mutator deliveryMutator
}

func NewTermsCommandHandler(uowFactory UoWFactory, clock kernel.Clock) TermsCommandHandler {
	return TermsCommandHandler{mutator: newDeliveryMutator(uowFactory, clock, nil)}
}

func (h TermsCommandHandler) ExtendDueDate(ctx context.Context, cmd ExtendDueDateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.ExtendDueDate(cmd.Caller(), cmd.DueDate()))
	})
	return err
}

func (h TermsCommandHandler) UpdatePrice(ctx context.Context, cmd UpdatePriceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.UpdatePrice(cmd.Caller(), cmd.Cost()))
	})
	return err
}
