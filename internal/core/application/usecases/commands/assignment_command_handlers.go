package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// AssignmentCommandHandler manages the driver slot of deliveries.
type AssignmentCommandHandler struct {
	mutator deliveryMutator
}

func NewAssignmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AssignmentCommandHandler {
	return AssignmentCommandHandler{mutator: newDeliveryMutator(uowFactory, clock, nil)}
}

func (h AssignmentCommandHandler) Assign(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.AssignDriver(cmd.Caller(), cmd.Driver()))
	})
	return err
}

func (h AssignmentCommandHandler) Unassign(ctx context.Context, cmd UnassignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.UnassignDriver(cmd.Caller()))
	})
	return err
}

func (h AssignmentCommandHandler) Apply(ctx context.Context, cmd ApplyForDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.ApplyForDelivery(cmd.Caller()))
	})
	return err
}
