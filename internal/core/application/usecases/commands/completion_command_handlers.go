package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// CompletionCommandHandler drives a delivery from in-progress to completed,
// through the optional dispute cycle.
//
// UploadProof is the one step that completes the delivery, settles the escrow
// to the driver and queues the delivery.completed event for the records index.
type CompletionCommandHandler struct {
	mutator deliveryMutator
}

func NewCompletionCommandHandler(uowFactory UoWFactory, clock kernel.Clock, observer Observer) CompletionCommandHandler {
	return CompletionCommandHandler{mutator: newDeliveryMutator(uowFactory, clock, observer)}
}

func (h CompletionCommandHandler) MarkComplete(ctx context.Context, cmd MarkCompleteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.MarkComplete(cmd.Caller()))
	})
	return err
}

func (h CompletionCommandHandler) UploadProof(ctx context.Context, cmd UploadProofCommand) (delivery.Payout, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Payout{}, err
	}

	return first(h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return single(work.UploadProof(cmd.Caller(), cmd.Proof()))
	}))
}

func (h CompletionCommandHandler) ReportIssues(ctx context.Context, cmd ReportIssuesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.ReportIssues(cmd.Caller()))
	})
	return err
}

func (h CompletionCommandHandler) ResolveIssues(ctx context.Context, cmd ResolveIssuesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.mutator.mutate(ctx, cmd.DeliveryID(), func(work *delivery.DeliveryWork) ([]delivery.Payout, error) {
		return none(work.ResolveIssues(cmd.Caller()))
	})
	return err
}
