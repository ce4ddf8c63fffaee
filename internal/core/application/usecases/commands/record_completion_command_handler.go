package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/record"
	"logistics/internal/pkg/errs"
)

// RecordCompletionCommandHandler appends a record for a completed delivery to
// the collection of its company, opening the collection on first use.
// A second record for the same delivery fails with errs.DuplicateRecordError.
type RecordCompletionCommandHandler struct {
	uowFactory RecordsUoWFactory
}

func NewRecordCompletionCommandHandler(uowFactory RecordsUoWFactory) RecordCompletionCommandHandler {
	return RecordCompletionCommandHandler{uowFactory: uowFactory}
}

func (h RecordCompletionCommandHandler) Handle(ctx context.Context, cmd RecordCompletionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	work, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if !work.Status().IsFinished() {
		return errs.NewInvalidStateError("record completion", work.Status().String())
	}

	entry, err := record.NewDeliveryRecord(work.ID(), work.Company(), cmd.Proof())
	if err != nil {
		return err
	}

	recordsRepo := uow.DeliveryRecordsRepository()
	records, err := recordsRepo.GetByCompany(ctx, work.Company())
	isNew := errors.Is(err, errs.ErrObjectNotFound)
	if err != nil && !isNew {
		return err
	}
	if isNew {
		if records, err = record.NewDeliveryRecords(kernel.NewUUID(), work.Company()); err != nil {
			return err
		}
	}

	if err = records.Record(entry); err != nil {
		return err
	}

	if isNew {
		err = recordsRepo.Add(ctx, records)
	} else {
		err = recordsRepo.Update(ctx, records)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
