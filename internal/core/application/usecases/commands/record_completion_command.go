package commands

import (
	"bytes"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRecordCompletionCommandIsNotConstructed = errors.New(
	"RecordCompletionCommand must be created via NewRecordCompletionCommand constructor",
)

// RecordCompletionCommand files a completed delivery in the records index.
// It is issued by the platform when a delivery.completed event arrives, never
// by an end user.
type RecordCompletionCommand struct {
	deliveryID kernel.UUID
	proof      []byte

	guard guard.ConstructorGuard
}

func NewRecordCompletionCommand(deliveryID kernel.UUID, proof []byte) (RecordCompletionCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return RecordCompletionCommand{}, err
	}
	if len(proof) == 0 {
		return RecordCompletionCommand{}, errs.NewValueIsRequiredError("proof of delivery")
	}
	return RecordCompletionCommand{
		deliveryID: deliveryID,
		proof:      bytes.Clone(proof),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordCompletionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCompletionCommandIsNotConstructed)
}

func (c RecordCompletionCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c RecordCompletionCommand) Proof() []byte {
	return bytes.Clone(c.proof)
}
