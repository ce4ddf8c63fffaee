package commands

import (
	"bytes"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MaxProofSize bounds the proof of delivery payload.
const MaxProofSize = 64 << 10

var (
	ErrMarkCompleteCommandIsNotConstructed = errors.New(
		"MarkCompleteCommand must be created via NewMarkCompleteCommand constructor",
	)
	ErrUploadProofCommandIsNotConstructed = errors.New(
		"UploadProofCommand must be created via NewUploadProofCommand constructor",
	)
	ErrReportIssuesCommandIsNotConstructed = errors.New(
		"ReportIssuesCommand must be created via NewReportIssuesCommand constructor",
	)
	ErrResolveIssuesCommandIsNotConstructed = errors.New(
		"ResolveIssuesCommand must be created via NewResolveIssuesCommand constructor",
	)
)

type MarkCompleteCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewMarkCompleteCommand(deliveryID kernel.UUID, caller kernel.Address) (MarkCompleteCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return MarkCompleteCommand{}, err
	}
	return MarkCompleteCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkCompleteCommandIsNotConstructed)
}

// UploadProofCommand attests a delivery with an opaque proof and settles it.
type UploadProofCommand struct {
	deliveryTarget
	proof []byte

	guard guard.ConstructorGuard
}

func NewUploadProofCommand(deliveryID kernel.UUID, caller kernel.Address, proof []byte) (UploadProofCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return UploadProofCommand{}, err
	}
	if len(proof) == 0 {
		return UploadProofCommand{}, errs.NewValueIsRequiredError("proof of delivery")
	}
	if len(proof) > MaxProofSize {
		return UploadProofCommand{}, errs.NewValueIsOutOfRangeError("proof size", len(proof), 1, MaxProofSize)
	}
	return UploadProofCommand{
		deliveryTarget: target,
		proof:          bytes.Clone(proof),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UploadProofCommand) Validate() error {
	return c.guard.Validate(ErrUploadProofCommandIsNotConstructed)
}

func (c UploadProofCommand) Proof() []byte {
	return bytes.Clone(c.proof)
}

type ReportIssuesCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewReportIssuesCommand(deliveryID kernel.UUID, caller kernel.Address) (ReportIssuesCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return ReportIssuesCommand{}, err
	}
	return ReportIssuesCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c ReportIssuesCommand) Validate() error {
	return c.guard.Validate(ErrReportIssuesCommandIsNotConstructed)
}

type ResolveIssuesCommand struct {
	deliveryTarget

	guard guard.ConstructorGuard
}

func NewResolveIssuesCommand(deliveryID kernel.UUID, caller kernel.Address) (ResolveIssuesCommand, error) {
	target, err := newDeliveryTarget(deliveryID, caller)
	if err != nil {
		return ResolveIssuesCommand{}, err
	}
	return ResolveIssuesCommand{deliveryTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveIssuesCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssuesCommandIsNotConstructed)
}
