package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateDriverProfileCommandIsNotConstructed = errors.New(
		"CreateDriverProfileCommand must be created via NewCreateDriverProfileCommand constructor",
	)
	ErrRateDriverCommandIsNotConstructed = errors.New(
		"RateDriverCommand must be created via NewSetRatingCommand or NewAddRatingCommand",
	)
)

// CreateDriverProfileCommand registers the caller's own driver profile.
type CreateDriverProfileCommand struct {
	profileID kernel.UUID
	driver    kernel.Address
	name      string
	contact   string

	guard guard.ConstructorGuard
}

func NewCreateDriverProfileCommand(
	profileID kernel.UUID,
	driver kernel.Address,
	name, contact string,
) (CreateDriverProfileCommand, error) {
	if err := profileID.Validate(); err != nil {
		return CreateDriverProfileCommand{}, err
	}
	if err := driver.Validate(); err != nil {
		return CreateDriverProfileCommand{}, errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	return CreateDriverProfileCommand{
		profileID: profileID,
		driver:    driver,
		name:      name,
		contact:   contact,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverProfileCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverProfileCommandIsNotConstructed)
}

func (c CreateDriverProfileCommand) ProfileID() kernel.UUID {
	return c.profileID
}

func (c CreateDriverProfileCommand) Driver() kernel.Address {
	return c.driver
}

func (c CreateDriverProfileCommand) Name() string {
	return c.name
}

func (c CreateDriverProfileCommand) Contact() string {
	return c.contact
}

// RateDriverCommand changes the rating of a driver profile, either by
// overwriting it or by adding to it.
type RateDriverCommand struct {
	profileID kernel.UUID
	caller    kernel.Address
	value     uint64
	additive  bool

	guard guard.ConstructorGuard
}

// NewSetRatingCommand overwrites the rating with value.
func NewSetRatingCommand(profileID kernel.UUID, caller kernel.Address, value uint64) (RateDriverCommand, error) {
	return newRateDriverCommand(profileID, caller, value, false)
}

// NewAddRatingCommand adds delta to the rating.
func NewAddRatingCommand(profileID kernel.UUID, caller kernel.Address, delta uint64) (RateDriverCommand, error) {
	return newRateDriverCommand(profileID, caller, delta, true)
}

func newRateDriverCommand(profileID kernel.UUID, caller kernel.Address, value uint64, additive bool) (RateDriverCommand, error) {
	if err := profileID.Validate(); err != nil {
		return RateDriverCommand{}, err
	}
	if err := caller.Validate(); err != nil {
		return RateDriverCommand{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	return RateDriverCommand{
		profileID: profileID,
		caller:    caller,
		value:     value,
		additive:  additive,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RateDriverCommand) Validate() error {
	return c.guard.Validate(ErrRateDriverCommandIsNotConstructed)
}

func (c RateDriverCommand) ProfileID() kernel.UUID {
	return c.profileID
}

func (c RateDriverCommand) Caller() kernel.Address {
	return c.caller
}

func (c RateDriverCommand) Value() uint64 {
	return c.value
}

// IsAdditive reports whether Value is a delta rather than the new rating.
func (c RateDriverCommand) IsAdditive() bool {
	return c.additive
}
