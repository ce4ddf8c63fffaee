// Package profile holds the per-driver profile and its rating. Profiles are
// independent of the delivery lifecycle.
package profile

import (
	"errors"
	"math"
	"strings"

	"logistics/internal/core/domain/model/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MaxDisplayFieldLength bounds name and contact.
const MaxDisplayFieldLength = 256

var ErrDriverProfileIsNotConstructed = errors.New("DriverProfile must be created via NewDriverProfile constructor")

// DriverProfile is the public card of a driver. Only the driver it describes
// may change its rating.
type DriverProfile struct {
	id      kernel.UUID
	driver  kernel.Address
	name    string
	contact string
	rating  uint64
	version uint64

	guard guard.ConstructorGuard
}

func NewDriverProfile(id kernel.UUID, driver kernel.Address, name, contact string) (*DriverProfile, error) {
	p := &DriverProfile{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setDriver(driver),
		p.setName(name),
		p.setContact(contact),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func RestoreDriverProfile(
	id kernel.UUID,
	driver kernel.Address,
	name, contact string,
	rating uint64,
	version uint64,
) (*DriverProfile, error) {
	p, err := NewDriverProfile(id, driver, name, contact)
	if err != nil {
		return nil, err
	}
	p.rating = rating
	p.version = version
	return p, nil
}

func (p *DriverProfile) Validate() error {
	if p == nil {
		return ErrDriverProfileIsNotConstructed
	}
	return p.guard.Validate(ErrDriverProfileIsNotConstructed)
}

func (p *DriverProfile) ID() kernel.UUID {
	return p.id
}

func (p *DriverProfile) Driver() kernel.Address {
	return p.driver
}

func (p *DriverProfile) Name() string {
	return p.name
}

func (p *DriverProfile) Contact() string {
	return p.contact
}

func (p *DriverProfile) Rating() uint64 {
	return p.rating
}

func (p *DriverProfile) Version() uint64 {
	return p.version
}

// SetRating overwrites the rating.
func (p *DriverProfile) SetRating(caller kernel.Address, value uint64) error {
	if err := access.RequireOwner(p.driver, caller, "set rating"); err != nil {
		return err
	}
	p.rating = value
	return nil
}

// AddRating adds delta to the rating. A sum that would overflow is rejected.
func (p *DriverProfile) AddRating(caller kernel.Address, delta uint64) error {
	if err := access.RequireOwner(p.driver, caller, "add rating"); err != nil {
		return err
	}
	if delta > math.MaxUint64-p.rating {
		return errs.NewValueIsOutOfRangeError("rating delta", delta, uint64(0), math.MaxUint64-p.rating)
	}
	p.rating += delta
	return nil
}

func (p *DriverProfile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DriverProfile) setDriver(driver kernel.Address) error {
	if err := driver.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	p.driver = driver
	return nil
}

func (p *DriverProfile) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > MaxDisplayFieldLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, MaxDisplayFieldLength)
	}
	p.name = name
	return nil
}

func (p *DriverProfile) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if len(contact) > MaxDisplayFieldLength {
		return errs.NewValueIsOutOfRangeError("contact length", len(contact), 0, MaxDisplayFieldLength)
	}
	p.contact = contact
	return nil
}
