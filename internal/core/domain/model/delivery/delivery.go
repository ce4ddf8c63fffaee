package delivery

import (
	"bytes"
	"errors"
	"time"

	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrDeliveryWorkIsNotConstructed is returned when a DeliveryWork was not created
	// through NewDeliveryWork or RestoreDeliveryWork.
	ErrDeliveryWorkIsNotConstructed = errors.New("DeliveryWork must be created via NewDeliveryWork constructor")

	errNoActiveIssue    = errors.New("no active issue")
	errNoDriverAssigned = errors.New("no driver assigned")
	errDriverSlotEmpty  = errors.New("driver slot is not occupied")
)

// DeliveryWork is the aggregate root of the marketplace: a delivery task posted
// by a company, the escrow funding it and the driver performing it.
//
// Invariants:
//   - id, company, metadata and createdAt never change
//   - the escrow balance equals deposits minus disbursements and is never negative
//   - every disbursement leaves the aggregate as exactly one Payout
//   - status and driver slot are consistent (see Status.ValidateCanHaveDriver)
//   - operations check authorization and state before mutating anything
type DeliveryWork struct {
	id       kernel.UUID
	company  kernel.Address
	metadata Metadata
	driver   *kernel.Address
	cost     uint64
	escrow   coin.Balance
	status   Status
	proof    []byte

	createdAt time.Time
	dueDate   time.Time

	// version is the optimistic concurrency token assigned by storage.
	version uint64

	domainEvents []DomainEvent

	guard guard.ConstructorGuard
}

// NewDeliveryWork creates an Open delivery with an empty escrow and no driver.
//
// Example:
//
//	company, _ := kernel.NewAddress("0xc0ffee")
//	work, err := delivery.NewDeliveryWork(
//	    kernel.NewUUID(), company, delivery.Metadata{Method: []byte("van")},
//	    100, clock.Now(), clock.Now().Add(48*time.Hour),
//	)
func NewDeliveryWork(
	id kernel.UUID,
	company kernel.Address,
	metadata Metadata,
	cost uint64,
	createdAt time.Time,
	dueDate time.Time,
) (*DeliveryWork, error) {
	work := &DeliveryWork{
		metadata: metadata.clone(),
		cost:     cost,
		status:   Open,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		work.setID(id),
		work.setCompany(company),
		work.setCreatedAt(createdAt),
		work.setDueDate(dueDate),
	); err != nil {
		return nil, err
	}

	return work, nil
}

// RestoreDeliveryWork rebuilds a DeliveryWork from storage. It validates the
// same invariants as NewDeliveryWork plus status/driver consistency.
func RestoreDeliveryWork(
	id kernel.UUID,
	company kernel.Address,
	metadata Metadata,
	driver *kernel.Address,
	cost uint64,
	escrow coin.Balance,
	status Status,
	proof []byte,
	createdAt time.Time,
	dueDate time.Time,
	version uint64,
) (*DeliveryWork, error) {
	work := &DeliveryWork{
		metadata: metadata.clone(),
		cost:     cost,
		escrow:   escrow,
		proof:    bytes.Clone(proof),
		version:  version,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		work.setID(id),
		work.setCompany(company),
		work.setCreatedAt(createdAt),
		work.setDueDate(dueDate),
		work.setDriverAndStatus(driver, status),
	); err != nil {
		return nil, err
	}

	return work, nil
}

// Validate ensures the aggregate was built by a constructor.
func (d *DeliveryWork) Validate() error {
	if d == nil {
		return ErrDeliveryWorkIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryWorkIsNotConstructed)
}

func (d *DeliveryWork) IsEqual(other *DeliveryWork) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *DeliveryWork) ID() kernel.UUID {
	return d.id
}

func (d *DeliveryWork) Company() kernel.Address {
	return d.company
}

// Driver returns the assigned driver, or nil when the slot is empty.
func (d *DeliveryWork) Driver() *kernel.Address {
	if d.driver == nil {
		return nil
	}
	driver := *d.driver
	return &driver
}

func (d *DeliveryWork) Metadata() Metadata {
	return d.metadata.clone()
}

func (d *DeliveryWork) Cost() uint64 {
	return d.cost
}

// Escrow returns a snapshot of the escrow balance.
func (d *DeliveryWork) Escrow() coin.Balance {
	return d.escrow
}

func (d *DeliveryWork) Status() Status {
	return d.status
}

// Proof returns the last uploaded proof of delivery, or nil.
func (d *DeliveryWork) Proof() []byte {
	return bytes.Clone(d.proof)
}

func (d *DeliveryWork) CreatedAt() time.Time {
	return d.createdAt
}

func (d *DeliveryWork) DueDate() time.Time {
	return d.dueDate
}

func (d *DeliveryWork) Version() uint64 {
	return d.version
}

// Details is the pure read exposed to every caller.
func (d *DeliveryWork) Details() Details {
	return Details{Finished: d.status.IsFinished(), Cost: d.cost}
}

// DomainEvents returns the events raised since the aggregate was loaded.
func (d *DeliveryWork) DomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), d.domainEvents...)
}

// ClearDomainEvents drops raised events once they have been handed to the outbox.
func (d *DeliveryWork) ClearDomainEvents() {
	d.domainEvents = nil
}

func (d *DeliveryWork) raise(event DomainEvent) {
	d.domainEvents = append(d.domainEvents, event)
}

func (d *DeliveryWork) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryWork) setCompany(company kernel.Address) error {
	if err := company.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("company", err)
	}
	d.company = company
	return nil
}

func (d *DeliveryWork) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	d.createdAt = createdAt
	return nil
}

func (d *DeliveryWork) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("due date")
	}
	d.dueDate = dueDate
	return nil
}

func (d *DeliveryWork) setDriverAndStatus(driver *kernel.Address, status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveDriver(driver != nil); err != nil {
		return err
	}
	if driver != nil {
		if err := driver.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driver", err)
		}
		copied := *driver
		d.driver = &copied
	}
	d.status = status
	return nil
}
