// Package record implements the append-only index of completed deliveries.
//
// Each company owns one DeliveryRecords collection. A record is filed once per
// delivery and never changed or removed.
package record

import (
	"bytes"
	"errors"
	"sort"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrDeliveryRecordIsNotConstructed  = errors.New("DeliveryRecord must be created via NewDeliveryRecord constructor")
	ErrDeliveryRecordsIsNotConstructed = errors.New("DeliveryRecords must be created via NewDeliveryRecords constructor")
)

// DeliveryRecord is an immutable audit entry for one completed delivery.
type DeliveryRecord struct {
	deliveryID kernel.UUID
	company    kernel.Address
	proof      []byte

	guard guard.ConstructorGuard
}

func NewDeliveryRecord(deliveryID kernel.UUID, company kernel.Address, proof []byte) (DeliveryRecord, error) {
	if err := deliveryID.Validate(); err != nil {
		return DeliveryRecord{}, err
	}
	if err := company.Validate(); err != nil {
		return DeliveryRecord{}, errs.NewValueIsRequiredErrorWithCause("company", err)
	}
	if len(proof) == 0 {
		return DeliveryRecord{}, errs.NewValueIsRequiredError("proof of delivery")
	}

	return DeliveryRecord{
		deliveryID: deliveryID,
		company:    company,
		proof:      bytes.Clone(proof),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (r DeliveryRecord) Validate() error {
	return r.guard.Validate(ErrDeliveryRecordIsNotConstructed)
}

// DeliveryID refers back to the delivery; the record does not own it.
func (r DeliveryRecord) DeliveryID() kernel.UUID {
	return r.deliveryID
}

func (r DeliveryRecord) Company() kernel.Address {
	return r.company
}

func (r DeliveryRecord) Proof() []byte {
	return bytes.Clone(r.proof)
}

// DeliveryRecords maps delivery ids to the records of one company.
type DeliveryRecords struct {
	id      kernel.UUID
	company kernel.Address
	entries map[kernel.UUID]DeliveryRecord

	// added holds records filed since the collection was loaded.
	added []DeliveryRecord

	guard guard.ConstructorGuard
}

func NewDeliveryRecords(id kernel.UUID, company kernel.Address) (*DeliveryRecords, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := company.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("company", err)
	}

	return &DeliveryRecords{
		id:      id,
		company: company,
		entries: make(map[kernel.UUID]DeliveryRecord),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryRecords rebuilds a collection from storage.
func RestoreDeliveryRecords(id kernel.UUID, company kernel.Address, entries []DeliveryRecord) (*DeliveryRecords, error) {
	records, err := NewDeliveryRecords(id, company)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err = records.insert(entry); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (rs *DeliveryRecords) Validate() error {
	if rs == nil {
		return ErrDeliveryRecordsIsNotConstructed
	}
	return rs.guard.Validate(ErrDeliveryRecordsIsNotConstructed)
}

func (rs *DeliveryRecords) ID() kernel.UUID {
	return rs.id
}

func (rs *DeliveryRecords) Company() kernel.Address {
	return rs.company
}

func (rs *DeliveryRecords) Len() int {
	return len(rs.entries)
}

// Record files r under its delivery id. An existing entry is never overwritten.
func (rs *DeliveryRecords) Record(r DeliveryRecord) error {
	if err := rs.insert(r); err != nil {
		return err
	}
	rs.added = append(rs.added, r)
	return nil
}

// Get looks a record up by delivery id.
func (rs *DeliveryRecords) Get(deliveryID kernel.UUID) (DeliveryRecord, bool) {
	r, ok := rs.entries[deliveryID]
	return r, ok
}

// Entries returns all records ordered by delivery id.
func (rs *DeliveryRecords) Entries() []DeliveryRecord {
	out := make([]DeliveryRecord, 0, len(rs.entries))
	for _, r := range rs.entries {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].deliveryID.String() < out[j].deliveryID.String()
	})
	return out
}

// Added returns the records filed since the collection was loaded, in filing order.
func (rs *DeliveryRecords) Added() []DeliveryRecord {
	return append([]DeliveryRecord(nil), rs.added...)
}

func (rs *DeliveryRecords) insert(r DeliveryRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.company.IsEqual(rs.company) {
		return errs.NewValueIsInvalidError("record company")
	}
	if _, exists := rs.entries[r.deliveryID]; exists {
		return errs.NewDuplicateRecordError(r.deliveryID.String())
	}
	rs.entries[r.deliveryID] = r
	return nil
}
