// Package recordrepo persists the company-scoped delivery records index.
// A collection row owns its entries; each delivery can be recorded once,
// enforced by the primary key on delivery_id.
package recordrepo

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/record"

	"github.com/google/uuid"
)

// DeliveryRecordsDTO is the collection header, one per company.
type DeliveryRecordsDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Company string    `gorm:"type:varchar(128);not null;uniqueIndex"`
}

// TableName overrides gorm's default naming.
func (DeliveryRecordsDTO) TableName() string {
	return "delivery_record_collections"
}

// DeliveryRecordDTO is a single archived completion.
type DeliveryRecordDTO struct {
	DeliveryID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Company      string    `gorm:"type:varchar(128);not null"`
	Proof        []byte    `gorm:"type:bytea;not null"`
}

// TableName overrides gorm's default naming.
func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

func entryFromDomain(collectionID kernel.UUID, r record.DeliveryRecord) DeliveryRecordDTO {
	return DeliveryRecordDTO{
		DeliveryID:   r.DeliveryID().Bytes(),
		CollectionID: collectionID.Bytes(),
		Company:      r.Company().String(),
		Proof:        r.Proof(),
	}
}

func entriesFromDomain(collectionID kernel.UUID, rs []record.DeliveryRecord) []DeliveryRecordDTO {
	dtos := make([]DeliveryRecordDTO, 0, len(rs))
	for _, r := range rs {
		dtos = append(dtos, entryFromDomain(collectionID, r))
	}
	return dtos
}

func entryToDomain(dto DeliveryRecordDTO) (record.DeliveryRecord, error) {
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return record.DeliveryRecord{}, err
	}

	company, err := kernel.NewAddress(dto.Company)
	if err != nil {
		return record.DeliveryRecord{}, err
	}

	return record.NewDeliveryRecord(deliveryID, company, dto.Proof)
}

func toDomain(header DeliveryRecordsDTO, entries []DeliveryRecordDTO) (*record.DeliveryRecords, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}

	company, err := kernel.NewAddress(header.Company)
	if err != nil {
		return nil, err
	}

	restored := make([]record.DeliveryRecord, 0, len(entries))
	for _, dto := range entries {
		r, entryErr := entryToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		restored = append(restored, r)
	}

	return record.RestoreDeliveryRecords(id, company, restored)
}
