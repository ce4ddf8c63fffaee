// Package deliveryrepo persists DeliveryWork aggregates in PostgreSQL. It maps
// the aggregate to a single row and guards updates with the aggregate version.
package deliveryrepo

import (
	"time"

	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the database row of a delivery.
type DeliveryDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Company   string      `gorm:"type:varchar(128);not null;index"`
	Driver    *string     `gorm:"type:varchar(128);index"`
	Metadata  MetadataDTO `gorm:"embedded;embeddedPrefix:meta_"`
	Cost      uint64      `gorm:"type:bigint;not null"`
	Escrow    uint64      `gorm:"type:bigint;not null"`
	Status    int         `gorm:"type:smallint;not null;index"`
	Proof     []byte      `gorm:"type:bytea"`
	CreatedAt time.Time   `gorm:"type:timestamptz;not null"`
	DueDate   time.Time   `gorm:"type:timestamptz;not null"`
	Version   uint64      `gorm:"type:bigint;not null"`
}

// TableName overrides gorm's default naming.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// MetadataDTO holds the opaque descriptive payloads, embedded in the delivery row.
type MetadataDTO struct {
	SenderName     []byte `gorm:"type:bytea"`
	ReceiverName   []byte `gorm:"type:bytea"`
	PickupAddress  []byte `gorm:"type:bytea"`
	DropoffAddress []byte `gorm:"type:bytea"`
	Method         []byte `gorm:"type:bytea"`
	Description    []byte `gorm:"type:bytea"`
	Priority       []byte `gorm:"type:bytea"`
}

func fromDomain(work *delivery.DeliveryWork) DeliveryDTO {
	var driver *string
	if d := work.Driver(); d != nil {
		s := d.String()
		driver = &s
	}

	m := work.Metadata()
	return DeliveryDTO{
		ID:      work.ID().Bytes(),
		Company: work.Company().String(),
		Driver:  driver,
		Metadata: MetadataDTO{
			SenderName:     m.SenderName,
			ReceiverName:   m.ReceiverName,
			PickupAddress:  m.PickupAddress,
			DropoffAddress: m.DropoffAddress,
			Method:         m.Method,
			Description:    m.Description,
			Priority:       m.Priority,
		},
		Cost:      work.Cost(),
		Escrow:    work.Escrow().Value(),
		Status:    int(work.Status()),
		Proof:     work.Proof(),
		CreatedAt: work.CreatedAt().UTC(),
		DueDate:   work.DueDate().UTC(),
		Version:   work.Version(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.DeliveryWork, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	company, err := kernel.NewAddress(dto.Company)
	if err != nil {
		return nil, err
	}

	var driver *kernel.Address
	if dto.Driver != nil {
		d, driverErr := kernel.NewAddress(*dto.Driver)
		if driverErr != nil {
			return nil, driverErr
		}
		driver = &d
	}

	metadata := delivery.Metadata{
		SenderName:     dto.Metadata.SenderName,
		ReceiverName:   dto.Metadata.ReceiverName,
		PickupAddress:  dto.Metadata.PickupAddress,
		DropoffAddress: dto.Metadata.DropoffAddress,
		Method:         dto.Metadata.Method,
		Description:    dto.Metadata.Description,
		Priority:       dto.Metadata.Priority,
	}

	return delivery.RestoreDeliveryWork(
		id,
		company,
		metadata,
		driver,
		dto.Cost,
		coin.NewBalance(dto.Escrow),
		delivery.Status(dto.Status),
		dto.Proof,
		dto.CreatedAt,
		dto.DueDate,
		dto.Version,
	)
}
