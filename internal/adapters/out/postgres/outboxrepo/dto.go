// Package outboxrepo stores domain events written in the same transaction as
// the state change that raised them.
package outboxrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is a row of the outbox table.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	EventName   string     `gorm:"type:varchar(128);not null"`
	Payload     []byte     `gorm:"type:bytea;not null"`
	OccurredAt  time.Time  `gorm:"type:timestamptz;not null;index"`
	SentAt      *time.Time `gorm:"type:timestamptz;index"`
}

// TableName overrides gorm's default naming.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(msg ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          msg.ID.Bytes(),
		AggregateID: msg.AggregateID.Bytes(),
		EventName:   msg.EventName,
		Payload:     msg.Payload,
		OccurredAt:  msg.OccurredAt.UTC(),
		SentAt:      msg.SentAt,
	}
}

func toPort(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventName:   dto.EventName,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
		SentAt:      dto.SentAt,
	}, nil
}
