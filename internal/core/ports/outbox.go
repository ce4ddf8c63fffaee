package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event serialized inside the transaction that
// raised it, waiting to be relayed to the broker.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
	SentAt      *time.Time
}

// OutboxRepository stores outbox messages.
type OutboxRepository interface {
	Add(ctx context.Context, msg OutboxMessage) error

	// GetPending returns up to limit unsent messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkAsSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error
}

// MessagePublisher delivers a message to a broker topic.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}
