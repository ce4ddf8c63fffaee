package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// ErrNoPendingMessages is returned when the outbox has nothing to relay.
var ErrNoPendingMessages = errors.New("no pending outbox messages")

// RelayOutboxCommandHandler publishes pending outbox messages in the order
// they were written and marks each one sent. Messages are keyed by aggregate
// id so that events of one delivery stay ordered within a partition.
//
// Publishing happens before the sent mark is committed, so a crash between
// the two publishes the message again; consumers must tolerate redelivery.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	topics     map[string]string
	clock      kernel.Clock
	observer   Observer
}

// NewRelayOutboxCommandHandler routes each event name to the topic in topics.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
	topics map[string]string,
	clock kernel.Clock,
	observer Observer,
) RelayOutboxCommandHandler {
	if observer == nil {
		observer = NopObserver{}
	}
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		topics:     topics,
		clock:      clock,
		observer:   observer,
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	pending, err := outboxRepo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return ErrNoPendingMessages
	}

	published := 0
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publish(ctx, msg); publishErr != nil {
			break
		}
		if err = outboxRepo.MarkAsSent(ctx, msg.ID, h.clock.Now()); err != nil {
			return err
		}
		published++
	}

	if published > 0 {
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		h.observer.OutboxPublished(published)
	}

	return publishErr
}

func (h RelayOutboxCommandHandler) publish(ctx context.Context, msg ports.OutboxMessage) error {
	topic, ok := h.topics[msg.EventName]
	if !ok {
		return fmt.Errorf("no topic configured for event %s", msg.EventName)
	}
	return h.publisher.Publish(ctx, topic, []byte(msg.AggregateID.String()), msg.Payload)
}
