// Package kafka consumes delivery.completed events and files them in the
// delivery records index.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/messages"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

const defaultRetryDelay = time.Second

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RecordCompletionHandler files one completion.
type RecordCompletionHandler interface {
	Handle(ctx context.Context, cmd commands.RecordCompletionCommand) error
}

// CompletionConsumer commits an offset only after the record is stored, or
// after deciding the message can never be stored. Redelivered events hit the
// DuplicateRecord check and are committed as already processed.
type CompletionConsumer struct {
	r          messageReader
	handler    RecordCompletionHandler
	logger     *slog.Logger
	retryDelay time.Duration
}

func NewCompletionConsumer(
	brokers []string,
	topic string,
	groupID string,
	handler RecordCompletionHandler,
	logger *slog.Logger,
) *CompletionConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return newCompletionConsumerWithReader(kafka.NewReader(cfg), handler, logger)
}

func newCompletionConsumerWithReader(
	r messageReader,
	handler RecordCompletionHandler,
	logger *slog.Logger,
) *CompletionConsumer {
	return &CompletionConsumer{
		r:          r,
		handler:    handler,
		logger:     logger.With("component", "completion_consumer"),
		retryDelay: defaultRetryDelay,
	}
}

func (c *CompletionConsumer) Close() error {
	return c.r.Close()
}

// Run consumes until ctx is cancelled, then returns nil. Failures that may
// succeed later (storage outages) are retried on the same message; any other
// fetch or commit failure is returned.
func (c *CompletionConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "fetch message")
		}

		if err := c.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "commit message")
		}
	}
}

// process returns only when the message is handled or ctx is done.
func (c *CompletionConsumer) process(ctx context.Context, msg kafka.Message) error {
	for {
		err := c.handle(ctx, msg)
		if err == nil {
			return nil
		}

		c.logger.Error("failed to record completion, retrying",
			"offset", msg.Offset,
			"partition", msg.Partition,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
}

// handle returns an error only for failures worth retrying.
func (c *CompletionConsumer) handle(ctx context.Context, msg kafka.Message) error {
	cmd, err := decode(msg.Value)
	if err != nil {
		c.logger.Warn("skipping malformed completion event", "offset", msg.Offset, "error", err)
		return nil
	}

	err = c.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
		c.logger.Info("completion recorded", "delivery_id", cmd.DeliveryID().String())
		return nil
	case errors.Is(err, errs.ErrDuplicateRecord):
		c.logger.Debug("completion already recorded", "delivery_id", cmd.DeliveryID().String())
		return nil
	case isPermanent(err):
		c.logger.Warn("skipping completion event", "delivery_id", cmd.DeliveryID().String(), "error", err)
		return nil
	default:
		return err
	}
}

func decode(value []byte) (commands.RecordCompletionCommand, error) {
	body, err := messages.DecodeDeliveryCompleted(value)
	if err != nil {
		return commands.RecordCompletionCommand{}, err
	}

	deliveryID, err := kernel.UUIDFromString(body.DeliveryID)
	if err != nil {
		return commands.RecordCompletionCommand{}, err
	}

	return commands.NewRecordCompletionCommand(deliveryID, body.Proof)
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrInvalidState) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired)
}
