package commands

import (
	"context"
	"errors"

	"logistics/internal/core/application/messages"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// deliveryTarget identifies the delivery an operation acts on and who asks.
type deliveryTarget struct {
	deliveryID kernel.UUID
	caller     kernel.Address
}

func newDeliveryTarget(deliveryID kernel.UUID, caller kernel.Address) (deliveryTarget, error) {
	if err := deliveryID.Validate(); err != nil {
		return deliveryTarget{}, err
	}
	if err := caller.Validate(); err != nil {
		return deliveryTarget{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	return deliveryTarget{deliveryID: deliveryID, caller: caller}, nil
}

// DeliveryID returns the delivery the command acts on.
func (t deliveryTarget) DeliveryID() kernel.UUID {
	return t.deliveryID
}

// Caller returns the authenticated identity issuing the command.
func (t deliveryTarget) Caller() kernel.Address {
	return t.caller
}

// deliveryChange mutates a loaded delivery and returns the payouts it produced.
type deliveryChange func(work *delivery.DeliveryWork) ([]delivery.Payout, error)

// deliveryMutator runs a deliveryChange inside one unit of work. Payouts are
// credited to their recipients' accounts and raised events are written to
// the outbox in the same transaction as the delivery itself.
type deliveryMutator struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	observer   Observer
}

func newDeliveryMutator(uowFactory UoWFactory, clock kernel.Clock, observer Observer) deliveryMutator {
	if observer == nil {
		observer = NopObserver{}
	}
	return deliveryMutator{uowFactory: uowFactory, clock: clock, observer: observer}
}

func (m deliveryMutator) mutate(ctx context.Context, id kernel.UUID, change deliveryChange) ([]delivery.Payout, error) {
	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	work, err := deliveryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payouts, err := change(work)
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, work); err != nil {
		return nil, err
	}

	if err = forwardPayouts(ctx, uow, payouts); err != nil {
		return nil, err
	}

	if err = m.appendEvents(ctx, uow, work.DomainEvents()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	work.ClearDomainEvents()
	for _, p := range payouts {
		m.observer.EscrowDisbursed(p.Kind(), p.Amount())
	}

	return payouts, nil
}

// forwardPayouts credits every non-empty payout to its recipient, opening the
// recipient's account on first credit.
func forwardPayouts(ctx context.Context, uow AccountRepoFactory, payouts []delivery.Payout) error {
	var accountRepo ports.AccountRepository

	for _, p := range payouts {
		if p.Amount() == 0 {
			continue
		}
		if accountRepo == nil {
			accountRepo = uow.AccountRepository()
		}

		acc, err := accountRepo.Get(ctx, p.Recipient())
		isNew := errors.Is(err, errs.ErrObjectNotFound)
		if err != nil && !isNew {
			return err
		}
		if isNew {
			if acc, err = account.NewAccount(p.Recipient()); err != nil {
				return err
			}
		}

		if err = acc.Credit(p.Coin()); err != nil {
			return err
		}

		if isNew {
			err = accountRepo.Add(ctx, acc)
		} else {
			err = accountRepo.Update(ctx, acc)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (m deliveryMutator) appendEvents(ctx context.Context, uow OutboxRepoFactory, events []delivery.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxRepo := uow.OutboxRepository()
	now := m.clock.Now()

	for _, event := range events {
		payload, err := messages.Encode(event, now)
		if err != nil {
			return err
		}

		if err = outboxRepo.Add(ctx, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			AggregateID: event.AggregateID(),
			EventName:   event.EventName(),
			Payload:     payload,
			OccurredAt:  now,
		}); err != nil {
			return err
		}
	}

	return nil
}

func single(p delivery.Payout, err error) ([]delivery.Payout, error) {
	if err != nil {
		return nil, err
	}
	return []delivery.Payout{p}, nil
}

func none(err error) ([]delivery.Payout, error) {
	return nil, err
}
