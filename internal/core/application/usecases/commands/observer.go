package commands

import "logistics/internal/core/domain/model/delivery"

// Observer is told about money and message movements after they were committed.
type Observer interface {
	EscrowDeposited(amount uint64)
	EscrowDisbursed(kind delivery.PayoutKind, amount uint64)
	OutboxPublished(count int)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) EscrowDeposited(uint64) {}

func (NopObserver) EscrowDisbursed(delivery.PayoutKind, uint64) {}

func (NopObserver) OutboxPublished(int) {}
