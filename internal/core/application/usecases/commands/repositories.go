// Package commands contains business operations that modify system state.
// Every handler validates its command, runs inside one unit of work and
// commits only when the whole operation succeeded.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	ProfileRepoFactory interface {
		DriverProfileRepository() ports.DriverProfileRepository
	}

	RecordsRepoFactory interface {
		DeliveryRecordsRepository() ports.DeliveryRecordsRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW spans every aggregate a delivery operation may touch: the delivery,
	// the accounts receiving payouts and the outbox receiving events.
	UoW interface {
		TxManager
		DeliveryRepoFactory
		AccountRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// ProfileUoW is used by commands that only modify driver profiles.
	ProfileUoW interface {
		TxManager
		ProfileRepoFactory
	}

	ProfileUoWFactory interface {
		Create() ProfileUoW
	}

	// RecordsUoW reads the completed delivery and appends to the records index.
	RecordsUoW interface {
		TxManager
		DeliveryRepoFactory
		RecordsRepoFactory
	}

	RecordsUoWFactory interface {
		Create() RecordsUoW
	}

	// OutboxUoW is used by the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Function adapters let a single concrete unit of work factory serve every
// narrower factory interface above.
type (
	UoWFactoryFunc        func() UoW
	ProfileUoWFactoryFunc func() ProfileUoW
	RecordsUoWFactoryFunc func() RecordsUoW
	OutboxUoWFactoryFunc  func() OutboxUoW
)

func (f UoWFactoryFunc) Create() UoW {
	return f()
}

func (f ProfileUoWFactoryFunc) Create() ProfileUoW {
	return f()
}

func (f RecordsUoWFactoryFunc) Create() RecordsUoW {
	return f()
}

func (f OutboxUoWFactoryFunc) Create() OutboxUoW {
	return f()
}
