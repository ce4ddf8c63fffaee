// Package postgres provides the GORM-based Unit of Work. A unit of work wraps
// one database transaction; the repositories it hands out after Begin all run
// inside that transaction, so a command either commits every change
// (aggregate, escrow payouts, outbox messages) or none.
//
// Usage:
//
//	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	work, err := uow.DeliveryRepository().Get(ctx, id)
//	...
//	if err := uow.DeliveryRepository().Update(ctx, work); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency: each UnitOfWork instance owns its transaction and must not be
// shared between goroutines. Conflicting writes to the same aggregate are
// detected by the repositories' version check, not by row locks.
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/accountrepo"
	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/adapters/out/postgres/profilerepo"
	"logistics/internal/adapters/out/postgres/recordrepo"
	"logistics/internal/core/ports"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Models lists every persisted DTO, in migration order.
func Models() []any {
	return []any{
		&deliveryrepo.DeliveryDTO{},
		&profilerepo.DriverProfileDTO{},
		&recordrepo.DeliveryRecordsDTO{},
		&recordrepo.DeliveryRecordDTO{},
		&accountrepo.AccountDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// Migrate creates or updates the schema for all repositories.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. Open db with gorm.Config{TranslateError: true} so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	uow.tx = tx
	return nil
}

// Commit commits the active transaction. It returns gorm.ErrInvalidTransaction
// when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction. After a successful Commit it
// returns gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverProfileRepository() ports.DriverProfileRepository {
	return profilerepo.NewGormDriverProfileRepository(uow.conn())
}

func (uow *GormUnitOfWork) DeliveryRecordsRepository() ports.DeliveryRecordsRepository {
	return recordrepo.NewGormDeliveryRecordsRepository(uow.conn())
}

func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// conn returns the active transaction, or the pool for reads outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
