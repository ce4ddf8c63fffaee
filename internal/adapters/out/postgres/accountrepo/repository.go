package accountrepo

import (
	"context"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Add(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another transaction opened the account first.
			return errs.NewVersionIsInvalidErrorWithCause("account", err)
		}
		return errors.Wrap(err, "insert account")
	}

	return nil
}

func (r *GormAccountRepository) Update(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	dto.Version = a.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("owner = ? AND version = ?", dto.Owner, a.Version()).
		Updates(map[string]any{"balance": dto.Balance, "version": dto.Version})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update account")
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("account")
	}

	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, owner kernel.Address) (*account.Account, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "owner = ?", owner.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", owner.String())
		}
		return nil, errors.Wrap(err, "select account")
	}

	return toDomain(dto)
}
