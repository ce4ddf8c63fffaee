// Package accountrepo persists the accounts credited by escrow disbursements.
package accountrepo

import (
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/kernel"
)

// AccountDTO is the database row of an account, keyed by owner address.
type AccountDTO struct {
	Owner   string `gorm:"type:varchar(128);primaryKey"`
	Balance uint64 `gorm:"type:bigint;not null"`
	Version uint64 `gorm:"type:bigint;not null"`
}

// TableName overrides gorm's default naming.
func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		Owner:   a.Owner().String(),
		Balance: a.Balance().Value(),
		Version: a.Version(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	owner, err := kernel.NewAddress(dto.Owner)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(owner, coin.NewBalance(dto.Balance), dto.Version)
}
