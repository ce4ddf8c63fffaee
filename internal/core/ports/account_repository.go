package ports

import (
	"context"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
)

// AccountRepository persists accounts keyed by owner address.
type AccountRepository interface {
	Add(ctx context.Context, a *account.Account) error

	// Update fails with errs.VersionIsInvalidError on a concurrent change.
	Update(ctx context.Context, a *account.Account) error

	// Get returns errs.ObjectNotFoundError when the owner has no account yet.
	Get(ctx context.Context, owner kernel.Address) (*account.Account, error)
}
