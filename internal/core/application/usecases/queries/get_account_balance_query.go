package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetAccountBalanceQueryIsNotConstructed = errors.New(
	"GetAccountBalanceQuery must be created via NewGetAccountBalanceQuery constructor",
)

// GetAccountBalanceQuery reads the amount credited to an address by escrow
// disbursements.
type GetAccountBalanceQuery struct {
	owner kernel.Address
	guard guard.ConstructorGuard
}

func NewGetAccountBalanceQuery(owner kernel.Address) (GetAccountBalanceQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetAccountBalanceQuery{}, errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	return GetAccountBalanceQuery{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetAccountBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountBalanceQueryIsNotConstructed)
}

func (q GetAccountBalanceQuery) Owner() kernel.Address {
	return q.owner
}

type GetAccountBalanceQueryResponse struct {
	Owner   kernel.Address
	Balance uint64
}
