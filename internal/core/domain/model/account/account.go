// Package account models the wallet that receives funds leaving an escrow.
// Every identity has at most one account, created on its first credit.
package account

import (
	"errors"

	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

// Account is the balance owned by one address.
type Account struct {
	owner   kernel.Address
	balance coin.Balance
	version uint64

	guard guard.ConstructorGuard
}

// NewAccount opens an empty account.
func NewAccount(owner kernel.Address) (*Account, error) {
	if err := owner.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	return &Account{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func RestoreAccount(owner kernel.Address, balance coin.Balance, version uint64) (*Account, error) {
	a, err := NewAccount(owner)
	if err != nil {
		return nil, err
	}
	a.balance = balance
	a.version = version
	return a, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) Owner() kernel.Address {
	return a.owner
}

func (a *Account) Balance() coin.Balance {
	return a.balance
}

func (a *Account) Version() uint64 {
	return a.version
}

// Credit joins the coin into the account.
func (a *Account) Credit(c coin.Coin) error {
	return a.balance.Join(c)
}
