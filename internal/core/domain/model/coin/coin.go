// Package coin models the single fungible asset escrowed by deliveries and
// held by accounts.
//
// A Coin is an amount in transit between two balances. Value is conserved:
// Take removes exactly the amount it returns and Join adds exactly the amount
// it receives, so a Take/Join pair never creates or destroys funds.
package coin

import (
	"errors"
	"math"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrCoinIsNotConstructed indicates a zero-value Coin.
var ErrCoinIsNotConstructed = errors.New("Coin must be created via New, Zero or Balance.Take")

// Coin is a fixed amount of the asset, in minor units.
type Coin struct {
	value uint64
	guard guard.ConstructorGuard
}

// New mints a coin entering the system from an external payment rail.
func New(value uint64) Coin {
	return Coin{value: value, guard: guard.NewConstructorGuard()}
}

// Zero returns a coin of no value.
func Zero() Coin {
	return New(0)
}

func (c Coin) Value() uint64 {
	return c.value
}

func (c Coin) Validate() error {
	return c.guard.Validate(ErrCoinIsNotConstructed)
}

// Balance is an amount owned by exactly one aggregate. The zero value is an
// empty balance.
type Balance struct {
	value uint64
}

// NewBalance restores a persisted balance.
func NewBalance(value uint64) Balance {
	return Balance{value: value}
}

func (b Balance) Value() uint64 {
	return b.value
}

func (b Balance) IsZero() bool {
	return b.value == 0
}

// Join adds the coin to the balance.
func (b *Balance) Join(c Coin) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.value > math.MaxUint64-b.value {
		return errs.NewValueIsOutOfRangeError("balance", c.value, uint64(0), math.MaxUint64-b.value)
	}

	b.value += c.value
	return nil
}

// Take splits amount off the balance. The balance is untouched on error.
func (b *Balance) Take(amount uint64) (Coin, error) {
	if amount > b.value {
		return Coin{}, errs.NewInsufficientFundsError(amount, b.value)
	}

	b.value -= amount
	return New(amount), nil
}

// Drain empties the balance into a single coin.
func (b *Balance) Drain() Coin {
	c := New(b.value)
	b.value = 0
	return c
}
