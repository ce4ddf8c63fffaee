package delivery

import (
	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/kernel"
)

// PayoutKind names the operation that disbursed escrow funds.
type PayoutKind string

const (
	PayoutSettlement PayoutKind = "settlement"
	PayoutRefund     PayoutKind = "refund"
	PayoutWithdrawal PayoutKind = "withdrawal"
	PayoutTip        PayoutKind = "tip"
)

// Payout is a coin removed from escrow together with its single recipient.
// The caller of a disbursing operation must forward it in the same unit of
// work; a Payout is never retained by the aggregate.
type Payout struct {
	kind      PayoutKind
	recipient kernel.Address
	coin      coin.Coin
}

func newPayout(kind PayoutKind, recipient kernel.Address, c coin.Coin) Payout {
	return Payout{kind: kind, recipient: recipient, coin: c}
}

func (p Payout) Kind() PayoutKind {
	return p.kind
}

func (p Payout) Recipient() kernel.Address {
	return p.recipient
}

func (p Payout) Coin() coin.Coin {
	return p.coin
}

func (p Payout) Amount() uint64 {
	return p.coin.Value()
}
