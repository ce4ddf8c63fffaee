package delivery

import (
	"bytes"

	"logistics/internal/core/domain/model/kernel"
)

// DeliveryCompletedEventName is the name under which DeliveryCompleted is published.
const DeliveryCompletedEventName = "delivery.completed"

// DomainEvent is a fact raised by an aggregate and relayed after commit.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
}

// DeliveryCompleted is raised when a driver uploads proof of delivery and the
// escrow is settled. The records index is built from these events.
type DeliveryCompleted struct {
	deliveryID kernel.UUID
	company    kernel.Address
	driver     kernel.Address
	proof      []byte
	amount     uint64
}

func (e DeliveryCompleted) EventName() string {
	return DeliveryCompletedEventName
}

func (e DeliveryCompleted) AggregateID() kernel.UUID {
	return e.deliveryID
}

func (e DeliveryCompleted) Company() kernel.Address {
	return e.company
}

func (e DeliveryCompleted) Driver() kernel.Address {
	return e.driver
}

func (e DeliveryCompleted) Proof() []byte {
	return bytes.Clone(e.proof)
}

// Amount is the escrow paid to the driver on completion.
func (e DeliveryCompleted) Amount() uint64 {
	return e.amount
}
