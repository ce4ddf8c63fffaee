// Package messages defines the wire format of the events relayed through the
// outbox.
package messages

import (
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/delivery"
)

// DeliveryCompleted is the JSON body of the delivery.completed event.
type DeliveryCompleted struct {
	DeliveryID  string    `json:"delivery_id"`
	Company     string    `json:"company"`
	Driver      string    `json:"driver"`
	Proof       []byte    `json:"proof"`
	Amount      uint64    `json:"amount"`
	CompletedAt time.Time `json:"completed_at"`
}

// Encode serializes a domain event raised at occurredAt.
func Encode(event delivery.DomainEvent, occurredAt time.Time) ([]byte, error) {
	switch e := event.(type) {
	case delivery.DeliveryCompleted:
		return json.Marshal(DeliveryCompleted{
			DeliveryID:  e.AggregateID().String(),
			Company:     e.Company().String(),
			Driver:      e.Driver().String(),
			Proof:       e.Proof(),
			Amount:      e.Amount(),
			CompletedAt: occurredAt.UTC(),
		})
	default:
		return nil, fmt.Errorf("unsupported event %s", event.EventName())
	}
}

// DecodeDeliveryCompleted parses a delivery.completed body.
func DecodeDeliveryCompleted(payload []byte) (DeliveryCompleted, error) {
	var msg DeliveryCompleted
	if err := json.Unmarshal(payload, &msg); err != nil {
		return DeliveryCompleted{}, fmt.Errorf("decode %s: %w", delivery.DeliveryCompletedEventName, err)
	}
	return msg, nil
}
