package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
)

// CreateDeliveryRequest carries the descriptive payloads as text; they are
// stored as opaque bytes.
type CreateDeliveryRequest struct {
	SenderName     string    `json:"sender_name"`
	ReceiverName   string    `json:"receiver_name"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	Method         string    `json:"method"`
	Description    string    `json:"description"`
	Priority       string    `json:"priority"`
	Cost           uint64    `json:"cost"`
	DueDate        time.Time `json:"due_date"`
}

func (r CreateDeliveryRequest) metadata() delivery.Metadata {
	return delivery.Metadata{
		SenderName:     []byte(r.SenderName),
		ReceiverName:   []byte(r.ReceiverName),
		PickupAddress:  []byte(r.PickupAddress),
		DropoffAddress: []byte(r.DropoffAddress),
		Method:         []byte(r.Method),
		Description:    []byte(r.Description),
		Priority:       []byte(r.Priority),
	}
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

type AssignDriverRequest struct {
	Driver string `json:"driver"`
}

// UploadProofRequest carries the proof base64-encoded, as encoding/json does
// for []byte.
type UploadProofRequest struct {
	Proof []byte `json:"proof"`
}

type DueDateRequest struct {
	DueDate time.Time `json:"due_date"`
}

type PriceRequest struct {
	Cost uint64 `json:"cost"`
}

type PayoutResponse struct {
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

func newPayoutResponse(p delivery.Payout) PayoutResponse {
	return PayoutResponse{
		Kind:      string(p.Kind()),
		Recipient: p.Recipient().String(),
		Amount:    p.Amount(),
	}
}

type DeliveryDetailsResponse struct {
	ID       string    `json:"id"`
	Company  string    `json:"company"`
	Driver   *string   `json:"driver,omitempty"`
	Status   string    `json:"status"`
	Finished bool      `json:"finished"`
	Cost     uint64    `json:"cost"`
	Escrow   uint64    `json:"escrow"`
	DueDate  time.Time `json:"due_date"`
}

func newDeliveryDetailsResponse(r queries.GetDeliveryDetailsQueryResponse) DeliveryDetailsResponse {
	var driver *string
	if r.Driver != nil {
		d := r.Driver.String()
		driver = &d
	}
	return DeliveryDetailsResponse{
		ID:       r.ID.String(),
		Company:  r.Company.String(),
		Driver:   driver,
		Status:   r.Status.String(),
		Finished: r.Finished,
		Cost:     r.Cost,
		Escrow:   r.Escrow,
		DueDate:  r.DueDate,
	}
}

type CreateProfileRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type SetRatingRequest struct {
	Value uint64 `json:"value"`
}

type AddRatingRequest struct {
	Delta uint64 `json:"delta"`
}

type DriverProfileResponse struct {
	ID      string `json:"id"`
	Driver  string `json:"driver"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Rating  uint64 `json:"rating"`
}

type DeliveryRecordResponse struct {
	DeliveryID string `json:"delivery_id"`
	Company    string `json:"company"`
	Proof      []byte `json:"proof"`
}

type AccountBalanceResponse struct {
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}
