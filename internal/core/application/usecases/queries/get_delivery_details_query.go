package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetDeliveryDetailsQueryIsNotConstructed = errors.New(
	"GetDeliveryDetailsQuery must be created via NewGetDeliveryDetailsQuery constructor",
)

// GetDeliveryDetailsQuery reads the public details of one delivery. Any
// caller may run it.
type GetDeliveryDetailsQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryDetailsQuery(deliveryID kernel.UUID) (GetDeliveryDetailsQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("delivery id", err)
	}

	return GetDeliveryDetailsQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryDetailsQueryIsNotConstructed)
}

func (q GetDeliveryDetailsQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryDetailsQueryResponse embeds delivery.Details (finished flag and
// cost) and adds the fields a dashboard needs to follow the lifecycle.
type GetDeliveryDetailsQueryResponse struct {
	delivery.Details

	ID      kernel.UUID
	Company kernel.Address
	Driver  *kernel.Address
	Status  delivery.Status
	Escrow  uint64
	DueDate time.Time
}
