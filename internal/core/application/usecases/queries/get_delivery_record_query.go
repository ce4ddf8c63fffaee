package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetDeliveryRecordQueryIsNotConstructed = errors.New(
	"GetDeliveryRecordQuery must be created via NewGetDeliveryRecordQuery constructor",
)

// GetDeliveryRecordQuery looks an archived completion up by delivery id.
type GetDeliveryRecordQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryRecordQuery(deliveryID kernel.UUID) (GetDeliveryRecordQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryRecordQuery{}, errs.NewValueIsRequiredErrorWithCause("delivery id", err)
	}

	return GetDeliveryRecordQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryRecordQueryIsNotConstructed)
}

func (q GetDeliveryRecordQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

type GetDeliveryRecordQueryResponse struct {
	DeliveryID kernel.UUID
	Company    kernel.Address
	Proof      []byte
}
