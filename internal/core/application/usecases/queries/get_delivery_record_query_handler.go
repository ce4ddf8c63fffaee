package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDeliveryRecordQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryRecordQueryHandler(db *gorm.DB) GetDeliveryRecordQueryHandler {
	return GetDeliveryRecordQueryHandler{db: db}
}

func (h GetDeliveryRecordQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryRecordQuery,
) (GetDeliveryRecordQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryRecordQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT delivery_id, company, proof
		FROM delivery_records
		WHERE delivery_id = ?
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return GetDeliveryRecordQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryRecordQueryResponse{}, err
		}
		return GetDeliveryRecordQueryResponse{}, errs.NewObjectNotFoundError("delivery record", query.DeliveryID().String())
	}

	var (
		id       uuid.UUID
		company  string
		response GetDeliveryRecordQueryResponse
	)
	if err = rows.Scan(&id, &company, &response.Proof); err != nil {
		return GetDeliveryRecordQueryResponse{}, err
	}

	if response.DeliveryID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryRecordQueryResponse{}, err
	}
	if response.Company, err = kernel.NewAddress(company); err != nil {
		return GetDeliveryRecordQueryResponse{}, err
	}

	return response, nil
}
