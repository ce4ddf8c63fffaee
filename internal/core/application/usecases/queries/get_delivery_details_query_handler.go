package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDeliveryDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryDetailsQueryHandler(db *gorm.DB) GetDeliveryDetailsQueryHandler {
	return GetDeliveryDetailsQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown delivery.
func (h GetDeliveryDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryDetailsQuery,
) (GetDeliveryDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			company,
			driver,
			status,
			cost,
			escrow,
			due_date
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryDetailsQueryResponse{}, err
		}
		return GetDeliveryDetailsQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}

	var (
		id       uuid.UUID
		company  string
		driver   *string
		status   int
		cost     uint64
		escrow   uint64
		dueDate  time.Time
		response GetDeliveryDetailsQueryResponse
	)
	if err = rows.Scan(&id, &company, &driver, &status, &cost, &escrow, &dueDate); err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}
	if response.Company, err = kernel.NewAddress(company); err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}
	if driver != nil {
		d, driverErr := kernel.NewAddress(*driver)
		if driverErr != nil {
			return GetDeliveryDetailsQueryResponse{}, driverErr
		}
		response.Driver = &d
	}

	response.Status = delivery.Status(status)
	if err = response.Status.Validate(); err != nil {
		return GetDeliveryDetailsQueryResponse{}, err
	}
	response.Details = delivery.Details{
		Finished: response.Status.IsFinished(),
		Cost:     cost,
	}
	response.Escrow = escrow
	response.DueDate = dueDate

	return response, nil
}
