package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriverProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverProfileQueryHandler(db *gorm.DB) GetDriverProfileQueryHandler {
	return GetDriverProfileQueryHandler{db: db}
}

func (h GetDriverProfileQueryHandler) Handle(
	ctx context.Context,
	query GetDriverProfileQuery,
) (GetDriverProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverProfileQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, driver, name, contact, rating
		FROM driver_profiles
		WHERE id = ?
	`, query.ProfileID().Bytes()).Rows()
	if err != nil {
		return GetDriverProfileQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDriverProfileQueryResponse{}, err
		}
		return GetDriverProfileQueryResponse{}, errs.NewObjectNotFoundError("driver profile", query.ProfileID().String())
	}

	var (
		id       uuid.UUID
		driver   string
		response GetDriverProfileQueryResponse
	)
	if err = rows.Scan(&id, &driver, &response.Name, &response.Contact, &response.Rating); err != nil {
		return GetDriverProfileQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDriverProfileQueryResponse{}, err
	}
	if response.Driver, err = kernel.NewAddress(driver); err != nil {
		return GetDriverProfileQueryResponse{}, err
	}

	return response, nil
}
