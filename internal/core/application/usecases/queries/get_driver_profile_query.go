package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetDriverProfileQueryIsNotConstructed = errors.New(
	"GetDriverProfileQuery must be created via NewGetDriverProfileQuery constructor",
)

// GetDriverProfileQuery reads one driver profile by id.
type GetDriverProfileQuery struct {
	profileID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetDriverProfileQuery(profileID kernel.UUID) (GetDriverProfileQuery, error) {
	if err := profileID.Validate(); err != nil {
		return GetDriverProfileQuery{}, errs.NewValueIsRequiredErrorWithCause("profile id", err)
	}

	return GetDriverProfileQuery{
		profileID: profileID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverProfileQueryIsNotConstructed)
}

func (q GetDriverProfileQuery) ProfileID() kernel.UUID {
	return q.profileID
}

type GetDriverProfileQueryResponse struct {
	ID      kernel.UUID
	Driver  kernel.Address
	Name    string
	Contact string
	Rating  uint64
}
