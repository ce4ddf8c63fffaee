// Package profilerepo persists driver profiles in PostgreSQL.
package profilerepo

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/profile"

	"github.com/google/uuid"
)

// DriverProfileDTO is the database row of a driver profile.
type DriverProfileDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Driver  string    `gorm:"type:varchar(128);not null;index"`
	Name    string    `gorm:"type:varchar(256);not null"`
	Contact string    `gorm:"type:varchar(256);not null"`
	Rating  uint64    `gorm:"type:bigint;not null"`
	Version uint64    `gorm:"type:bigint;not null"`
}

// TableName overrides gorm's default naming.
func (DriverProfileDTO) TableName() string {
	return "driver_profiles"
}

func fromDomain(p *profile.DriverProfile) DriverProfileDTO {
	return DriverProfileDTO{
		ID:      p.ID().Bytes(),
		Driver:  p.Driver().String(),
		Name:    p.Name(),
		Contact: p.Contact(),
		Rating:  p.Rating(),
		Version: p.Version(),
	}
}

func toDomain(dto DriverProfileDTO) (*profile.DriverProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driver, err := kernel.NewAddress(dto.Driver)
	if err != nil {
		return nil, err
	}

	return profile.RestoreDriverProfile(id, driver, dto.Name, dto.Contact, dto.Rating, dto.Version)
}
