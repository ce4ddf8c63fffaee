package profilerepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/profile"
	"logistics/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormDriverProfileRepository implements ports.DriverProfileRepository using GORM.
type GormDriverProfileRepository struct {
	db *gorm.DB
}

func NewGormDriverProfileRepository(db *gorm.DB) *GormDriverProfileRepository {
	return &GormDriverProfileRepository{db: db}
}

func (r *GormDriverProfileRepository) Add(ctx context.Context, p *profile.DriverProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert driver profile")
	}

	return nil
}

// Update is matched on id and the loaded version; the stored version is bumped.
func (r *GormDriverProfileRepository) Update(ctx context.Context, p *profile.DriverProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	dto.Version = p.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&DriverProfileDTO{}).
		Where("id = ? AND version = ?", dto.ID, p.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update driver profile")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DriverProfileDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "count driver profile")
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("driver profile", p.ID().String())
		}
		return errs.NewVersionIsInvalidError("driver profile")
	}

	return nil
}

func (r *GormDriverProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.DriverProfile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver profile", id.String())
		}
		return nil, errors.Wrap(err, "select driver profile")
	}

	return toDomain(dto)
}
