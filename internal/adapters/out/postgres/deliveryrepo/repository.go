package deliveryrepo

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a repository bound to db, which may be a
// transaction.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add inserts a new delivery.
func (r *GormDeliveryRepository) Add(ctx context.Context, work *delivery.DeliveryWork) error {
	if err := work.Validate(); err != nil {
		return err
	}

	dto := fromDomain(work)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert delivery")
	}

	return nil
}

// Update writes every column of the delivery and bumps its version. The row
// is matched on both id and the version the aggregate was loaded with.
func (r *GormDeliveryRepository) Update(ctx context.Context, work *delivery.DeliveryWork) error {
	if err := work.Validate(); err != nil {
		return err
	}

	dto := fromDomain(work)
	dto.Version = work.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, work.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update delivery")
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, work.ID())
	}

	return nil
}

// Get loads a delivery by id.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryWork, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, errors.Wrap(err, "select delivery")
	}

	return toDomain(dto)
}

// missingOrStale tells a deleted row apart from a concurrent update.
func (r *GormDeliveryRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count delivery")
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}
	return errs.NewVersionIsInvalidError("delivery")
}
