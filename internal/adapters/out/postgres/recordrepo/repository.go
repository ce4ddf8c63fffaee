package recordrepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/record"
	"logistics/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormDeliveryRecordsRepository implements ports.DeliveryRecordsRepository
// using GORM. Stored entries are never updated or deleted.
type GormDeliveryRecordsRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRecordsRepository(db *gorm.DB) *GormDeliveryRecordsRepository {
	return &GormDeliveryRecordsRepository{db: db}
}

// Add inserts the collection header and all of its entries.
func (r *GormDeliveryRecordsRepository) Add(ctx context.Context, records *record.DeliveryRecords) error {
	if err := records.Validate(); err != nil {
		return err
	}

	header := DeliveryRecordsDTO{
		ID:      records.ID().Bytes(),
		Company: records.Company().String(),
	}
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateRecordError(records.Company().String())
		}
		return errors.Wrap(err, "insert delivery records")
	}

	return r.insertEntries(ctx, records.ID(), records.Entries())
}

// Update appends the entries recorded since the collection was loaded.
func (r *GormDeliveryRecordsRepository) Update(ctx context.Context, records *record.DeliveryRecords) error {
	if err := records.Validate(); err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryRecordsDTO{}).Where("id = ?", records.ID().Bytes()).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count delivery records")
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("records", records.Company().String())
	}

	return r.insertEntries(ctx, records.ID(), records.Added())
}

// GetByCompany loads the company's collection with every entry.
func (r *GormDeliveryRecordsRepository) GetByCompany(ctx context.Context, company kernel.Address) (*record.DeliveryRecords, error) {
	if err := company.Validate(); err != nil {
		return nil, err
	}

	var header DeliveryRecordsDTO
	if err := r.db.WithContext(ctx).First(&header, "company = ?", company.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("records", company.String())
		}
		return nil, errors.Wrap(err, "select delivery records")
	}

	var entries []DeliveryRecordDTO
	if err := r.db.WithContext(ctx).Where("collection_id = ?", header.ID).Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "select delivery record entries")
	}

	return toDomain(header, entries)
}

// insertEntries checks for already recorded deliveries before inserting, so
// a redelivered completion surfaces as a DuplicateRecordError instead of an
// aborted transaction. The primary key still rejects a concurrent insert.
func (r *GormDeliveryRecordsRepository) insertEntries(ctx context.Context, collectionID kernel.UUID, entries []record.DeliveryRecord) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := entriesFromDomain(collectionID, entries)

	ids := make([]any, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.DeliveryID)
	}

	var existing []DeliveryRecordDTO
	if err := r.db.WithContext(ctx).Select("delivery_id").Where("delivery_id IN ?", ids).Limit(1).Find(&existing).Error; err != nil {
		return errors.Wrap(err, "check delivery records")
	}
	if len(existing) > 0 {
		return errs.NewDuplicateRecordError(existing[0].DeliveryID.String())
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateRecordError(dtos[0].DeliveryID.String())
		}
		return errors.Wrap(err, "insert delivery record entries")
	}

	return nil
}
