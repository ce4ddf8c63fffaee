package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/record"
)

// DeliveryRecordsRepository persists the per-company records collections.
type DeliveryRecordsRepository interface {
	// Add persists a new collection together with its entries.
	Add(ctx context.Context, records *record.DeliveryRecords) error

	// Update appends the entries filed since the collection was loaded.
	// Stored entries are never rewritten; an entry whose delivery already has
	// a record fails with errs.DuplicateRecordError.
	Update(ctx context.Context, records *record.DeliveryRecords) error

	// GetByCompany returns errs.ObjectNotFoundError when the company has no
	// collection yet.
	GetByCompany(ctx context.Context, company kernel.Address) (*record.DeliveryRecords, error)
}
