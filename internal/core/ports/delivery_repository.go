// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and message publishing.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// DeliveryRepository persists DeliveryWork aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery.
	Add(ctx context.Context, work *delivery.DeliveryWork) error

	// Update persists changes to an existing delivery. It fails with
	// errs.VersionIsInvalidError when the stored delivery changed after it
	// was loaded.
	Update(ctx context.Context, work *delivery.DeliveryWork) error

	// Get returns errs.ObjectNotFoundError when no delivery has the id.
	Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryWork, error)
}
