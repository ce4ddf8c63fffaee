package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/profile"
)

// DriverProfileRepository persists driver profiles.
type DriverProfileRepository interface {
	Add(ctx context.Context, p *profile.DriverProfile) error

	// Update fails with errs.VersionIsInvalidError on a concurrent change.
	Update(ctx context.Context, p *profile.DriverProfile) error

	Get(ctx context.Context, id kernel.UUID) (*profile.DriverProfile, error)
}
