// Package access implements the capability checks applied by every mutating
// operation. The checks are stateless: they compare the authenticated caller
// with identities recorded on the target entity and never consult roles,
// delegation or time.
package access

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Subject is an entity owned by a company that may have a driver assigned.
type Subject interface {
	Company() kernel.Address
	Driver() *kernel.Address
}

// RequireCompany passes only when caller is the subject's company.
func RequireCompany(s Subject, caller kernel.Address, operation string) error {
	if !s.Company().IsEqual(caller) {
		return errs.NewNotAuthorizedError(operation, caller.String())
	}
	return nil
}

// RequireDriver passes only when a driver is assigned and caller is that driver.
func RequireDriver(s Subject, caller kernel.Address, operation string) error {
	driver := s.Driver()
	if driver == nil || !driver.IsEqual(caller) {
		return errs.NewNotAuthorizedError(operation, caller.String())
	}
	return nil
}

// RequireOwner passes only when caller is owner.
func RequireOwner(owner, caller kernel.Address, operation string) error {
	if !owner.IsEqual(caller) {
		return errs.NewNotAuthorizedError(operation, caller.String())
	}
	return nil
}
