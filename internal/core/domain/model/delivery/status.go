package delivery

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a DeliveryWork. A single tagged state
// replaces independent "finished" and "issues" flags, so contradictory
// combinations cannot be represented.
//
// Transitions (operation: from -> to):
//
//	assign:    Open -> Assigned; Assigned, Completed, Disputed unchanged
//	unassign:  Assigned -> Open; Open, Completed, Disputed unchanged
//	complete:  Assigned -> Completed; Completed -> Completed
//	dispute:   Assigned -> Disputed; Disputed -> Disputed
//	resolve:   Disputed -> Assigned
//
// Every pair not listed is rejected with an InvalidStateError.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Open deliveries have no driver assigned.
	Open

	// Assigned deliveries have a driver and are in progress.
	Assigned

	// Completed deliveries were attested by their driver; escrow may be settled or refunded.
	Completed

	// Disputed deliveries have an issue reported by the driver that the company must resolve.
	Disputed
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Open:      "Open",
	Assigned:  "Assigned",
	Completed: "Completed",
	Disputed:  "Disputed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values, e.g. from storage.
func (s Status) Validate() error {
	if s <= Unknown || s > Disputed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsFinished reports whether delivery was attested.
func (s Status) IsFinished() bool {
	return s == Completed
}

// HasIssues reports whether an issue is awaiting resolution.
func (s Status) HasIssues() bool {
	return s == Disputed
}

// ValidateCanHaveDriver checks the consistency between status and the driver slot.
// Open deliveries never have a driver and Assigned deliveries always have one;
// Completed and Disputed deliveries keep the state they reached even if the
// company later clears or replaces the driver.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Open {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to have a driver", s))
	}
	if !hasDriver && s == Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to have no driver", s))
	}
	return nil
}

// Assign returns the status after a driver is put in the slot.
func (s Status) Assign() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Open {
		return Assigned, nil
	}
	return s, nil
}

// Unassign returns the status after the driver slot is cleared.
func (s Status) Unassign() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Assigned {
		return Open, nil
	}
	return s, nil
}

// Complete returns Completed for deliveries in progress or already completed.
func (s Status) Complete() (Status, error) {
	if s != Assigned && s != Completed {
		return Unknown, errs.NewInvalidStateError("complete delivery", s.String())
	}
	return Completed, nil
}

// Dispute returns Disputed for deliveries in progress or already disputed.
func (s Status) Dispute() (Status, error) {
	if s != Assigned && s != Disputed {
		return Unknown, errs.NewInvalidStateError("report issues", s.String())
	}
	return Disputed, nil
}

// Resolve reopens a disputed delivery.
func (s Status) Resolve() (Status, error) {
	if s != Disputed {
		return Unknown, errs.NewInvalidStateErrorWithCause("resolve issues", s.String(), errNoActiveIssue)
	}
	return Assigned, nil
}
