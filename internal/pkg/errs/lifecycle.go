package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthorized     = errors.New("not authorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateRecord   = errors.New("duplicate record")
)

// NotAuthorizedError is returned when the caller is neither the identity an
// operation requires nor any other identity allowed to act for it.
type NotAuthorizedError struct {
	Operation string
	Caller    string
}

func NewNotAuthorizedError(operation, caller string) *NotAuthorizedError {
	return &NotAuthorizedError{Operation: operation, Caller: caller}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrNotAuthorized, sanitize(e.Caller), e.Operation)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// InvalidStateError is returned when an operation is not permitted in the
// current lifecycle state.
type InvalidStateError struct {
	Operation string
	State     string
	Cause     error
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, State: state}
}

func NewInvalidStateErrorWithCause(operation, state string, cause error) *InvalidStateError {
	return &InvalidStateError{Operation: operation, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: cannot %s while %s", ErrInvalidState, e.Operation, e.State), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InsufficientFundsError is returned when a withdrawal exceeds the available balance.
type InsufficientFundsError struct {
	Requested uint64
	Available uint64
}

func NewInsufficientFundsError(requested, available uint64) *InsufficientFundsError {
	return &InsufficientFundsError{Requested: requested, Available: available}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: requested %d, available %d", ErrInsufficientFunds, e.Requested, e.Available)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// DuplicateRecordError is returned when a record already exists under the key.
type DuplicateRecordError struct {
	Key string
}

func NewDuplicateRecordError(key string) *DuplicateRecordError {
	return &DuplicateRecordError{Key: key}
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateRecord, sanitize(e.Key))
}

func (e *DuplicateRecordError) Unwrap() error {
	return ErrDuplicateRecord
}
