// Package errs provides the error taxonomy shared by the domain model, the use
// cases and the adapters.
//
// Every error kind follows the same shape:
//   - a sentinel variable (e.g. ErrInsufficientFunds) usable with errors.Is
//   - a struct type carrying the details of the failure
//   - New... constructors, with a ...WithCause variant where a cause makes sense
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Validation and lookup failures:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError
//   - VersionIsInvalidError for optimistic concurrency conflicts
//
// Delivery lifecycle failures:
//   - NotAuthorizedError: the caller is not the company or the assigned driver
//   - InvalidStateError: the lifecycle state does not permit the operation
//   - InsufficientFundsError: the escrow balance cannot cover a withdrawal
//   - DuplicateRecordError: a completion record already exists for a delivery
package errs
