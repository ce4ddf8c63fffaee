package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("profileId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("amount")

		assert.Equal(t, "amount", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: amount", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("amount", cause)

		assert.Equal(t, "value is invalid: amount (cause: must be greater than 0)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 150, 0, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is out of range: 150 is rating, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredErrorWithCause("company", errors.New("empty address"))

	assert.Equal(t, "value is required: company (cause: empty address)", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("delivery")

	assert.Equal(t, "version is invalid: delivery", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestLifecycleErrors(t *testing.T) {
	t.Run("not authorized", func(t *testing.T) {
		err := errs.NewNotAuthorizedError("settle", "0xbeef")

		assert.Equal(t, "not authorized: 0xbeef may not settle", err.Error())
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("invalid state", func(t *testing.T) {
		err := errs.NewInvalidStateError("refund", "Assigned")

		assert.Equal(t, "invalid state: cannot refund while Assigned", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := errs.NewInsufficientFundsError(60, 50)

		assert.Equal(t, "insufficient funds: requested 60, available 50", err.Error())
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("duplicate record", func(t *testing.T) {
		err := errs.NewDuplicateRecordError("abc")

		assert.Equal(t, "duplicate record: abc", err.Error())
		require.ErrorIs(t, err, errs.ErrDuplicateRecord)
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		wrapped := fmt.Errorf("deposit: %w", errs.NewNotAuthorizedError("deposit", "x"))

		var target *errs.NotAuthorizedError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "deposit", target.Operation)
	})
}
