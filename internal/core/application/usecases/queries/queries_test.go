package queries_test

import (
	"testing"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryDetailsQuery(t *testing.T) {
	t.Run("should build with a valid id", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetDeliveryDetailsQuery(id)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, id, query.DeliveryID())
	})

	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := queries.NewGetDeliveryDetailsQuery(kernel.UUID{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a literal", func(t *testing.T) {
		err := queries.GetDeliveryDetailsQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetDeliveryDetailsQueryIsNotConstructed)
	})
}

func TestNewGetDriverProfileQuery(t *testing.T) {
	t.Run("should build with a valid id", func(t *testing.T) {
		query, err := queries.NewGetDriverProfileQuery(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := queries.NewGetDriverProfileQuery(kernel.UUID{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a literal", func(t *testing.T) {
		err := queries.GetDriverProfileQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetDriverProfileQueryIsNotConstructed)
	})
}

func TestNewGetDeliveryRecordQuery(t *testing.T) {
	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := queries.NewGetDeliveryRecordQuery(kernel.UUID{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a literal", func(t *testing.T) {
		err := queries.GetDeliveryRecordQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetDeliveryRecordQueryIsNotConstructed)
	})
}

func TestNewGetAccountBalanceQuery(t *testing.T) {
	t.Run("should build with a valid owner", func(t *testing.T) {
		owner := kernel.MustNewAddress("0xd00d")
		query, err := queries.NewGetAccountBalanceQuery(owner)
		require.NoError(t, err)
		assert.Equal(t, owner, query.Owner())
	})

	t.Run("should reject an empty owner", func(t *testing.T) {
		_, err := queries.NewGetAccountBalanceQuery(kernel.Address{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a literal", func(t *testing.T) {
		err := queries.GetAccountBalanceQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetAccountBalanceQueryIsNotConstructed)
	})
}
