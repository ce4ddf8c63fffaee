package commands_test

import (
	"context"
	"math"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/profile"
	"logistics/internal/pkg/errs"
	"logistics/internal/testutil/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileHandler(store *memstore.Store) commands.DriverProfileCommandHandler {
	return commands.NewDriverProfileCommandHandler(
		commands.ProfileUoWFactoryFunc(func() commands.ProfileUoW { return store.Create() }),
	)
}

func loadProfile(t *testing.T, store *memstore.Store, id kernel.UUID) *profile.DriverProfile {
	t.Helper()

	uow := store.Create()
	require.NoError(t, uow.Begin(context.Background()))
	defer func() { _ = uow.Rollback(context.Background()) }()

	p, err := uow.DriverProfileRepository().Get(context.Background(), id)
	require.NoError(t, err)
	return p
}

func TestDriverProfileCommandHandler(t *testing.T) {
	t.Run("should create the caller's profile and let them rate it", func(t *testing.T) {
		store := memstore.New()
		handler := newProfileHandler(store)
		id := kernel.NewUUID()

		create, err := commands.NewCreateDriverProfileCommand(id, driver, "Dana", "dana@example.com")
		require.NoError(t, err)
		require.NoError(t, handler.Create(t.Context(), create))

		set, _ := commands.NewSetRatingCommand(id, driver, 40)
		require.NoError(t, handler.Rate(t.Context(), set))

		add, _ := commands.NewAddRatingCommand(id, driver, 2)
		require.NoError(t, handler.Rate(t.Context(), add))

		p := loadProfile(t, store, id)
		assert.Equal(t, "Dana", p.Name())
		assert.Equal(t, uint64(42), p.Rating())
	})

	t.Run("should reject rating by anyone else", func(t *testing.T) {
		store := memstore.New()
		handler := newProfileHandler(store)
		id := kernel.NewUUID()
		create, _ := commands.NewCreateDriverProfileCommand(id, driver, "Dana", "")
		require.NoError(t, handler.Create(t.Context(), create))

		set, _ := commands.NewSetRatingCommand(id, company, 1)
		err := handler.Rate(t.Context(), set)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Zero(t, loadProfile(t, store, id).Rating())
	})

	t.Run("should reject overflowing additions", func(t *testing.T) {
		store := memstore.New()
		handler := newProfileHandler(store)
		id := kernel.NewUUID()
		create, _ := commands.NewCreateDriverProfileCommand(id, driver, "Dana", "")
		require.NoError(t, handler.Create(t.Context(), create))
		set, _ := commands.NewSetRatingCommand(id, driver, math.MaxUint64)
		require.NoError(t, handler.Rate(t.Context(), set))

		add, _ := commands.NewAddRatingCommand(id, driver, 1)
		err := handler.Rate(t.Context(), add)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, uint64(math.MaxUint64), loadProfile(t, store, id).Rating())
	})

	t.Run("should fail for unknown profiles", func(t *testing.T) {
		handler := newProfileHandler(memstore.New())

		set, _ := commands.NewSetRatingCommand(kernel.NewUUID(), driver, 1)

		assert.ErrorIs(t, handler.Rate(t.Context(), set), errs.ErrObjectNotFound)
	})

	t.Run("should reject invalid profile fields", func(t *testing.T) {
		handler := newProfileHandler(memstore.New())

		create, err := commands.NewCreateDriverProfileCommand(kernel.NewUUID(), driver, "  ", "")
		require.NoError(t, err)

		assert.ErrorIs(t, handler.Create(t.Context(), create), errs.ErrValueIsRequired)
	})
}
