package commands_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/testutil/memstore"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	company  = kernel.MustNewAddress("0xc0ffee")
	driver   = kernel.MustNewAddress("0xd00d")
	stranger = kernel.MustNewAddress("0xbeef")

	now   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock = kernel.FixedClock(now)
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, work *delivery.DeliveryWork) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, work *delivery.DeliveryWork) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.DeliveryWork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.DeliveryWork), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type recordingObserver struct {
	deposited uint64
	disbursed map[delivery.PayoutKind]uint64
	published int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{disbursed: make(map[delivery.PayoutKind]uint64)}
}

func (o *recordingObserver) EscrowDeposited(amount uint64) {
	o.deposited += amount
}

func (o *recordingObserver) EscrowDisbursed(kind delivery.PayoutKind, amount uint64) {
	o.disbursed[kind] += amount
}

func (o *recordingObserver) OutboxPublished(count int) {
	o.published += count
}

// fixture wires every delivery handler to one in-memory store.
type fixture struct {
	store      *memstore.Store
	observer   *recordingObserver
	create     commands.CreateDeliveryCommandHandler
	escrow     commands.EscrowCommandHandler
	assignment commands.AssignmentCommandHandler
	completion commands.CompletionCommandHandler
	terms      commands.TermsCommandHandler
}

func newFixture() *fixture {
	store := memstore.New()
	observer := newRecordingObserver()
	factory := commands.UoWFactoryFunc(func() commands.UoW { return store.Create() })

	return &fixture{
		store:      store,
		observer:   observer,
		create:     commands.NewCreateDeliveryCommandHandler(factory, clock),
		escrow:     commands.NewEscrowCommandHandler(factory, clock, observer),
		assignment: commands.NewAssignmentCommandHandler(factory, clock),
		completion: commands.NewCompletionCommandHandler(factory, clock, observer),
		terms:      commands.NewTermsCommandHandler(factory, clock),
	}
}

func (f *fixture) createDelivery(t *testing.T, cost uint64) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(id, company, delivery.Metadata{Method: []byte("van")}, cost, now.Add(48*time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.create.Handle(t.Context(), cmd))
	return id
}

func (f *fixture) deposit(t *testing.T, id kernel.UUID, amount uint64) {
	t.Helper()

	cmd, err := commands.NewDepositToEscrowCommand(id, company, amount)
	require.NoError(t, err)
	require.NoError(t, f.escrow.Deposit(t.Context(), cmd))
}

func (f *fixture) assign(t *testing.T, id kernel.UUID, d kernel.Address) {
	t.Helper()

	cmd, err := commands.NewAssignDriverCommand(id, company, d)
	require.NoError(t, err)
	require.NoError(t, f.assignment.Assign(t.Context(), cmd))
}

func (f *fixture) load(t *testing.T, id kernel.UUID) *delivery.DeliveryWork {
	t.Helper()

	uow := f.store.Create()
	require.NoError(t, uow.Begin(t.Context()))
	defer func() { _ = uow.Rollback(t.Context()) }()

	work, err := uow.DeliveryRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return work
}

func (f *fixture) balance(t *testing.T, owner kernel.Address) uint64 {
	t.Helper()

	uow := f.store.Create()
	require.NoError(t, uow.Begin(t.Context()))
	defer func() { _ = uow.Rollback(t.Context()) }()

	acc, err := uow.AccountRepository().Get(t.Context(), owner)
	if err != nil {
		return 0
	}
	return acc.Balance().Value()
}
