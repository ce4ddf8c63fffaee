package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/messages"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEscrowCommandHandler_UploadProofSettlesToDriver(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)
	f.deposit(t, id, 100)
	f.assign(t, id, driver)

	cmd, err := commands.NewUploadProofCommand(id, driver, []byte("sig"))
	require.NoError(t, err)

	payout, err := f.completion.UploadProof(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, uint64(100), payout.Amount())

	work := f.load(t, id)
	assert.True(t, work.Details().Finished)
	assert.Equal(t, []byte("sig"), work.Proof())
	assert.True(t, work.Escrow().IsZero())
	assert.Equal(t, uint64(100), f.balance(t, driver))

	outbox := f.store.Outbox()
	require.Len(t, outbox, 1)
	assert.Equal(t, delivery.DeliveryCompletedEventName, outbox[0].EventName)
	assert.True(t, outbox[0].AggregateID.IsEqual(id))
	msg, err := messages.DecodeDeliveryCompleted(outbox[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "0xd00d", msg.Driver)
	assert.Equal(t, now, msg.CompletedAt)

	assert.Equal(t, uint64(100), f.observer.deposited)
	assert.Equal(t, uint64(100), f.observer.disbursed[delivery.PayoutSettlement])
}

func TestEscrowCommandHandler_WithdrawMoreThanBalance(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)
	f.deposit(t, id, 50)
	commitsBefore := f.store.Commits()

	cmd, err := commands.NewWithdrawFromEscrowCommand(id, company, 60)
	require.NoError(t, err)

	_, err = f.escrow.Withdraw(t.Context(), cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.Equal(t, uint64(50), f.load(t, id).Escrow().Value())
	assert.Equal(t, commitsBefore, f.store.Commits())
	assert.Zero(t, f.balance(t, company))
}

func TestEscrowCommandHandler_WithdrawCreditsCompany(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)
	f.deposit(t, id, 50)

	cmd, err := commands.NewWithdrawFromEscrowCommand(id, company, 20)
	require.NoError(t, err)

	payout, err := f.escrow.Withdraw(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.PayoutWithdrawal, payout.Kind())
	assert.Equal(t, uint64(30), f.load(t, id).Escrow().Value())
	assert.Equal(t, uint64(20), f.balance(t, company))

	// a second withdrawal credits the existing account
	_, err = f.escrow.Withdraw(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), f.balance(t, company))
	assert.Equal(t, uint64(40), f.observer.disbursed[delivery.PayoutWithdrawal])
}

func TestEscrowCommandHandler_SettleAndRefund(t *testing.T) {
	t.Run("should settle a completed delivery to the driver", func(t *testing.T) {
		f := newFixture()
		id := f.createDelivery(t, 100)
		f.deposit(t, id, 70)
		f.assign(t, id, driver)
		complete, _ := commands.NewMarkCompleteCommand(id, driver)
		require.NoError(t, f.completion.MarkComplete(t.Context(), complete))

		cmd, _ := commands.NewSettleEscrowCommand(id, company)
		payout, err := f.escrow.Settle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, uint64(70), payout.Amount())
		assert.Equal(t, uint64(70), f.balance(t, driver))
		assert.Empty(t, f.store.Outbox())
	})

	t.Run("should refund a completed delivery to the company", func(t *testing.T) {
		f := newFixture()
		id := f.createDelivery(t, 100)
		f.deposit(t, id, 70)
		f.assign(t, id, driver)
		complete, _ := commands.NewMarkCompleteCommand(id, driver)
		require.NoError(t, f.completion.MarkComplete(t.Context(), complete))

		cmd, _ := commands.NewRefundEscrowCommand(id, company)
		_, err := f.escrow.Refund(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, uint64(70), f.balance(t, company))
		assert.True(t, f.load(t, id).Escrow().IsZero())
	})

	t.Run("should refuse settlement of an unfinished delivery", func(t *testing.T) {
		f := newFixture()
		id := f.createDelivery(t, 100)
		f.deposit(t, id, 70)

		cmd, _ := commands.NewSettleEscrowCommand(id, company)
		_, err := f.escrow.Settle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, uint64(70), f.load(t, id).Escrow().Value())
	})

	t.Run("should skip crediting an empty settlement", func(t *testing.T) {
		f := newFixture()
		id := f.createDelivery(t, 100)
		f.assign(t, id, driver)
		complete, _ := commands.NewMarkCompleteCommand(id, driver)
		require.NoError(t, f.completion.MarkComplete(t.Context(), complete))

		cmd, _ := commands.NewSettleEscrowCommand(id, company)
		payout, err := f.escrow.Settle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Zero(t, payout.Amount())
		assert.Zero(t, f.balance(t, driver))
	})
}

func TestEscrowCommandHandler_PayTip(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)
	f.deposit(t, id, 10)
	f.assign(t, id, driver)

	cmd, _ := commands.NewPayTipCommand(id, driver, 4)
	_, err := f.escrow.PayTip(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, uint64(4), f.balance(t, driver))
	assert.Equal(t, uint64(6), f.load(t, id).Escrow().Value())

	cmd, _ = commands.NewPayTipCommand(id, company, 1)
	_, err = f.escrow.PayTip(t.Context(), cmd)
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestEscrowCommandHandler_DepositUnauthorized(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)

	cmd, _ := commands.NewDepositToEscrowCommand(id, stranger, 10)
	err := f.escrow.Deposit(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.True(t, f.load(t, id).Escrow().IsZero())
	assert.Zero(t, f.observer.deposited)
}

func TestEscrowCommandHandler_DeliveryNotFound(t *testing.T) {
	f := newFixture()

	cmd, _ := commands.NewDepositToEscrowCommand(kernel.NewUUID(), company, 10)
	err := f.escrow.Deposit(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestEscrowCommandHandler_UpdateConflictRollsBack(t *testing.T) {
	ctx := t.Context()
	work, err := delivery.NewDeliveryWork(kernel.NewUUID(), company, delivery.Metadata{}, 100, now, now)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	conflict := errs.NewVersionIsInvalidError("delivery")

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, work.ID()).Return(work, nil).Once(),
		deliveryRepo.On("Update", ctx, work).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	observer := newRecordingObserver()
	handler := commands.NewEscrowCommandHandler(commands.UoWFactoryFunc(func() commands.UoW { return uow }), clock, observer)

	cmd, _ := commands.NewDepositToEscrowCommand(work.ID(), company, 10)
	err = handler.Deposit(ctx, cmd)

	assert.True(t, errors.Is(err, errs.ErrVersionIsInvalid))
	assert.Zero(t, observer.deposited)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestEscrowCommandHandler_EscrowConservation(t *testing.T) {
	f := newFixture()
	id := f.createDelivery(t, 100)
	f.assign(t, id, driver)

	for _, amount := range []uint64{30, 20, 50} {
		f.deposit(t, id, amount)
	}

	withdraw, _ := commands.NewWithdrawFromEscrowCommand(id, company, 25)
	_, err := f.escrow.Withdraw(t.Context(), withdraw)
	require.NoError(t, err)

	tip, _ := commands.NewPayTipCommand(id, driver, 5)
	_, err = f.escrow.PayTip(t.Context(), tip)
	require.NoError(t, err)

	proof, _ := commands.NewUploadProofCommand(id, driver, []byte("sig"))
	_, err = f.completion.UploadProof(t.Context(), proof)
	require.NoError(t, err)

	assert.True(t, f.load(t, id).Escrow().IsZero())
	assert.Equal(t, uint64(25), f.balance(t, company))
	assert.Equal(t, uint64(75), f.balance(t, driver))
	assert.Equal(t, f.observer.deposited, f.balance(t, company)+f.balance(t, driver))
}
