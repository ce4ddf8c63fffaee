package delivery_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	company  = kernel.MustNewAddress("0xc0ffee")
	driver   = kernel.MustNewAddress("0xd00d")
	stranger = kernel.MustNewAddress("0xbeef")

	createdAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dueDate   = createdAt.Add(48 * time.Hour)
)

func newWork(t *testing.T, cost uint64) *delivery.DeliveryWork {
	t.Helper()

	work, err := delivery.NewDeliveryWork(
		kernel.NewUUID(),
		company,
		delivery.Metadata{SenderName: []byte("Acme"), Method: []byte("van")},
		cost,
		createdAt,
		dueDate,
	)
	require.NoError(t, err)
	return work
}

func newAssignedWork(t *testing.T, deposit uint64) *delivery.DeliveryWork {
	t.Helper()

	work := newWork(t, 100)
	require.NoError(t, work.DepositToEscrow(company, coin.New(deposit)))
	require.NoError(t, work.AssignDriver(company, driver))
	return work
}

// snapshot captures every observable field so tests can assert that a failed
// operation had no effect.
type snapshot struct {
	driver  *kernel.Address
	cost    uint64
	escrow  uint64
	status  delivery.Status
	proof   []byte
	dueDate time.Time
	events  int
}

func take(work *delivery.DeliveryWork) snapshot {
	return snapshot{
		driver:  work.Driver(),
		cost:    work.Cost(),
		escrow:  work.Escrow().Value(),
		status:  work.Status(),
		proof:   work.Proof(),
		dueDate: work.DueDate(),
		events:  len(work.DomainEvents()),
	}
}

func TestNewDeliveryWork(t *testing.T) {
	t.Run("should create open delivery with empty escrow", func(t *testing.T) {
		id := kernel.NewUUID()

		work, err := delivery.NewDeliveryWork(id, company, delivery.Metadata{Priority: []byte("high")}, 100, createdAt, dueDate)

		require.NoError(t, err)
		require.NoError(t, work.Validate())
		assert.True(t, work.ID().IsEqual(id))
		assert.True(t, work.Company().IsEqual(company))
		assert.Nil(t, work.Driver())
		assert.Equal(t, uint64(100), work.Cost())
		assert.True(t, work.Escrow().IsZero())
		assert.Equal(t, delivery.Open, work.Status())
		assert.Nil(t, work.Proof())
		assert.Equal(t, createdAt, work.CreatedAt())
		assert.Equal(t, dueDate, work.DueDate())
		assert.Equal(t, []byte("high"), work.Metadata().Priority)
		assert.Empty(t, work.DomainEvents())
	})

	t.Run("should not share metadata buffers with the caller", func(t *testing.T) {
		method := []byte("van")
		work, err := delivery.NewDeliveryWork(kernel.NewUUID(), company, delivery.Metadata{Method: method}, 1, createdAt, dueDate)
		require.NoError(t, err)

		method[0] = 'c'
		work.Metadata().Method[1] = 'x'

		assert.Equal(t, []byte("van"), work.Metadata().Method)
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		work, err := delivery.NewDeliveryWork(kernel.UUID{}, kernel.Address{}, delivery.Metadata{}, 0, time.Time{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, work)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "company")
		assert.Contains(t, err.Error(), "created at")
		assert.Contains(t, err.Error(), "due date")
	})
}

func TestRestoreDeliveryWork(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		d := driver

		work, err := delivery.RestoreDeliveryWork(
			id, company, delivery.Metadata{}, &d, 100, coin.NewBalance(40),
			delivery.Disputed, []byte("sig"), createdAt, dueDate, 7,
		)

		require.NoError(t, err)
		assert.True(t, work.Driver().IsEqual(driver))
		assert.Equal(t, uint64(40), work.Escrow().Value())
		assert.Equal(t, delivery.Disputed, work.Status())
		assert.Equal(t, []byte("sig"), work.Proof())
		assert.Equal(t, uint64(7), work.Version())
	})

	t.Run("should reject open delivery with a driver", func(t *testing.T) {
		d := driver

		_, err := delivery.RestoreDeliveryWork(
			kernel.NewUUID(), company, delivery.Metadata{}, &d, 100, coin.Balance{},
			delivery.Open, nil, createdAt, dueDate, 1,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := delivery.RestoreDeliveryWork(
			kernel.NewUUID(), company, delivery.Metadata{}, nil, 100, coin.Balance{},
			delivery.Unknown, nil, createdAt, dueDate, 1,
		)

		require.Error(t, err)
	})
}

func TestDeliveryWork_Validate(t *testing.T) {
	t.Run("should fail for nil delivery", func(t *testing.T) {
		var work *delivery.DeliveryWork

		assert.Equal(t, delivery.ErrDeliveryWorkIsNotConstructed, work.Validate())
	})

	t.Run("should fail for zero value delivery", func(t *testing.T) {
		work := &delivery.DeliveryWork{}

		assert.Equal(t, delivery.ErrDeliveryWorkIsNotConstructed, work.Validate())
	})
}

func TestDeliveryWork_Driver_ReturnsCopy(t *testing.T) {
	work := newAssignedWork(t, 0)

	d := work.Driver()
	*d = stranger

	assert.True(t, work.Driver().IsEqual(driver))
}

func TestDeliveryWork_DepositToEscrow(t *testing.T) {
	t.Run("should accumulate deposits", func(t *testing.T) {
		work := newWork(t, 100)

		require.NoError(t, work.DepositToEscrow(company, coin.New(60)))
		require.NoError(t, work.DepositToEscrow(company, coin.New(40)))

		assert.Equal(t, uint64(100), work.Escrow().Value())
	})

	t.Run("should reject deposit from anyone but the company", func(t *testing.T) {
		work := newAssignedWork(t, 10)

		err := work.DepositToEscrow(driver, coin.New(5))

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, uint64(10), work.Escrow().Value())
	})

	t.Run("should reject unconstructed coin", func(t *testing.T) {
		work := newWork(t, 100)

		err := work.DepositToEscrow(company, coin.Coin{})

		assert.ErrorIs(t, err, coin.ErrCoinIsNotConstructed)
	})
}

func TestDeliveryWork_AssignAndUnassign(t *testing.T) {
	t.Run("should assign driver and move to Assigned", func(t *testing.T) {
		work := newWork(t, 100)

		require.NoError(t, work.AssignDriver(company, driver))

		assert.Equal(t, delivery.Assigned, work.Status())
		assert.True(t, work.Driver().IsEqual(driver))
	})

	t.Run("should overwrite the assigned driver", func(t *testing.T) {
		work := newAssignedWork(t, 0)

		require.NoError(t, work.AssignDriver(company, stranger))

		assert.True(t, work.Driver().IsEqual(stranger))
		assert.Equal(t, delivery.Assigned, work.Status())
	})

	t.Run("should unassign driver and reopen", func(t *testing.T) {
		work := newAssignedWork(t, 0)

		require.NoError(t, work.UnassignDriver(company))

		assert.Nil(t, work.Driver())
		assert.Equal(t, delivery.Open, work.Status())
	})

	t.Run("should reject driver changes from non-company callers", func(t *testing.T) {
		work := newAssignedWork(t, 0)
		before := take(work)

		assert.ErrorIs(t, work.AssignDriver(driver, stranger), errs.ErrNotAuthorized)
		assert.ErrorIs(t, work.UnassignDriver(driver), errs.ErrNotAuthorized)
		assert.Equal(t, before, take(work))
	})

	t.Run("should reject unconstructed driver address", func(t *testing.T) {
		work := newWork(t, 100)

		err := work.AssignDriver(company, kernel.Address{})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.Open, work.Status())
	})
}

func TestDeliveryWork_ApplyForDelivery(t *testing.T) {
	t.Run("should reject application when no driver slot is occupied", func(t *testing.T) {
		work := newWork(t, 100)

		err := work.ApplyForDelivery(driver)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Nil(t, work.Driver())
		assert.Equal(t, delivery.Open, work.Status())
	})

	t.Run("should replace occupied driver slot with the applicant", func(t *testing.T) {
		work := newAssignedWork(t, 0)

		require.NoError(t, work.ApplyForDelivery(stranger))

		assert.True(t, work.Driver().IsEqual(stranger))
		assert.Equal(t, delivery.Assigned, work.Status())
	})
}

func TestDeliveryWork_UploadProof(t *testing.T) {
	t.Run("should complete delivery and settle escrow to the driver", func(t *testing.T) {
		work := newWork(t, 100)
		require.NoError(t, work.DepositToEscrow(company, coin.New(100)))
		require.NoError(t, work.AssignDriver(company, driver))

		payout, err := work.UploadProof(driver, []byte("sig"))

		require.NoError(t, err)
		assert.True(t, work.Details().Finished)
		assert.Equal(t, delivery.Completed, work.Status())
		assert.Equal(t, []byte("sig"), work.Proof())
		assert.True(t, work.Escrow().IsZero())
		assert.Equal(t, delivery.PayoutSettlement, payout.Kind())
		assert.True(t, payout.Recipient().IsEqual(driver))
		assert.Equal(t, uint64(100), payout.Amount())

		events := work.DomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(delivery.DeliveryCompleted)
		require.True(t, ok)
		assert.Equal(t, delivery.DeliveryCompletedEventName, completed.EventName())
		assert.True(t, completed.AggregateID().IsEqual(work.ID()))
		assert.True(t, completed.Company().IsEqual(company))
		assert.True(t, completed.Driver().IsEqual(driver))
		assert.Equal(t, []byte("sig"), completed.Proof())
		assert.Equal(t, uint64(100), completed.Amount())
	})

	t.Run("should reject upload from anyone but the assigned driver", func(t *testing.T) {
		work := newAssignedWork(t, 100)
		before := take(work)

		_, err := work.UploadProof(company, []byte("sig"))

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, before, take(work))
	})

	t.Run("should reject empty proof", func(t *testing.T) {
		work := newAssignedWork(t, 100)
		before := take(work)

		_, err := work.UploadProof(driver, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, before, take(work))
	})

	t.Run("should reject upload while disputed", func(t *testing.T) {
		work := newAssignedWork(t, 100)
		require.NoError(t, work.ReportIssues(driver))
		before := take(work)

		_, err := work.UploadProof(driver, []byte("sig"))

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, before, take(work))
	})

	t.Run("should overwrite proof on a second upload", func(t *testing.T) {
		work := newAssignedWork(t, 100)
		_, err := work.UploadProof(driver, []byte("first"))
		require.NoError(t, err)

		payout, err := work.UploadProof(driver, []byte("second"))

		require.NoError(t, err)
		assert.Equal(t, []byte("second"), work.Proof())
		assert.Equal(t, uint64(0), payout.Amount())
		assert.Len(t, work.DomainEvents(), 2)
	})
}

func TestDeliveryWork_MarkComplete(t *testing.T) {
	t.Run("should complete without touching the escrow", func(t *testing.T) {
		work := newAssignedWork(t, 30)

		require.NoError(t, work.MarkComplete(driver))

		assert.Equal(t, delivery.Completed, work.Status())
		assert.Equal(t, uint64(30), work.Escrow().Value())
		assert.Empty(t, work.DomainEvents())
	})

	t.Run("should reject the company", func(t *testing.T) {
		work := newAssignedWork(t, 30)

		assert.ErrorIs(t, work.MarkComplete(company), errs.ErrNotAuthorized)
		assert.Equal(t, delivery.Assigned, work.Status())
	})
}

func TestDeliveryWork_Issues(t *testing.T) {
	t.Run("should reopen after company resolves reported issues", func(t *testing.T) {
		work := newWork(t, 100)
		require.NoError(t, work.AssignDriver(company, driver))

		require.NoError(t, work.ReportIssues(driver))
		assert.True(t, work.Status().HasIssues())

		require.NoError(t, work.ResolveIssues(company))

		assert.False(t, work.Details().Finished)
		assert.False(t, work.Status().HasIssues())
		assert.Equal(t, delivery.Assigned, work.Status())
		assert.True(t, work.Driver().IsEqual(driver))
	})

	t.Run("should reject resolve without an active issue", func(t *testing.T) {
		work := newAssignedWork(t, 0)

		err := work.ResolveIssues(company)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "no active issue")
	})

	t.Run("should reject resolve when driver was unassigned during the dispute", func(t *testing.T) {
		work := newAssignedWork(t, 0)
		require.NoError(t, work.ReportIssues(driver))
		require.NoError(t, work.UnassignDriver(company))

		err := work.ResolveIssues(company)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "no driver assigned")
		assert.Equal(t, delivery.Disputed, work.Status())
	})

	t.Run("should reject report from the company", func(t *testing.T) {
		work := newAssignedWork(t, 0)

		assert.ErrorIs(t, work.ReportIssues(company), errs.ErrNotAuthorized)
	})

	t.Run("should reject report after completion", func(t *testing.T) {
		work := newAssignedWork(t, 0)
		require.NoError(t, work.MarkComplete(driver))

		assert.ErrorIs(t, work.ReportIssues(driver), errs.ErrInvalidState)
	})

	t.Run("should reject resolve from the driver", func(t *testing.T) {
		work := newAssignedWork(t, 0)
		require.NoError(t, work.ReportIssues(driver))

		assert.ErrorIs(t, work.ResolveIssues(driver), errs.ErrNotAuthorized)
		assert.Equal(t, delivery.Disputed, work.Status())
	})
}

func TestDeliveryWork_SettleAndRefund(t *testing.T) {
	t.Run("should settle full escrow to the driver after completion", func(t *testing.T) {
		work := newAssignedWork(t, 80)
		require.NoError(t, work.MarkComplete(driver))

		payout, err := work.Settle(company)

		require.NoError(t, err)
		assert.Equal(t, delivery.PayoutSettlement, payout.Kind())
		assert.True(t, payout.Recipient().IsEqual(driver))
		assert.Equal(t, uint64(80), payout.Amount())
		assert.True(t, work.Escrow().IsZero())
	})

	t.Run("should refuse settlement before completion", func(t *testing.T) {
		work := newAssignedWork(t, 80)

		_, err := work.Settle(company)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, uint64(80), work.Escrow().Value())
	})

	t.Run("should refuse settlement when driver was cleared after completion", func(t *testing.T) {
		work := newAssignedWork(t, 80)
		require.NoError(t, work.MarkComplete(driver))
		require.NoError(t, work.UnassignDriver(company))

		_, err := work.Settle(company)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, uint64(80), work.Escrow().Value())
	})

	t.Run("should refund full escrow to the company after completion", func(t *testing.T) {
		work := newAssignedWork(t, 80)
		require.NoError(t, work.MarkComplete(driver))

		payout, err := work.Refund(company)

		require.NoError(t, err)
		assert.Equal(t, delivery.PayoutRefund, payout.Kind())
		assert.True(t, payout.Recipient().IsEqual(company))
		assert.Equal(t, uint64(80), payout.Amount())
		assert.True(t, work.Escrow().IsZero())
	})

	t.Run("should refuse refund before completion", func(t *testing.T) {
		work := newAssignedWork(t, 80)

		_, err := work.Refund(company)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject settle and refund from the driver", func(t *testing.T) {
		work := newAssignedWork(t, 80)
		require.NoError(t, work.MarkComplete(driver))
		before := take(work)

		_, err := work.Settle(driver)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		_, err = work.Refund(driver)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, before, take(work))
	})
}

func TestDeliveryWork_Withdraw(t *testing.T) {
	t.Run("should fail with insufficient funds and leave escrow unchanged", func(t *testing.T) {
		work := newWork(t, 100)
		require.NoError(t, work.DepositToEscrow(company, coin.New(50)))

		_, err := work.Withdraw(company, 60)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, uint64(50), work.Escrow().Value())
	})

	t.Run("should withdraw exact amount to the company in any state", func(t *testing.T) {
		work := newAssignedWork(t, 50)
		require.NoError(t, work.ReportIssues(driver))

		payout, err := work.Withdraw(company, 20)

		require.NoError(t, err)
		assert.Equal(t, delivery.PayoutWithdrawal, payout.Kind())
		assert.True(t, payout.Recipient().IsEqual(company))
		assert.Equal(t, uint64(20), payout.Amount())
		assert.Equal(t, uint64(30), work.Escrow().Value())
	})

	t.Run("should allow draining to zero", func(t *testing.T) {
		work := newAssignedWork(t, 50)

		_, err := work.Withdraw(company, 50)

		require.NoError(t, err)
		assert.True(t, work.Escrow().IsZero())
	})

	t.Run("should reject the driver", func(t *testing.T) {
		work := newAssignedWork(t, 50)

		_, err := work.Withdraw(driver, 10)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, uint64(50), work.Escrow().Value())
	})
}

func TestDeliveryWork_PayTip(t *testing.T) {
	t.Run("should pay tip to the assigned driver", func(t *testing.T) {
		work := newAssignedWork(t, 50)

		payout, err := work.PayTip(driver, 5)

		require.NoError(t, err)
		assert.Equal(t, delivery.PayoutTip, payout.Kind())
		assert.True(t, payout.Recipient().IsEqual(driver))
		assert.Equal(t, uint64(5), payout.Amount())
		assert.Equal(t, uint64(45), work.Escrow().Value())
	})

	t.Run("should reject tip above the escrow balance", func(t *testing.T) {
		work := newAssignedWork(t, 5)

		_, err := work.PayTip(driver, 6)

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, uint64(5), work.Escrow().Value())
	})

	t.Run("should reject tip when nobody is assigned", func(t *testing.T) {
		work := newWork(t, 100)

		_, err := work.PayTip(driver, 0)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestDeliveryWork_Terms(t *testing.T) {
	t.Run("should let the company change due date and price", func(t *testing.T) {
		work := newWork(t, 100)
		later := dueDate.Add(24 * time.Hour)

		require.NoError(t, work.ExtendDueDate(company, later))
		require.NoError(t, work.UpdatePrice(company, 150))

		assert.Equal(t, later, work.DueDate())
		assert.Equal(t, delivery.Details{Finished: false, Cost: 150}, work.Details())
	})

	t.Run("should reject zero due date", func(t *testing.T) {
		work := newWork(t, 100)

		assert.ErrorIs(t, work.ExtendDueDate(company, time.Time{}), errs.ErrValueIsRequired)
		assert.Equal(t, dueDate, work.DueDate())
	})

	t.Run("should reject terms changes from strangers", func(t *testing.T) {
		work := newWork(t, 100)
		before := take(work)

		assert.ErrorIs(t, work.ExtendDueDate(stranger, dueDate.Add(time.Hour)), errs.ErrNotAuthorized)
		assert.ErrorIs(t, work.UpdatePrice(stranger, 1), errs.ErrNotAuthorized)
		assert.Equal(t, before, take(work))
	})
}

func TestDeliveryWork_EscrowConservation(t *testing.T) {
	work := newAssignedWork(t, 0)

	var deposited, disbursed uint64
	for _, amount := range []uint64{10, 25, 5, 60} {
		require.NoError(t, work.DepositToEscrow(company, coin.New(amount)))
		deposited += amount
	}

	for _, step := range []func() (delivery.Payout, error){
		func() (delivery.Payout, error) { return work.Withdraw(company, 15) },
		func() (delivery.Payout, error) { return work.PayTip(driver, 7) },
		func() (delivery.Payout, error) { return work.Withdraw(company, 1000) },
		func() (delivery.Payout, error) { return work.UploadProof(driver, []byte("sig")) },
	} {
		payout, err := step()
		if err == nil {
			disbursed += payout.Amount()
		}
		assert.Equal(t, deposited-disbursed, work.Escrow().Value())
	}

	assert.True(t, work.Escrow().IsZero())
	assert.Equal(t, deposited, disbursed)
}

func TestDeliveryWork_ClearDomainEvents(t *testing.T) {
	work := newAssignedWork(t, 10)
	_, err := work.UploadProof(driver, []byte("sig"))
	require.NoError(t, err)

	work.ClearDomainEvents()

	assert.Empty(t, work.DomainEvents())
}
