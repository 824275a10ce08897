package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func pendingLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		"LOAN000001", "FRM000001",
		decimal.NewFromInt(100_000), decimal.NewFromInt(7), 12,
		"Seeds and fertilizer", "Government Kisan Credit Card", "Government",
		62, valueobject.RiskLevelMedium,
		testNow,
	)
	require.NoError(t, err)
	return loan
}

func approvedLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := pendingLoan(t).Approve("BANK001", decimal.NewFromInt(100_000), decimal.Zero, testNow)
	require.NoError(t, err)
	return loan
}

func TestNewLoan(t *testing.T) {
	t.Run("creates pending application with computed EMI", func(t *testing.T) {
		loan := pendingLoan(t)

		assert.True(t, loan.Status().Equal(valueobject.LoanStatusPending))
		assert.True(t, decimal.NewFromInt(8_653).Equal(loan.EMIAmount()), "got %s", loan.EMIAmount())
		assert.True(t, decimal.NewFromInt(103_836).Equal(loan.OutstandingAmount()))
		assert.True(t, loan.AmountRepaid().IsZero())
		assert.Equal(t, 62, loan.TrustScoreAtApplication())
		require.NotNil(t, loan.RepaymentDueDate())
		assert.Equal(t, testNow.AddDate(0, 12, 0), *loan.RepaymentDueDate())

		require.Len(t, loan.DomainEvents(), 1)
		assert.Equal(t, "agritrust.loan.applied", loan.DomainEvents()[0].EventType())
	})

	t.Run("defaults empty purpose", func(t *testing.T) {
		loan, err := model.NewLoan(
			"LOAN000002", "FRM000001",
			decimal.NewFromInt(50_000), decimal.NewFromInt(10), 24,
			"", "", "",
			40, valueobject.RiskLevelHigh, testNow,
		)
		require.NoError(t, err)
		assert.Equal(t, "Agricultural purposes", loan.Purpose())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := model.NewLoan("LOAN000003", "FRM000001", decimal.Zero, decimal.NewFromInt(7), 12,
			"", "", "", 40, valueobject.RiskLevelHigh, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})

	t.Run("rejects amount above ceiling", func(t *testing.T) {
		_, err := model.NewLoan("LOAN000004", "FRM000001", decimal.NewFromInt(10_000_001), decimal.NewFromInt(7), 12,
			"", "", "", 40, valueobject.RiskLevelHigh, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})

	t.Run("rejects out-of-range rate", func(t *testing.T) {
		_, err := model.NewLoan("LOAN000005", "FRM000001", decimal.NewFromInt(50_000), decimal.NewFromInt(31), 12,
			"", "", "", 40, valueobject.RiskLevelHigh, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})

	t.Run("rejects out-of-range duration", func(t *testing.T) {
		_, err := model.NewLoan("LOAN000006", "FRM000001", decimal.NewFromInt(50_000), decimal.NewFromInt(7), 121,
			"", "", "", 40, valueobject.RiskLevelHigh, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})
}

func TestLoan_Approve(t *testing.T) {
	t.Run("approves with reduced amount and new rate", func(t *testing.T) {
		loan := pendingLoan(t)

		approved, err := loan.Approve("BANK001", decimal.NewFromInt(80_000), decimal.NewFromFloat(10.5), testNow)
		require.NoError(t, err)

		assert.True(t, approved.Status().Equal(valueobject.LoanStatusApproved))
		assert.Equal(t, "BANK001", approved.BankID())
		assert.True(t, decimal.NewFromInt(80_000).Equal(approved.ApprovedAmount()))
		assert.True(t, decimal.NewFromFloat(10.5).Equal(approved.InterestRate()))
		require.NotNil(t, approved.ApprovalDate())

		// EMI is recomputed from the approved terms.
		wantEMI := model.EMI(decimal.NewFromInt(80_000), decimal.NewFromFloat(10.5), 12)
		assert.True(t, wantEMI.Equal(approved.EMIAmount()))
		assert.True(t, model.TotalPayable(wantEMI, 12).Equal(approved.OutstandingAmount()))

		types := eventTypes(approved)
		assert.Contains(t, types, "agritrust.loan.approved")

		// Original aggregate is untouched.
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusPending))
	})

	t.Run("zero rate keeps the requested rate", func(t *testing.T) {
		approved, err := pendingLoan(t).Approve("BANK001", decimal.NewFromInt(100_000), decimal.Zero, testNow)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(approved.InterestRate()))
	})

	t.Run("cannot exceed requested amount", func(t *testing.T) {
		_, err := pendingLoan(t).Approve("BANK001", decimal.NewFromInt(150_000), decimal.Zero, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})

	t.Run("requires pending status", func(t *testing.T) {
		_, err := approvedLoan(t).Approve("BANK001", decimal.NewFromInt(100_000), decimal.Zero, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
	})

	t.Run("requires bank ID", func(t *testing.T) {
		_, err := pendingLoan(t).Approve("", decimal.NewFromInt(100_000), decimal.Zero, testNow)
		require.Error(t, err)
	})
}

func TestLoan_Reject(t *testing.T) {
	t.Run("rejects pending loan with reason", func(t *testing.T) {
		rejected, err := pendingLoan(t).Reject("BANK001", "Insufficient land records", testNow)
		require.NoError(t, err)
		assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))
		assert.Equal(t, "Insufficient land records", rejected.RejectionReason())
		assert.True(t, rejected.Status().IsTerminal())
	})

	t.Run("requires a reason", func(t *testing.T) {
		_, err := pendingLoan(t).Reject("BANK001", "", testNow)
		require.Error(t, err)
	})

	t.Run("cannot reject an approved loan", func(t *testing.T) {
		_, err := approvedLoan(t).Reject("BANK001", "too late", testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
	})
}

func TestLoan_Disburse(t *testing.T) {
	t.Run("approving bank disburses", func(t *testing.T) {
		disbursed, err := approvedLoan(t).Disburse("BANK001", "TXN123", testNow)
		require.NoError(t, err)
		assert.True(t, disbursed.Status().Equal(valueobject.LoanStatusDisbursed))
		assert.Equal(t, "TXN123", disbursed.TransactionRef())
		require.NotNil(t, disbursed.DisbursementDate())
	})

	t.Run("another bank cannot disburse", func(t *testing.T) {
		_, err := approvedLoan(t).Disburse("BANK002", "TXN123", testNow)
		assert.ErrorIs(t, err, model.ErrNotApprovingBank)
	})

	t.Run("requires approved status", func(t *testing.T) {
		_, err := pendingLoan(t).Disburse("BANK001", "TXN123", testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
	})
}

func TestLoan_Repay(t *testing.T) {
	t.Run("partial repayment reduces the balance", func(t *testing.T) {
		loan := approvedLoan(t)
		before := loan.OutstandingAmount()

		repaid, err := loan.Repay(decimal.NewFromInt(8_653), testNow)
		require.NoError(t, err)

		assert.True(t, before.Sub(decimal.NewFromInt(8_653)).Equal(repaid.OutstandingAmount()))
		assert.True(t, decimal.NewFromInt(8_653).Equal(repaid.AmountRepaid()))
		assert.True(t, repaid.Status().Equal(valueobject.LoanStatusApproved))
		assert.Contains(t, eventTypes(repaid), "agritrust.loan.repayment_recorded")
	})

	t.Run("overpayment floors the balance at zero and settles the loan", func(t *testing.T) {
		loan := approvedLoan(t)
		over := loan.OutstandingAmount().Add(decimal.NewFromInt(500))

		repaid, err := loan.Repay(over, testNow)
		require.NoError(t, err)

		assert.True(t, repaid.OutstandingAmount().IsZero())
		assert.True(t, over.Equal(repaid.AmountRepaid()))
		assert.True(t, repaid.Status().Equal(valueobject.LoanStatusRepaid))
		assert.Contains(t, eventTypes(repaid), "agritrust.loan.fully_repaid")
	})

	t.Run("settled loan rejects further repayments", func(t *testing.T) {
		loan := approvedLoan(t)
		settled, err := loan.Repay(loan.OutstandingAmount(), testNow)
		require.NoError(t, err)

		_, err = settled.Repay(decimal.NewFromInt(100), testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.AlreadyRepaid))
	})

	t.Run("pending loan cannot be repaid", func(t *testing.T) {
		_, err := pendingLoan(t).Repay(decimal.NewFromInt(100), testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := approvedLoan(t).Repay(decimal.Zero, testNow)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
	})

	t.Run("disbursed loan accepts repayments", func(t *testing.T) {
		disbursed, err := approvedLoan(t).Disburse("BANK001", "TXN123", testNow)
		require.NoError(t, err)

		repaid, err := disbursed.Repay(decimal.NewFromInt(1_000), testNow)
		require.NoError(t, err)
		assert.True(t, repaid.Status().Equal(valueobject.LoanStatusDisbursed))
	})
}

func TestLoan_StatePersistenceRoundTrip(t *testing.T) {
	loan := approvedLoan(t)

	rebuilt := model.ReconstructLoan(loan.State())

	assert.Equal(t, loan.ID(), rebuilt.ID())
	assert.Equal(t, loan.BankID(), rebuilt.BankID())
	assert.True(t, loan.OutstandingAmount().Equal(rebuilt.OutstandingAmount()))
	assert.True(t, loan.Status().Equal(rebuilt.Status()))
	assert.Equal(t, loan.Version(), rebuilt.Version())
	assert.Empty(t, rebuilt.DomainEvents())
}

func TestLoan_ScheduleStart(t *testing.T) {
	loan := pendingLoan(t)
	assert.Equal(t, testNow, loan.ScheduleStart())

	approvedAt := testNow.AddDate(0, 0, 2)
	approved, err := loan.Approve("BANK001", decimal.NewFromInt(100_000), decimal.Zero, approvedAt)
	require.NoError(t, err)
	assert.Equal(t, approvedAt, approved.ScheduleStart())

	disbursedAt := testNow.AddDate(0, 0, 5)
	disbursed, err := approved.Disburse("BANK001", "TXN1", disbursedAt)
	require.NoError(t, err)
	assert.Equal(t, disbursedAt, disbursed.ScheduleStart())
}

func TestLoan_ClearEvents(t *testing.T) {
	loan := pendingLoan(t)
	require.NotEmpty(t, loan.DomainEvents())
	assert.Empty(t, loan.ClearEvents().DomainEvents())
}

func eventTypes(loan model.Loan) []string {
	var types []string
	for _, e := range loan.DomainEvents() {
		types = append(types, e.EventType())
	}
	return types
}
