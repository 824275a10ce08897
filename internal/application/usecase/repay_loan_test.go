package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/application/usecase"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
)

func TestRepayLoan_Execute(t *testing.T) {
	t.Run("records a partial repayment", func(t *testing.T) {
		loan := newApprovedLoan(t)
		loanRepo := loanRepoReturning(loan)
		repaymentRepo := &mockRepaymentRepo{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRepayLoanUseCase(loanRepo, repaymentRepo, &mockSequences{}, publisher)

		resp, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID: "LOAN000001",
			Amount: decimal.NewFromInt(8_653),
		})
		require.NoError(t, err)

		assert.Equal(t, "REP000001", resp.RepaymentID)
		assert.Equal(t, "approved", resp.LoanStatus)
		assert.True(t, decimal.NewFromInt(8_653).Equal(resp.AmountRepaid))
		assert.True(t, loan.OutstandingAmount().Sub(decimal.NewFromInt(8_653)).Equal(resp.OutstandingAmount))
		assert.Equal(t, "Payment recorded successfully", resp.Message)

		require.Len(t, repaymentRepo.entries, 1)
		assert.Equal(t, model.DefaultPaymentMethod, repaymentRepo.entries[0].PaymentMethod)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("settles the loan on full repayment", func(t *testing.T) {
		loan := newApprovedLoan(t)
		loanRepo := loanRepoReturning(loan)

		uc := usecase.NewRepayLoanUseCase(loanRepo, &mockRepaymentRepo{}, &mockSequences{}, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID: "LOAN000001",
			Amount: loan.OutstandingAmount(),
		})
		require.NoError(t, err)
		assert.Equal(t, "repaid", resp.LoanStatus)
		assert.True(t, resp.OutstandingAmount.IsZero())
		assert.Equal(t, "Congratulations! Loan fully repaid", resp.Message)
	})

	t.Run("farmer can only repay their own loan", func(t *testing.T) {
		loanRepo := loanRepoReturning(newApprovedLoan(t))
		repaymentRepo := &mockRepaymentRepo{}

		uc := usecase.NewRepayLoanUseCase(loanRepo, repaymentRepo, &mockSequences{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID:   "LOAN000001",
			FarmerID: "FRM000999",
			Amount:   decimal.NewFromInt(1_000),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))
		assert.Empty(t, repaymentRepo.entries)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("matching farmer passes the ownership check", func(t *testing.T) {
		uc := usecase.NewRepayLoanUseCase(loanRepoReturning(newApprovedLoan(t)), &mockRepaymentRepo{}, &mockSequences{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID:   "LOAN000001",
			FarmerID: "FRM000001",
			Amount:   decimal.NewFromInt(1_000),
		})
		assert.NoError(t, err)
	})

	t.Run("settled loan rejects further repayments", func(t *testing.T) {
		loan := newApprovedLoan(t)
		settled, err := loan.Repay(loan.OutstandingAmount(), time.Now().UTC())
		require.NoError(t, err)

		uc := usecase.NewRepayLoanUseCase(loanRepoReturning(settled.ClearEvents()), &mockRepaymentRepo{}, &mockSequences{}, &mockEventPublisher{})

		_, err = uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID: "LOAN000001",
			Amount: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.AlreadyRepaid))
	})

	t.Run("version conflict leaves no ledger entry", func(t *testing.T) {
		loanRepo := loanRepoReturning(newApprovedLoan(t))
		loanRepo.saveFunc = func(context.Context, model.Loan) error {
			return apperr.New(apperr.Internal, "optimistic locking conflict on loan LOAN000001")
		}
		repaymentRepo := &mockRepaymentRepo{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRepayLoanUseCase(loanRepo, repaymentRepo, &mockSequences{}, publisher)

		_, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID: "LOAN000001",
			Amount: decimal.NewFromInt(1_000),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save loan")
		assert.Empty(t, repaymentRepo.entries)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when the ledger append fails", func(t *testing.T) {
		repaymentRepo := &mockRepaymentRepo{
			appendFunc: func(context.Context, model.Repayment) error {
				return fmt.Errorf("database unavailable")
			},
		}
		loanRepo := loanRepoReturning(newApprovedLoan(t))
		publisher := &mockEventPublisher{}

		uc := usecase.NewRepayLoanUseCase(loanRepo, repaymentRepo, &mockSequences{}, publisher)

		_, err := uc.Execute(context.Background(), dto.RepayLoanRequest{
			LoanID: "LOAN000001",
			Amount: decimal.NewFromInt(1_000),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "append repayment")
		assert.Empty(t, publisher.publishedEvents)
	})
}
