package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// RepayLoanUseCase records a repayment against a loan. The balance update is
// saved under an optimistic version check before the ledger entry is
// appended, so concurrent repayments cannot both apply against the same
// balance and a losing writer never records an orphan ledger entry.
type RepayLoanUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
	sequences     port.SequenceGenerator
	publisher     port.EventPublisher
}

// NewRepayLoanUseCase wires dependencies.
func NewRepayLoanUseCase(
	loanRepo port.LoanRepository,
	repaymentRepo port.RepaymentRepository,
	sequences port.SequenceGenerator,
	publisher port.EventPublisher,
) *RepayLoanUseCase {
	return &RepayLoanUseCase{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		sequences:     sequences,
		publisher:     publisher,
	}
}

// Execute applies the repayment. Overpayment is accepted: the outstanding
// balance floors at zero while the cumulative repaid amount records the full
// amount tendered.
func (uc *RepayLoanUseCase) Execute(
	ctx context.Context,
	req dto.RepayLoanRequest,
) (dto.RepaymentResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. When the caller is authenticated as a farmer, the loan must be
	// theirs.
	if req.FarmerID != "" && req.FarmerID != loan.FarmerID() {
		return dto.RepaymentResponse{}, apperr.New(apperr.NotFound, "loan not found")
	}

	// 3. Apply the repayment to the aggregate.
	loan, err = loan.Repay(req.Amount, now)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("repay loan: %w", err)
	}

	// 4. Build the ledger entry before touching storage.
	repaymentID, err := uc.sequences.Next(ctx, port.SequenceRepayment)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("next repayment id: %w", err)
	}
	txnRef := fmt.Sprintf("TXN%d", now.UnixMilli())
	entry, err := model.NewRepayment(repaymentID, req.LoanID, req.Amount, req.PaymentMethod, txnRef, now)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("new repayment: %w", err)
	}

	// 5. Persist the balance first. The version-checked save is the gate for
	// concurrent repayments: a losing writer must not leave a ledger row whose
	// amount is reflected nowhere in the balance.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.repaymentRepo.Append(ctx, entry); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("append repayment: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	message := "Payment recorded successfully"
	if loan.Status().Equal(valueobject.LoanStatusRepaid) {
		message = "Congratulations! Loan fully repaid"
	}

	return dto.RepaymentResponse{
		RepaymentID:       entry.ID,
		LoanID:            loan.ID(),
		Amount:            entry.Amount,
		AmountRepaid:      loan.AmountRepaid(),
		OutstandingAmount: loan.OutstandingAmount(),
		LoanStatus:        loan.Status().String(),
		TransactionRef:    entry.TransactionRef,
		RepaymentDate:     entry.RepaymentDate,
		Message:           message,
	}, nil
}
