package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// DisburseLoanUseCase releases funds for an approved loan. Only the
// institution that approved the loan may disburse it.
type DisburseLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute disburses an approved loan and records the transaction reference.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanDecisionResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Disburse with a fresh transaction reference.
	txnRef := fmt.Sprintf("TXN%d", now.UnixMilli())
	loan, err = loan.Disburse(req.BankID, txnRef, now)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("disburse loan: %w", err)
	}

	// 3. Persist and publish.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.LoanDecisionResponse{
		LoanID:           loan.ID(),
		Status:           loan.Status().String(),
		ApprovedAmount:   loan.ApprovedAmount(),
		TransactionRef:   loan.TransactionRef(),
		DisbursementDate: loan.DisbursementDate(),
		Message:          "Loan disbursed successfully",
	}, nil
}
