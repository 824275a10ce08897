package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// RejectLoanUseCase records a lender's rejection of a pending loan.
type RejectLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewRejectLoanUseCase wires dependencies.
func NewRejectLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *RejectLoanUseCase {
	return &RejectLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute rejects a pending loan with a mandatory reason.
func (uc *RejectLoanUseCase) Execute(
	ctx context.Context,
	req dto.RejectLoanRequest,
) (dto.LoanDecisionResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Apply the rejection.
	loan, err = loan.Reject(req.BankID, req.Reason, now)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("reject loan: %w", err)
	}

	// 3. Persist and publish.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.LoanDecisionResponse{
		LoanID:          loan.ID(),
		Status:          loan.Status().String(),
		RejectionReason: loan.RejectionReason(),
		Message:         "Loan rejected",
	}, nil
}
