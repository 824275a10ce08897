package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// ApproveLoanUseCase records a lender's approval of a pending loan.
type ApproveLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewApproveLoanUseCase wires dependencies.
func NewApproveLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *ApproveLoanUseCase {
	return &ApproveLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute approves a pending loan. A zero approved amount defaults to the
// requested amount.
func (uc *ApproveLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApproveLoanRequest,
) (dto.LoanDecisionResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Apply the approval.
	amount := req.ApprovedAmount
	if amount.IsZero() {
		amount = loan.RequestedAmount()
	}
	loan, err = loan.Approve(req.BankID, amount, req.InterestRate, now)
	if err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("approve loan: %w", err)
	}

	// 3. Persist and publish.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanDecisionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.LoanDecisionResponse{
		LoanID:         loan.ID(),
		Status:         loan.Status().String(),
		ApprovedAmount: loan.ApprovedAmount(),
		InterestRate:   loan.InterestRate(),
		EMIAmount:      loan.EMIAmount(),
		ApprovalDate:   loan.ApprovalDate(),
		Message:        "Loan approved successfully",
	}, nil
}
