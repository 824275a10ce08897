package usecase

import (
	"context"
	"fmt"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its repayment history.
type GetLoanUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
	farmerRepo    port.FarmerRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(
	loanRepo port.LoanRepository,
	repaymentRepo port.RepaymentRepository,
	farmerRepo port.FarmerRepository,
) *GetLoanUseCase {
	return &GetLoanUseCase{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		farmerRepo:    farmerRepo,
	}
}

// Execute returns the loan projection, newest repayment first.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	repayments, err := uc.repaymentRepo.FindByLoanID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find repayments: %w", err)
	}

	resp := loanResponse(loan, repayments)

	// The farmer name is decoration; a lookup failure does not fail the read.
	if farmer, err := uc.farmerRepo.FindByID(ctx, loan.FarmerID()); err == nil {
		resp.FarmerName = farmer.FullName
	}

	return resp, nil
}

// loanResponse projects an aggregate and its ledger into the response shape.
func loanResponse(loan model.Loan, repayments []model.Repayment) dto.LoanResponse {
	history := make([]dto.RepaymentEntryResponse, 0, len(repayments))
	for _, r := range repayments {
		history = append(history, dto.RepaymentEntryResponse{
			RepaymentID:    r.ID,
			Amount:         r.Amount,
			PaymentMethod:  r.PaymentMethod,
			TransactionRef: r.TransactionRef,
			RepaymentDate:  r.RepaymentDate,
		})
	}

	return dto.LoanResponse{
		LoanID:                  loan.ID(),
		FarmerID:                loan.FarmerID(),
		Status:                  loan.Status().String(),
		RequestedAmount:         loan.RequestedAmount(),
		ApprovedAmount:          loan.ApprovedAmount(),
		InterestRate:            loan.InterestRate(),
		DurationMonths:          loan.DurationMonths(),
		Purpose:                 loan.Purpose(),
		LenderName:              loan.LenderName(),
		LenderType:              loan.LenderType(),
		TrustScoreAtApplication: loan.TrustScoreAtApplication(),
		RiskLevelAtApplication:  loan.RiskLevelAtApplication().String(),
		EMIAmount:               loan.EMIAmount(),
		AmountRepaid:            loan.AmountRepaid(),
		OutstandingAmount:       loan.OutstandingAmount(),
		RejectionReason:         loan.RejectionReason(),
		ApplicationDate:         loan.ApplicationDate(),
		ApprovalDate:            loan.ApprovalDate(),
		DisbursementDate:        loan.DisbursementDate(),
		RepaymentDueDate:        loan.RepaymentDueDate(),
		RepaymentHistory:        history,
		TotalRepayments:         len(history),
	}
}
