package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// GetLoanHistoryUseCase lists a farmer's loans with portfolio aggregates.
type GetLoanHistoryUseCase struct {
	farmerRepo port.FarmerRepository
	loanRepo   port.LoanRepository
}

// NewGetLoanHistoryUseCase wires dependencies.
func NewGetLoanHistoryUseCase(farmerRepo port.FarmerRepository, loanRepo port.LoanRepository) *GetLoanHistoryUseCase {
	return &GetLoanHistoryUseCase{farmerRepo: farmerRepo, loanRepo: loanRepo}
}

// Execute returns all loans for the farmer, newest application first, with a
// summary across the portfolio.
func (uc *GetLoanHistoryUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanHistoryRequest,
) (dto.LoanHistoryResponse, error) {
	// 1. The farmer must exist even if they have no loans.
	if _, err := uc.farmerRepo.FindByID(ctx, req.FarmerID); err != nil {
		return dto.LoanHistoryResponse{}, fmt.Errorf("find farmer: %w", err)
	}

	// 2. Load the portfolio.
	loans, err := uc.loanRepo.FindByFarmerID(ctx, req.FarmerID)
	if err != nil {
		return dto.LoanHistoryResponse{}, fmt.Errorf("find loans: %w", err)
	}

	summary := dto.LoanHistorySummary{
		TotalLoans:       len(loans),
		TotalBorrowed:    decimal.Zero,
		TotalRepaid:      decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	out := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		switch {
		case l.Status().Equal(valueobject.LoanStatusApproved), l.Status().Equal(valueobject.LoanStatusDisbursed):
			summary.ActiveLoans++
		case l.Status().Equal(valueobject.LoanStatusPending):
			summary.PendingApplications++
		case l.Status().Equal(valueobject.LoanStatusRepaid):
			summary.CompletedLoans++
		}
		summary.TotalBorrowed = summary.TotalBorrowed.Add(l.RequestedAmount())
		summary.TotalRepaid = summary.TotalRepaid.Add(l.AmountRepaid())
		summary.TotalOutstanding = summary.TotalOutstanding.Add(l.OutstandingAmount())

		out = append(out, loanResponse(l, nil))
	}

	return dto.LoanHistoryResponse{
		FarmerID: req.FarmerID,
		Summary:  summary,
		Loans:    out,
	}, nil
}
