package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// processingFeeRate is the flat application fee quoted to the farmer.
var processingFeeRate = decimal.NewFromFloat(0.01)

// ApplyLoanUseCase submits a loan application. The farmer's trust score and
// risk level are frozen into the loan at this point.
type ApplyLoanUseCase struct {
	farmerRepo port.FarmerRepository
	loanRepo   port.LoanRepository
	sequences  port.SequenceGenerator
	publisher  port.EventPublisher
}

// NewApplyLoanUseCase wires dependencies.
func NewApplyLoanUseCase(
	farmerRepo port.FarmerRepository,
	loanRepo port.LoanRepository,
	sequences port.SequenceGenerator,
	publisher port.EventPublisher,
) *ApplyLoanUseCase {
	return &ApplyLoanUseCase{
		farmerRepo: farmerRepo,
		loanRepo:   loanRepo,
		sequences:  sequences,
		publisher:  publisher,
	}
}

// Execute validates the request and creates a pending loan.
func (uc *ApplyLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApplyLoanRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	// 1. The farmer must exist; their current score is captured on the loan.
	farmer, err := uc.farmerRepo.FindByID(ctx, req.FarmerID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find farmer: %w", err)
	}

	// 2. Issue a loan identifier.
	loanID, err := uc.sequences.Next(ctx, port.SequenceLoan)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("next loan id: %w", err)
	}

	lenderName := req.LenderName
	if lenderName == "" {
		lenderName = "To be assigned"
	}
	lenderType := req.LenderType
	if lenderType == "" {
		lenderType = "Bank"
	}

	// 3. Create the pending application.
	loan, err := model.NewLoan(
		loanID, req.FarmerID,
		req.LoanAmount, req.InterestRate, req.DurationMonths,
		req.Purpose, lenderName, lenderType,
		farmer.TrustScore, farmer.RiskLevel,
		now,
	)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("new loan: %w", err)
	}

	// 4. Persist and publish.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	totalPayable := model.TotalPayable(loan.EMIAmount(), loan.DurationMonths())
	dueDate := ""
	if d := loan.RepaymentDueDate(); d != nil {
		dueDate = d.Format("2006-01-02")
	}

	return dto.LoanApplicationResponse{
		LoanID:            loan.ID(),
		LoanAmount:        loan.RequestedAmount(),
		InterestRate:      loan.InterestRate(),
		DurationMonths:    loan.DurationMonths(),
		EMIAmount:         loan.EMIAmount(),
		TotalPayable:      totalPayable,
		ProcessingFee:     loan.RequestedAmount().Mul(processingFeeRate).Round(0),
		RepaymentDueDate:  dueDate,
		ApplicationStatus: loan.Status().String(),
		NextSteps: []string{
			"Application submitted successfully",
			"Lender will review your application",
			"Expected processing time: 3-5 business days",
			"You will be notified of approval status",
		},
	}, nil
}
