package usecase

import (
	"context"
	"fmt"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// GetRepaymentScheduleUseCase projects the EMI schedule of a loan from its
// current terms. The schedule is computed on demand, not stored.
type GetRepaymentScheduleUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetRepaymentScheduleUseCase wires dependencies.
func NewGetRepaymentScheduleUseCase(loanRepo port.LoanRepository) *GetRepaymentScheduleUseCase {
	return &GetRepaymentScheduleUseCase{loanRepo: loanRepo}
}

// Execute generates the schedule anchored on the disbursement date when
// present, falling back to the approval then application date.
func (uc *GetRepaymentScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GetRepaymentScheduleRequest,
) (dto.RepaymentScheduleResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RepaymentScheduleResponse{}, fmt.Errorf("find loan: %w", err)
	}

	installments := model.GenerateRepaymentSchedule(loan.EMIAmount(), loan.DurationMonths(), loan.ScheduleStart())
	schedule := make([]dto.InstallmentResponse, 0, len(installments))
	for _, in := range installments {
		schedule = append(schedule, dto.InstallmentResponse{
			Number:  in.Number,
			DueDate: in.DueDate,
			Amount:  in.Amount,
			Status:  in.Status,
		})
	}

	return dto.RepaymentScheduleResponse{
		LoanID:            loan.ID(),
		EMIAmount:         loan.EMIAmount(),
		DurationMonths:    loan.DurationMonths(),
		TotalPayable:      model.TotalPayable(loan.EMIAmount(), loan.DurationMonths()),
		AmountRepaid:      loan.AmountRepaid(),
		OutstandingAmount: loan.OutstandingAmount(),
		Schedule:          schedule,
	}, nil
}
