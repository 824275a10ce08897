package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/application/usecase"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

func scoredFarmer() model.Farmer {
	return model.Farmer{
		ID:         "FRM000001",
		FullName:   "Ramesh Kumar",
		TrustScore: 62,
		RiskLevel:  valueobject.RiskLevelMedium,
	}
}

func TestApplyLoan_Execute(t *testing.T) {
	t.Run("creates a pending application", func(t *testing.T) {
		farmerRepo := &mockFarmerRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Farmer, error) {
				return scoredFarmer(), nil
			},
		}
		loanRepo := &mockLoanRepo{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyLoanUseCase(farmerRepo, loanRepo, &mockSequences{}, publisher)

		resp, err := uc.Execute(context.Background(), dto.ApplyLoanRequest{
			FarmerID:       "FRM000001",
			LoanAmount:     decimal.NewFromInt(100_000),
			InterestRate:   decimal.NewFromInt(7),
			DurationMonths: 12,
			Purpose:        "Seeds and fertilizer",
		})
		require.NoError(t, err)

		assert.Equal(t, "LOAN000001", resp.LoanID)
		assert.Equal(t, "pending", resp.ApplicationStatus)
		assert.True(t, decimal.NewFromInt(8_653).Equal(resp.EMIAmount), "got %s", resp.EMIAmount)
		assert.True(t, decimal.NewFromInt(103_836).Equal(resp.TotalPayable))
		assert.True(t, decimal.NewFromInt(1_000).Equal(resp.ProcessingFee))
		assert.NotEmpty(t, resp.RepaymentDueDate)
		assert.NotEmpty(t, resp.NextSteps)

		require.Len(t, loanRepo.savedLoans, 1)
		saved := loanRepo.savedLoans[0]
		assert.Equal(t, 62, saved.TrustScoreAtApplication())
		assert.True(t, saved.RiskLevelAtApplication().Equal(valueobject.RiskLevelMedium))
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("defaults lender when unassigned", func(t *testing.T) {
		farmerRepo := &mockFarmerRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Farmer, error) {
				return scoredFarmer(), nil
			},
		}
		loanRepo := &mockLoanRepo{}

		uc := usecase.NewApplyLoanUseCase(farmerRepo, loanRepo, &mockSequences{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ApplyLoanRequest{
			FarmerID:       "FRM000001",
			LoanAmount:     decimal.NewFromInt(50_000),
			InterestRate:   decimal.NewFromInt(10),
			DurationMonths: 24,
		})
		require.NoError(t, err)

		require.Len(t, loanRepo.savedLoans, 1)
		assert.Equal(t, "To be assigned", loanRepo.savedLoans[0].LenderName())
		assert.Equal(t, "Bank", loanRepo.savedLoans[0].LenderType())
	})

	t.Run("fails when farmer does not exist", func(t *testing.T) {
		uc := usecase.NewApplyLoanUseCase(&mockFarmerRepo{}, &mockLoanRepo{}, &mockSequences{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ApplyLoanRequest{
			FarmerID:       "FRM999999",
			LoanAmount:     decimal.NewFromInt(50_000),
			InterestRate:   decimal.NewFromInt(10),
			DurationMonths: 12,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))
	})

	t.Run("rejects amount above the lending ceiling", func(t *testing.T) {
		farmerRepo := &mockFarmerRepo{
			findByIDFunc: func(_ context.Context, _ string) (model.Farmer, error) {
				return scoredFarmer(), nil
			},
		}
		loanRepo := &mockLoanRepo{}

		uc := usecase.NewApplyLoanUseCase(farmerRepo, loanRepo, &mockSequences{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ApplyLoanRequest{
			FarmerID:       "FRM000001",
			LoanAmount:     decimal.NewFromInt(20_000_000),
			InterestRate:   decimal.NewFromInt(10),
			DurationMonths: 12,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.InvalidAmount))
		assert.Empty(t, loanRepo.savedLoans)
	})
}
