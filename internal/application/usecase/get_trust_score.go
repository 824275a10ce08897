package usecase

import (
	"context"
	"fmt"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// GetTrustScoreUseCase reads the stored score without recomputing it.
type GetTrustScoreUseCase struct {
	farmerRepo port.FarmerRepository
}

// NewGetTrustScoreUseCase wires dependencies.
func NewGetTrustScoreUseCase(farmerRepo port.FarmerRepository) *GetTrustScoreUseCase {
	return &GetTrustScoreUseCase{farmerRepo: farmerRepo}
}

// Execute returns the cached score and risk level.
func (uc *GetTrustScoreUseCase) Execute(
	ctx context.Context,
	req dto.GetTrustScoreRequest,
) (dto.CachedScoreResponse, error) {
	farmer, err := uc.farmerRepo.FindByID(ctx, req.FarmerID)
	if err != nil {
		return dto.CachedScoreResponse{}, fmt.Errorf("find farmer: %w", err)
	}

	return dto.CachedScoreResponse{
		FarmerID:   farmer.ID,
		FarmerName: farmer.FullName,
		TrustScore: farmer.TrustScore,
		RiskLevel:  farmer.RiskLevel.String(),
	}, nil
}
