package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/event"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/service"
)

// ComputeTrustScoreUseCase recalculates a farmer's trust score from current
// farm and crop data and persists the result.
type ComputeTrustScoreUseCase struct {
	farmerRepo port.FarmerRepository
	farmRepo   port.FarmRepository
	cropRepo   port.CropRepository
	engine     *service.TrustScoreEngine
	publisher  port.EventPublisher
}

// NewComputeTrustScoreUseCase wires dependencies.
func NewComputeTrustScoreUseCase(
	farmerRepo port.FarmerRepository,
	farmRepo port.FarmRepository,
	cropRepo port.CropRepository,
	engine *service.TrustScoreEngine,
	publisher port.EventPublisher,
) *ComputeTrustScoreUseCase {
	return &ComputeTrustScoreUseCase{
		farmerRepo: farmerRepo,
		farmRepo:   farmRepo,
		cropRepo:   cropRepo,
		engine:     engine,
		publisher:  publisher,
	}
}

// Execute recomputes and stores the score. Concurrent recomputations for the
// same farmer are last-write-wins: the score is advisory, not transactional.
func (uc *ComputeTrustScoreUseCase) Execute(
	ctx context.Context,
	req dto.ComputeTrustScoreRequest,
) (dto.TrustScoreResponse, error) {
	now := time.Now().UTC()

	// 1. Load the farmer and everything the score depends on.
	farmer, err := uc.farmerRepo.FindByID(ctx, req.FarmerID)
	if err != nil {
		return dto.TrustScoreResponse{}, fmt.Errorf("find farmer: %w", err)
	}

	farms, err := uc.farmRepo.FindByFarmerID(ctx, req.FarmerID)
	if err != nil {
		return dto.TrustScoreResponse{}, fmt.Errorf("find farms: %w", err)
	}

	farmIDs := make([]string, len(farms))
	for i, f := range farms {
		farmIDs[i] = f.ID
	}
	crops, err := uc.cropRepo.FindByFarmIDs(ctx, farmIDs)
	if err != nil {
		return dto.TrustScoreResponse{}, fmt.Errorf("find crops: %w", err)
	}

	// 2. Compute the score.
	snap := model.FarmerSnapshot{Farmer: farmer, Farms: farms, Crops: crops}
	result := uc.engine.Compute(ctx, snap, now)

	// 3. Persist the new score and risk level.
	if err := uc.farmerRepo.UpdateTrustScore(ctx, req.FarmerID, result.TrustScore, result.RiskLevel); err != nil {
		return dto.TrustScoreResponse{}, fmt.Errorf("update trust score: %w", err)
	}

	// 4. Publish the recalculation event.
	evt := event.NewTrustScoreRecalculated(
		req.FarmerID, farmer.TrustScore, result.TrustScore, result.RiskLevel.String(),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.TrustScoreResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.TrustScoreResponse{
		FarmerID:        result.FarmerID,
		FarmerName:      result.FarmerName,
		TrustScore:      result.TrustScore,
		RiskLevel:       result.RiskLevel.String(),
		Factors:         result.Factors,
		Recommendations: result.Recommendations,
		Statistics:      result.Statistics,
		CalculatedAt:    result.CalculatedAt,
	}, nil
}
