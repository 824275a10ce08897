package usecase

import (
	"context"
	"fmt"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/service"
)

// GenerateOffersUseCase prices the lender catalog for a farmer's current
// trust score and landholding.
type GenerateOffersUseCase struct {
	farmerRepo port.FarmerRepository
	farmRepo   port.FarmRepository
}

// NewGenerateOffersUseCase wires dependencies.
func NewGenerateOffersUseCase(
	farmerRepo port.FarmerRepository,
	farmRepo port.FarmRepository,
) *GenerateOffersUseCase {
	return &GenerateOffersUseCase{farmerRepo: farmerRepo, farmRepo: farmRepo}
}

// Execute evaluates the catalog. Offer generation never mutates state; it is
// safe to call repeatedly.
func (uc *GenerateOffersUseCase) Execute(
	ctx context.Context,
	req dto.GenerateOffersRequest,
) (dto.OfferSheetResponse, error) {
	// 1. Load the farmer and farms.
	farmer, err := uc.farmerRepo.FindByID(ctx, req.FarmerID)
	if err != nil {
		return dto.OfferSheetResponse{}, fmt.Errorf("find farmer: %w", err)
	}

	farms, err := uc.farmRepo.FindByFarmerID(ctx, req.FarmerID)
	if err != nil {
		return dto.OfferSheetResponse{}, fmt.Errorf("find farms: %w", err)
	}

	// 2. Evaluate the static catalog.
	sheet := service.GenerateOffers(farmer, farms)

	resp := dto.OfferSheetResponse{
		FarmerID:       sheet.FarmerID,
		FarmerName:     sheet.FarmerName,
		TrustScore:     sheet.TrustScore,
		RiskLevel:      sheet.RiskLevel.String(),
		TotalLandAcres: sheet.TotalLandAcres,
		EligibleOffers: len(sheet.Offers),
		Offers:         sheet.Offers,
		Note:           sheet.Note,
	}
	if len(sheet.Offers) == 0 {
		resp.Message = "No loan offers available. Please improve your trust score."
		resp.ImprovementTips = sheet.ImprovementTips
		resp.Note = ""
	}
	return resp, nil
}
