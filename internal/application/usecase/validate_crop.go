package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// ValidateCropUseCase cross-checks a crop against the three external
// signals: vegetation index, weather risk, and market price.
type ValidateCropUseCase struct {
	farmRepo   port.FarmRepository
	cropRepo   port.CropRepository
	vegetation port.VegetationIndexClient
	weather    port.WeatherRiskClient
	market     port.MarketPriceClient
}

// NewValidateCropUseCase wires dependencies.
func NewValidateCropUseCase(
	farmRepo port.FarmRepository,
	cropRepo port.CropRepository,
	vegetation port.VegetationIndexClient,
	weather port.WeatherRiskClient,
	market port.MarketPriceClient,
) *ValidateCropUseCase {
	return &ValidateCropUseCase{
		farmRepo:   farmRepo,
		cropRepo:   cropRepo,
		vegetation: vegetation,
		weather:    weather,
		market:     market,
	}
}

// Execute gathers all three signals. Unlike scoring, validation is an
// explicit external check: a provider failure fails the request instead of
// degrading silently.
func (uc *ValidateCropUseCase) Execute(
	ctx context.Context,
	req dto.ValidateCropRequest,
) (dto.CropValidationResponse, error) {
	now := time.Now().UTC()

	// 1. Load the farm and locate the crop on it.
	farm, err := uc.farmRepo.FindByID(ctx, req.FarmID)
	if err != nil {
		return dto.CropValidationResponse{}, fmt.Errorf("find farm: %w", err)
	}

	crops, err := uc.cropRepo.FindByFarmID(ctx, req.FarmID)
	if err != nil {
		return dto.CropValidationResponse{}, fmt.Errorf("find crops: %w", err)
	}
	var crop *model.Crop
	for i := range crops {
		if crops[i].ID == req.CropID {
			crop = &crops[i]
			break
		}
	}
	if crop == nil {
		return dto.CropValidationResponse{}, apperr.Newf(apperr.NotFound, "crop %s not found on farm %s", req.CropID, req.FarmID)
	}

	// 2. Gather the three signals.
	reading, err := uc.vegetation.Evaluate(ctx, farm, crop)
	if err != nil {
		return dto.CropValidationResponse{}, fmt.Errorf("evaluate vegetation: %w", err)
	}
	assessment, err := uc.weather.Assess(ctx, farm, crop)
	if err != nil {
		return dto.CropValidationResponse{}, fmt.Errorf("assess weather: %w", err)
	}
	quote, err := uc.market.Quote(ctx, crop.CropType, farm.State, crop.Season)
	if err != nil {
		return dto.CropValidationResponse{}, fmt.Errorf("quote market price: %w", err)
	}

	resp := dto.CropValidationResponse{
		FarmID:      req.FarmID,
		CropID:      crop.ID,
		CropType:    crop.CropType,
		ValidatedAt: now,
	}
	resp.Vegetation.Index = reading.Index
	resp.Vegetation.HealthBand = string(reading.HealthBand)
	resp.Vegetation.Confidence = string(reading.Confidence)
	resp.Vegetation.DataSource = reading.DataSource
	resp.Vegetation.MeasurementDate = reading.MeasurementDate
	resp.Vegetation.Recommendations = reading.Recommendations

	resp.Weather.RainfallMM = assessment.RainfallMM
	resp.Weather.TemperatureC = assessment.TemperatureC
	resp.Weather.HumidityPct = assessment.HumidityPct
	resp.Weather.DroughtRisk = assessment.DroughtRisk
	resp.Weather.Conditions = assessment.Conditions
	resp.Weather.Season = string(assessment.Season)
	resp.Weather.Recommendations = assessment.Recommendations
	resp.Weather.DataSource = assessment.DataSource

	resp.Market.PricePerQtl = quote.PricePerQtl
	resp.Market.AveragePrice = quote.AveragePrice
	resp.Market.Trend = quote.Trend
	resp.Market.Currency = quote.Currency
	resp.Market.Recommendations = quote.Recommendations
	resp.Market.DataSource = quote.DataSource

	return resp, nil
}
