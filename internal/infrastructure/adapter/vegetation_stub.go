package adapter

import (
	"context"
	"math"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// highYieldCrops get a small vegetation-index bonus in the mock model.
var highYieldCrops = map[string]bool{
	"Wheat":     true,
	"Rice":      true,
	"Sugarcane": true,
}

// StubVegetationClient is a development adapter that derives a vegetation
// index from farm location, season, and crop type. The noise term is hashed
// from the farm and crop identifiers, so readings are deterministic per
// farm/crop pair. It implements port.VegetationIndexClient.
type StubVegetationClient struct{}

// NewStubVegetationClient creates the stub adapter.
func NewStubVegetationClient() *StubVegetationClient {
	return &StubVegetationClient{}
}

// Evaluate computes the mock index:
// base 0.65, +0.05 in the 20-35°N latitude band, +0.10 for Kharif or +0.05
// for Rabi, +0.05 for high-yield crops, plus deterministic noise in
// [-0.1, +0.1], clamped to [-1, 1] and rounded to three decimals.
func (c *StubVegetationClient) Evaluate(_ context.Context, farm model.Farm, crop *model.Crop) (port.VegetationReading, error) {
	index := 0.65

	if farm.GPSLat != nil && *farm.GPSLat >= 20 && *farm.GPSLat <= 35 {
		index += 0.05
	}

	cropID := ""
	if crop != nil {
		cropID = crop.ID
		switch crop.Season {
		case valueobject.SeasonKharif:
			index += 0.10
		case valueobject.SeasonRabi:
			index += 0.05
		}
		if highYieldCrops[crop.CropType] {
			index += 0.05
		}
	}

	index += (hashUnit(farm.ID, cropID) - 0.5) * 0.2
	index = math.Max(-1, math.Min(1, index))
	index = math.Round(index*1000) / 1000

	hasCropData := crop != nil && crop.CropType != "" && crop.Season != ""

	return port.VegetationReading{
		Index:           index,
		HealthBand:      valueobject.HealthBandForIndex(index),
		Confidence:      valueobject.ConfidenceFor(farm.HasGPS(), hasCropData),
		DataSource:      "Mock Satellite Imagery",
		MeasurementDate: time.Now().UTC().Truncate(24 * time.Hour),
		Recommendations: vegetationRecommendations(index),
	}, nil
}

// vegetationRecommendations maps an index to advisory text.
func vegetationRecommendations(index float64) []string {
	switch {
	case index >= 0.7:
		return []string{
			"Crop health is excellent",
			"Continue current farming practices",
			"Monitor for any sudden changes",
		}
	case index >= 0.5:
		return []string{
			"Crop health is good",
			"Consider additional irrigation if needed",
			"Monitor nutrient levels",
		}
	case index >= 0.3:
		return []string{
			"Crop health is moderate",
			"Check irrigation and fertilization",
			"Inspect for pests or diseases",
			"Consider expert consultation",
		}
	default:
		return []string{
			"Crop health is concerning",
			"Immediate inspection recommended",
			"Check water supply and soil condition",
			"Consult agricultural expert urgently",
		}
	}
}
