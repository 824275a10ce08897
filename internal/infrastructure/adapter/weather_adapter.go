package adapter

import (
	"context"
	"math"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// Regional groupings for the mock weather model.
var (
	highRainfallStates     = map[string]bool{"Kerala": true, "Maharashtra": true, "West Bengal": true, "Assam": true}
	moderateRainfallStates = map[string]bool{"Bihar": true, "Uttar Pradesh": true, "Madhya Pradesh": true}
	northernStates         = map[string]bool{"Punjab": true, "Haryana": true, "Himachal Pradesh": true, "Uttarakhand": true}
	southernStates         = map[string]bool{"Tamil Nadu": true, "Kerala": true, "Karnataka": true, "Andhra Pradesh": true}
)

// MockWeatherClient derives weather risk from state and season. Noise terms
// hash from the farm identifier, so assessments are reproducible. It
// implements port.WeatherRiskClient.
type MockWeatherClient struct{}

// NewMockWeatherClient creates the mock adapter.
func NewMockWeatherClient() *MockWeatherClient {
	return &MockWeatherClient{}
}

// Assess produces the weather picture for a farm and optional crop. Without
// a crop the season defaults to Rabi.
func (c *MockWeatherClient) Assess(_ context.Context, farm model.Farm, crop *model.Crop) (port.WeatherAssessment, error) {
	season := valueobject.SeasonRabi
	if crop != nil && crop.Season != "" {
		season = crop.Season
	}

	rainfall := c.rainfall(farm, season)
	temp := c.temperature(farm, season)
	risk := droughtRisk(rainfall, season, farm.IrrigationType)

	humidity := int(math.Round(60 + (hashUnit(farm.ID, "humidity")-0.5)*30))
	wind := int(math.Round(8 + (hashUnit(farm.ID, "wind")-0.5)*6))

	conditions := "Clear"
	if rainfall > 50 {
		conditions = "Rainy"
	}

	return port.WeatherAssessment{
		RainfallMM:      rainfall,
		TemperatureC:    temp,
		TemperatureMinC: temp - 5,
		TemperatureMaxC: temp + 5,
		HumidityPct:     humidity,
		WindSpeedKmph:   wind,
		DroughtRisk:     risk,
		Conditions:      conditions,
		Season:          season,
		Recommendations: weatherRecommendations(rainfall, risk, temp, season),
		DataSource:      "Mock Weather Service",
	}, nil
}

// rainfall models monthly rainfall in millimetres.
func (c *MockWeatherClient) rainfall(farm model.Farm, season valueobject.Season) int {
	base := 60.0
	switch {
	case highRainfallStates[farm.State]:
		base = 150
	case moderateRainfallStates[farm.State]:
		base = 80
	}

	switch season {
	case valueobject.SeasonKharif:
		base *= 1.5
	case valueobject.SeasonRabi:
		base *= 0.4
	}

	base *= (hashUnit(farm.ID, "rainfall")-0.5)*0.4 + 1
	return int(math.Round(base))
}

// temperature models the current temperature in Celsius.
func (c *MockWeatherClient) temperature(farm model.Farm, season valueobject.Season) float64 {
	temp := 28.0
	switch season {
	case valueobject.SeasonRabi:
		temp = 18
	case valueobject.SeasonKharif:
		temp = 30
	case valueobject.SeasonSummer, valueobject.SeasonZaid:
		temp = 38
	}

	switch {
	case northernStates[farm.State]:
		temp -= 3
	case southernStates[farm.State]:
		temp += 2
	}

	temp += (hashUnit(farm.ID, "temperature") - 0.5) * 4
	return math.Round(temp*10) / 10
}

// droughtRisk grades drought exposure. Canal or tubewell irrigation pins the
// risk to Low regardless of rainfall.
func droughtRisk(rainfall int, season valueobject.Season, irrigation valueobject.IrrigationType) string {
	if irrigation == valueobject.IrrigationCanal || irrigation == valueobject.IrrigationTubewell {
		return "Low"
	}

	if season == valueobject.SeasonKharif {
		switch {
		case rainfall < 50:
			return "High"
		case rainfall < 100:
			return "Medium"
		}
		return "Low"
	}
	switch {
	case rainfall < 30:
		return "High"
	case rainfall < 60:
		return "Medium"
	}
	return "Low"
}

func weatherRecommendations(rainfall int, risk string, temp float64, season valueobject.Season) []string {
	var recs []string

	switch risk {
	case "High":
		recs = append(recs,
			"High drought risk - ensure adequate irrigation",
			"Consider drought-resistant crop varieties",
			"Implement water conservation measures")
	case "Medium":
		recs = append(recs,
			"Moderate drought risk - monitor water supply",
			"Plan irrigation schedule carefully")
	default:
		recs = append(recs, "Low drought risk - normal farming practices")
	}

	if temp > 35 {
		recs = append(recs,
			"High temperature - increase irrigation frequency",
			"Protect crops from heat stress")
	}
	if rainfall > 200 {
		recs = append(recs,
			"Heavy rainfall expected - ensure drainage",
			"Monitor for waterlogging")
	}
	if season == valueobject.SeasonKharif && rainfall < 80 {
		recs = append(recs, "Below-average monsoon rainfall - supplement with irrigation")
	}

	return recs
}
