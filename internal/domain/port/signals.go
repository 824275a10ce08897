package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// External signal providers. All three are synchronous request/response
// collaborators keyed by farm location plus an optional active crop, and are
// substitutable with real satellite/weather/commodity providers without
// changing the callers' contracts.

// VegetationReading is a normalized vegetation-index observation for a farm.
type VegetationReading struct {
	Index           float64               // in [-1, 1]
	HealthBand      valueobject.HealthBand
	Confidence      valueobject.Confidence
	DataSource      string
	MeasurementDate time.Time
	Recommendations []string
}

// VegetationIndexClient evaluates vegetation health for a farm and an
// optional active crop. Callers treat it as a pure function per crop:
// no retries, no caching.
type VegetationIndexClient interface {
	Evaluate(ctx context.Context, farm model.Farm, crop *model.Crop) (VegetationReading, error)
}

// WeatherAssessment is the weather-risk picture for a farm location.
type WeatherAssessment struct {
	RainfallMM      int
	TemperatureC    float64
	TemperatureMinC float64
	TemperatureMaxC float64
	HumidityPct     int
	WindSpeedKmph   int
	DroughtRisk     string // Low | Medium | High
	Conditions      string
	Season          valueobject.Season
	Recommendations []string
	DataSource      string
}

// WeatherRiskClient assesses weather risk for a farm and an optional crop.
type WeatherRiskClient interface {
	Assess(ctx context.Context, farm model.Farm, crop *model.Crop) (WeatherAssessment, error)
}

// MarketQuote is an indicative mandi price for a crop type.
type MarketQuote struct {
	CropType        string
	PricePerQtl     decimal.Decimal
	AveragePrice    decimal.Decimal
	Trend           string // Rising | Stable | Falling
	Currency        string
	Recommendations []string
	DataSource      string
}

// MarketPriceClient quotes indicative market prices for crops.
type MarketPriceClient interface {
	Quote(ctx context.Context, cropType, state string, season valueobject.Season) (MarketQuote, error)
}
