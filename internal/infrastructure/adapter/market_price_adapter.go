package adapter

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// basePrices holds indicative mandi prices per quintal in INR.
var basePrices = map[string]int64{
	"Wheat":     2200,
	"Rice":      2800,
	"Maize":     1850,
	"Sugarcane": 350,
	"Cotton":    6500,
	"Soybean":   4200,
	"Groundnut": 5500,
	"Mustard":   5200,
	"Pulses":    6000,
	"Chickpea":  5800,
	"Lentil":    6200,
	"Potato":    800,
	"Onion":     1200,
	"Tomato":    1500,
	"Turmeric":  8000,
	"Chilli":    12000,
	"Barley":    1650,
	"Bajra":     2100,
	"Jowar":     3200,
}

// defaultBasePrice applies to crops absent from the table.
const defaultBasePrice = 3000

var (
	highPriceStates     = map[string]bool{"Punjab": true, "Haryana": true, "Maharashtra": true, "Gujarat": true}
	moderatePriceStates = map[string]bool{"Uttar Pradesh": true, "Madhya Pradesh": true, "Rajasthan": true}
)

// MockMarketPriceClient quotes indicative prices from a static table with
// regional and seasonal adjustments. The fluctuation term hashes from the
// crop, state, and UTC date, so quotes are stable within a day. It implements
// port.MarketPriceClient.
type MockMarketPriceClient struct{}

// NewMockMarketPriceClient creates the mock adapter.
func NewMockMarketPriceClient() *MockMarketPriceClient {
	return &MockMarketPriceClient{}
}

// Quote prices one crop type for a state and season.
func (c *MockMarketPriceClient) Quote(_ context.Context, cropType, state string, season valueobject.Season) (port.MarketQuote, error) {
	if cropType == "" {
		return port.MarketQuote{}, fmt.Errorf("crop type is required")
	}
	crop := normalizeCrop(cropType)

	base, ok := basePrices[crop]
	if !ok {
		base = defaultBasePrice
	}
	price := float64(base)

	switch {
	case highPriceStates[state]:
		price *= 1.1
	case moderatePriceStates[state]:
		price *= 1.05
	}
	if season == valueobject.SeasonRabi {
		price *= 1.05
	}

	day := time.Now().UTC().Format("2006-01-02")
	price *= (hashUnit(crop, state, day)-0.5)*0.2 + 1
	quoted := decimal.NewFromInt(int64(math.Round(price)))
	average := decimal.NewFromInt(base)

	trend := priceTrend(crop, day)

	return port.MarketQuote{
		CropType:        crop,
		PricePerQtl:     quoted,
		AveragePrice:    average,
		Trend:           trend,
		Currency:        "INR",
		Recommendations: marketRecommendations(crop, quoted, average, trend),
		DataSource:      "Mock Market Data",
	}, nil
}

// normalizeCrop title-cases the crop name so lookups are case-insensitive.
func normalizeCrop(cropType string) string {
	if cropType == "" {
		return cropType
	}
	return strings.ToUpper(cropType[:1]) + strings.ToLower(cropType[1:])
}

// priceTrend grades the day's direction: 40% Stable, 30% Rising, 30% Falling.
func priceTrend(crop, day string) string {
	r := hashUnit(crop, day, "trend")
	switch {
	case r < 0.4:
		return "Stable"
	case r < 0.7:
		return "Rising"
	default:
		return "Falling"
	}
}

func marketRecommendations(crop string, price, average decimal.Decimal, trend string) []string {
	var recs []string

	diff, _ := price.Sub(average).Div(average).Mul(decimal.NewFromInt(100)).Float64()
	switch {
	case diff > 10:
		recs = append(recs,
			fmt.Sprintf("%s prices are %.1f%% above average - good time to sell", crop, diff),
			"Consider harvesting if crop is ready")
	case diff < -10:
		recs = append(recs,
			fmt.Sprintf("%s prices are %.1f%% below average", crop, math.Abs(diff)),
			"Consider storage options if available",
			"Wait for better market conditions if possible")
	default:
		recs = append(recs,
			fmt.Sprintf("%s prices are near market average", crop),
			"Normal selling conditions")
	}

	switch trend {
	case "Rising":
		recs = append(recs, "Price trend is upward - may benefit from holding")
	case "Falling":
		recs = append(recs, "Price trend is downward - consider selling soon")
	default:
		recs = append(recs, "Price trend is stable")
	}

	return recs
}
