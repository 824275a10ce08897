package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// TrustScoreEngine – domain service for the Agri-Trust score
//
// Score composition (0-100):
//   - Farm fundamentals:       30%
//   - Crop health (NDVI):      30%
//   - Historical performance:  25%
//   - Farmer behavior:         15%
// ---------------------------------------------------------------------------

// Sub-score ceilings and fallback values.
const (
	maxFarmDataScore   = 30.0
	maxCropHealthScore = 30.0
	maxHistoricalScore = 25.0
	maxBehaviorScore   = 15.0

	// defaultCropHealthScore applies when no crop could be evaluated
	// (missing coordinates, no crops, or evaluator failures). It is
	// deliberately not zero: a farmer with incomplete location data must
	// not score identically to one with demonstrably bad crop health.
	defaultCropHealthScore = 15.0

	// defaultHistoricalScore gives new farmers with zero crops the benefit
	// of the doubt.
	defaultHistoricalScore = 15.0

	// defaultYieldScore applies when no crop has both expected and actual
	// yield figures.
	defaultYieldScore = 3.0
)

// ScoreFactor is one component of the score breakdown, reported to callers.
type ScoreFactor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      string `json:"weight"`
	Impact      string `json:"impact"`
	Points      int    `json:"score"`
	MaxPoints   int    `json:"max_score"`
}

// ScoreStatistics summarises the records behind a score.
type ScoreStatistics struct {
	TotalFarms     int `json:"total_farms"`
	TotalCrops     int `json:"total_crops"`
	ActiveCrops    int `json:"active_crops"`
	HarvestedCrops int `json:"harvested_crops"`
}

// ScoreResult is the outcome of a trust score computation.
type ScoreResult struct {
	FarmerID        string
	FarmerName      string
	TrustScore      int
	RiskLevel       valueobject.RiskLevel
	Factors         []ScoreFactor
	Recommendations []string
	Statistics      ScoreStatistics
	CalculatedAt    time.Time
}

// TrustScoreEngine computes the composite creditworthiness score from a
// farmer snapshot. It is stateless; every call works on the snapshot it is
// given and the vegetation evaluator it queries per crop.
type TrustScoreEngine struct {
	vegetation port.VegetationIndexClient
	logger     *slog.Logger
}

// NewTrustScoreEngine wires the vegetation evaluator dependency.
func NewTrustScoreEngine(vegetation port.VegetationIndexClient, logger *slog.Logger) *TrustScoreEngine {
	return &TrustScoreEngine{vegetation: vegetation, logger: logger}
}

// Compute produces the four sub-scores and the rounded total. Intermediate
// sub-scores stay fractional; rounding is applied once, to the final total.
func (e *TrustScoreEngine) Compute(ctx context.Context, snap model.FarmerSnapshot, now time.Time) ScoreResult {
	farmData := e.farmDataScore(snap.Farms)
	cropHealth := e.cropHealthScore(ctx, snap)
	historical := e.historicalScore(snap.Crops, snap.Farmer, now)
	behavior := e.behaviorScore(snap.Farmer)

	total := int(math.Round(farmData + cropHealth + historical + behavior))
	risk := valueobject.RiskLevelForScore(total)

	factors := []ScoreFactor{
		{
			Name:        "farm_data",
			Description: "Farm registration, GPS verification, land ownership",
			Weight:      "30%",
			Points:      int(math.Round(farmData)),
			MaxPoints:   int(maxFarmDataScore),
			Impact:      impactLabel(farmData, maxFarmDataScore),
		},
		{
			Name:        "crop_health",
			Description: "NDVI-based crop health monitoring",
			Weight:      "30%",
			Points:      int(math.Round(cropHealth)),
			MaxPoints:   int(maxCropHealthScore),
			Impact:      impactLabel(cropHealth, maxCropHealthScore),
		},
		{
			Name:        "historical_performance",
			Description: "Crop diversity, yield achievement, farming experience",
			Weight:      "25%",
			Points:      int(math.Round(historical)),
			MaxPoints:   int(maxHistoricalScore),
			Impact:      impactLabel(historical, maxHistoricalScore),
		},
		{
			Name:        "farmer_behavior",
			Description: "Profile completion, verification status, platform usage",
			Weight:      "15%",
			Points:      int(math.Round(behavior)),
			MaxPoints:   int(maxBehaviorScore),
			Impact:      impactLabel(behavior, maxBehaviorScore),
		},
	}

	return ScoreResult{
		FarmerID:        snap.Farmer.ID,
		FarmerName:      snap.Farmer.FullName,
		TrustScore:      total,
		RiskLevel:       risk,
		Factors:         factors,
		Recommendations: recommendations(factors, total),
		Statistics: ScoreStatistics{
			TotalFarms:     len(snap.Farms),
			TotalCrops:     len(snap.Crops),
			ActiveCrops:    snap.CropsByStatus(valueobject.CropStatusGrowing),
			HarvestedCrops: snap.CropsByStatus(valueobject.CropStatusHarvested),
		},
		CalculatedAt: now,
	}
}

// farmDataScore awards up to 30 points for farm fundamentals. A farmer with
// zero farms scores zero here.
func (e *TrustScoreEngine) farmDataScore(farms []model.Farm) float64 {
	if len(farms) == 0 {
		return 0
	}

	score := 10.0 // has registered farms
	n := float64(len(farms))

	withGPS := 0
	complete := 0
	irrigated := 0
	totalLand := 0.0
	for _, f := range farms {
		if f.HasGPS() {
			withGPS++
		}
		if f.HasCompleteProfile() {
			complete++
		}
		if f.IrrigationType.IsIrrigated() {
			irrigated++
		}
		totalLand += f.LandSizeAcres.InexactFloat64()
	}

	score += float64(withGPS) / n * 5
	score += float64(complete) / n * 5

	avgLand := totalLand / n
	switch {
	case avgLand >= 5:
		score += 5
	case avgLand >= 2:
		score += 3
	case avgLand >= 1:
		score += 1
	}

	score += float64(irrigated) / n * 5

	return math.Min(maxFarmDataScore, score)
}

// cropHealthScore awards up to 30 points from per-crop vegetation readings.
// Crops on farms without coordinates are skipped, as are crops whose
// evaluation fails: the upstream being unavailable degrades the sub-score
// to its default instead of failing the whole computation.
func (e *TrustScoreEngine) cropHealthScore(ctx context.Context, snap model.FarmerSnapshot) float64 {
	var total float64
	evaluated := 0

	for i := range snap.Crops {
		crop := snap.Crops[i]
		farm, ok := snap.FarmByID(crop.FarmID)
		if !ok || !farm.HasGPS() {
			continue
		}

		reading, err := e.vegetation.Evaluate(ctx, farm, &crop)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("vegetation evaluation failed, skipping crop",
					"crop_id", crop.ID, "farm_id", farm.ID, "error", err)
			}
			continue
		}

		total += cropPointsForIndex(reading.Index)
		evaluated++
	}

	if evaluated == 0 {
		return defaultCropHealthScore
	}

	avg := total / float64(evaluated)
	return avg / 10 * maxCropHealthScore
}

// cropPointsForIndex maps a vegetation index to per-crop points on a fixed
// ladder.
func cropPointsForIndex(index float64) float64 {
	switch {
	case index >= 0.7:
		return 10 // excellent
	case index >= 0.5:
		return 8 // healthy
	case index >= 0.3:
		return 5 // moderate
	case index >= 0.2:
		return 3 // poor
	default:
		return 1 // critical
	}
}

// historicalScore awards up to 25 points for track record. New farmers with
// zero crops get a flat 15.
func (e *TrustScoreEngine) historicalScore(crops []model.Crop, farmer model.Farmer, now time.Time) float64 {
	if len(crops) == 0 {
		return defaultHistoricalScore
	}

	score := 0.0

	// Crop diversity: 5 points.
	types := make(map[string]struct{})
	for _, c := range crops {
		types[c.CropType] = struct{}{}
	}
	switch {
	case len(types) >= 3:
		score += 5
	case len(types) >= 2:
		score += 3
	default:
		score += 1
	}

	// Harvested fraction: 10 points.
	harvested := 0
	for _, c := range crops {
		if c.Status == valueobject.CropStatusHarvested {
			harvested++
		}
	}
	score += float64(harvested) / float64(len(crops)) * 10

	// Yield achievement: 5 points.
	achievementSum := 0.0
	withYield := 0
	for _, c := range crops {
		if !c.HasYieldFigures() {
			continue
		}
		achievementSum += c.ActualYieldQtl.Div(*c.ExpectedYieldQtl).InexactFloat64()
		withYield++
	}
	if withYield > 0 {
		avg := achievementSum / float64(withYield)
		switch {
		case avg >= 1.0:
			score += 5
		case avg >= 0.8:
			score += 4
		case avg >= 0.6:
			score += 2
		}
	} else {
		score += defaultYieldScore
	}

	// Farming experience from account age: 5 points.
	years := now.Sub(farmer.CreatedAt).Hours() / (24 * 365)
	switch {
	case years >= 2:
		score += 5
	case years >= 1:
		score += 3
	default:
		score += 1
	}

	return math.Min(maxHistoricalScore, score)
}

// behaviorScore awards up to 15 points for platform behavior.
func (e *TrustScoreEngine) behaviorScore(farmer model.Farmer) float64 {
	score := float64(farmer.ProfileCompletion) / 100 * 5

	if farmer.AadhaarVerified {
		score += 5
	} else {
		score += 2 // partial credit for registration
	}

	if farmer.VerificationStatus.IsVerified() {
		score += 5
	} else {
		score += 2
	}

	return math.Min(maxBehaviorScore, score)
}

// impactLabel grades a sub-score relative to its ceiling.
func impactLabel(points, max float64) string {
	ratio := points / max
	switch {
	case ratio >= 0.8:
		return "POSITIVE"
	case ratio >= 0.5:
		return "NEUTRAL"
	default:
		return "NEGATIVE"
	}
}

// recommendations derives remediation hints from the breakdown.
func recommendations(factors []ScoreFactor, total int) []string {
	var recs []string

	for _, f := range factors {
		switch f.Name {
		case "farm_data":
			if f.Points < 20 {
				recs = append(recs,
					"Add GPS coordinates to all farms for better verification",
					"Complete farm details (soil type, irrigation type)")
			}
		case "crop_health":
			if f.Points < 20 {
				recs = append(recs,
					"Improve crop health through better irrigation and fertilization",
					"Monitor crop health regularly using satellite data")
			}
		case "historical_performance":
			if f.Points < 15 {
				recs = append(recs,
					"Build farming history by recording all crops and harvests",
					"Try to meet or exceed expected yield targets")
			}
		case "farmer_behavior":
			if f.Points < 10 {
				recs = append(recs,
					"Complete your profile information",
					"Verify your Aadhaar for a better trust score")
			}
		}
	}

	switch {
	case total >= 75:
		recs = append(recs, "Excellent trust score! You qualify for premium loan offers")
	case total >= 50:
		recs = append(recs, "Good trust score! Keep maintaining your farming records")
	default:
		recs = append(recs, "Keep improving your score to access better loan terms")
	}

	return recs
}
