package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// Farmer is the platform's borrower record. The identity fields are written
// at registration; trust_score and risk_level are a write-through cache owned
// by the score composer.
type Farmer struct {
	ID                 string
	FullName           string
	MobileNumber       string
	AadhaarVerified    bool
	VerificationStatus valueobject.VerificationStatus
	ProfileCompletion  int // 0-100
	TrustScore         int // 0-100, cached
	RiskLevel          valueobject.RiskLevel
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Farm belongs to exactly one farmer.
type Farm struct {
	ID             string
	FarmerID       string
	LandSizeAcres  decimal.Decimal
	GPSLat         *float64
	GPSLong        *float64
	IrrigationType valueobject.IrrigationType
	SoilType       string
	State          string
	District       string
	Village        string
	CreatedAt      time.Time
}

// HasGPS reports whether both coordinates are recorded.
func (f Farm) HasGPS() bool {
	return f.GPSLat != nil && f.GPSLong != nil
}

// HasCompleteProfile reports whether irrigation, soil, state, and district
// are all recorded.
func (f Farm) HasCompleteProfile() bool {
	return f.IrrigationType != "" && f.SoilType != "" && f.State != "" && f.District != ""
}

// Crop belongs to exactly one farm.
type Crop struct {
	ID                  string
	FarmID              string
	CropType            string
	Season              valueobject.Season
	SowingDate          time.Time
	ExpectedHarvestDate *time.Time
	ActualHarvestDate   *time.Time
	ExpectedYieldQtl    *decimal.Decimal
	ActualYieldQtl      *decimal.Decimal
	AreaSownAcres       decimal.Decimal
	Status              valueobject.CropStatus
	CreatedAt           time.Time
}

// HasYieldFigures reports whether both expected and actual yield are recorded.
func (c Crop) HasYieldFigures() bool {
	return c.ExpectedYieldQtl != nil && c.ActualYieldQtl != nil &&
		c.ExpectedYieldQtl.IsPositive()
}

// FarmerSnapshot is the consistent read used for scoring and offer
// generation: one farmer, all their farms, all crops on those farms.
// It is assembled once per call and never mutated.
type FarmerSnapshot struct {
	Farmer Farmer
	Farms  []Farm
	Crops  []Crop
}

// FarmByID returns the farm with the given id, or false when absent.
func (s FarmerSnapshot) FarmByID(farmID string) (Farm, bool) {
	for _, f := range s.Farms {
		if f.ID == farmID {
			return f, true
		}
	}
	return Farm{}, false
}

// TotalLandAcres sums land size across all farms.
func (s FarmerSnapshot) TotalLandAcres() decimal.Decimal {
	total := decimal.Zero
	for _, f := range s.Farms {
		total = total.Add(f.LandSizeAcres)
	}
	return total
}

// CropsByStatus counts crops in the given status.
func (s FarmerSnapshot) CropsByStatus(status valueobject.CropStatus) int {
	n := 0
	for _, c := range s.Crops {
		if c.Status == status {
			n++
		}
	}
	return n
}
