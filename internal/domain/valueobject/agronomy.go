package valueobject

// Agronomic enumerations shared by farms and crops. These are stored as
// plain strings; unknown values coming from partner data feeds are kept
// as-is rather than rejected, so the types below carry the recognised set
// plus helper predicates instead of strict constructors.

// Season identifies the cropping season.
type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonZaid   Season = "Zaid"
	SeasonSummer Season = "Summer"
	SeasonWinter Season = "Winter"
)

// IrrigationType identifies the water source for a farm.
type IrrigationType string

const (
	IrrigationRainfed   IrrigationType = "Rainfed"
	IrrigationCanal     IrrigationType = "Canal"
	IrrigationTubewell  IrrigationType = "Tubewell"
	IrrigationDrip      IrrigationType = "Drip"
	IrrigationSprinkler IrrigationType = "Sprinkler"
)

// IsIrrigated reports whether the farm has any water source beyond rainfall.
func (t IrrigationType) IsIrrigated() bool {
	return t != "" && t != IrrigationRainfed
}

// CropStatus identifies where a crop is in its cultivation cycle.
type CropStatus string

const (
	CropStatusGrowing   CropStatus = "growing"
	CropStatusHarvested CropStatus = "harvested"
	CropStatusFailed    CropStatus = "failed"
	CropStatusDamaged   CropStatus = "damaged"
)

// VerificationStatus identifies how far a farmer's identity check has gone.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	// VerificationMockVerified marks accounts verified through the sandbox
	// KYC flow; it counts as verified for scoring purposes.
	VerificationMockVerified VerificationStatus = "mock_verified"
)

// IsVerified reports whether the status counts as a completed verification.
func (v VerificationStatus) IsVerified() bool {
	return v == VerificationVerified || v == VerificationMockVerified
}

// HealthBand is the qualitative vegetation-health banding derived from a
// vegetation index reading.
type HealthBand string

const (
	HealthExcellent HealthBand = "Excellent"
	HealthHealthy   HealthBand = "Healthy"
	HealthModerate  HealthBand = "Moderate"
	HealthPoor      HealthBand = "Poor"
	HealthCritical  HealthBand = "Critical"
)

// HealthBandForIndex maps a vegetation index in [-1, 1] to its band.
func HealthBandForIndex(index float64) HealthBand {
	switch {
	case index >= 0.7:
		return HealthExcellent
	case index >= 0.5:
		return HealthHealthy
	case index >= 0.3:
		return HealthModerate
	case index >= 0.2:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// Confidence grades how much supporting data backed an external reading.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ConfidenceFor derives the confidence grade from data availability:
// High when both GPS and crop data are present, Medium when one is,
// Low otherwise.
func ConfidenceFor(hasGPS, hasCropData bool) Confidence {
	switch {
	case hasGPS && hasCropData:
		return ConfidenceHigh
	case hasGPS || hasCropData:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
