package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskLevel – immutable value object
// ---------------------------------------------------------------------------

// RiskLevel is the categorical banding of a farmer's trust score.
type RiskLevel struct {
	value string
}

const (
	riskLevelLow           = "Low"
	riskLevelMedium        = "Medium"
	riskLevelHigh          = "High"
	riskLevelVeryHigh      = "Very High"
	riskLevelNotCalculated = "Not Calculated"
)

var (
	RiskLevelLow           = RiskLevel{value: riskLevelLow}
	RiskLevelMedium        = RiskLevel{value: riskLevelMedium}
	RiskLevelHigh          = RiskLevel{value: riskLevelHigh}
	RiskLevelVeryHigh      = RiskLevel{value: riskLevelVeryHigh}
	RiskLevelNotCalculated = RiskLevel{value: riskLevelNotCalculated}
)

var validRiskLevels = map[string]RiskLevel{
	riskLevelLow:           RiskLevelLow,
	riskLevelMedium:        RiskLevelMedium,
	riskLevelHigh:          RiskLevelHigh,
	riskLevelVeryHigh:      RiskLevelVeryHigh,
	riskLevelNotCalculated: RiskLevelNotCalculated,
}

// NewRiskLevel creates a RiskLevel from a raw string.
func NewRiskLevel(s string) (RiskLevel, error) {
	v, ok := validRiskLevels[s]
	if !ok {
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
	return v, nil
}

// RiskLevelForScore derives the risk banding from a trust score.
// Thresholds: >=75 Low, >=50 Medium, >=25 High, else Very High.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 75:
		return RiskLevelLow
	case score >= 50:
		return RiskLevelMedium
	case score >= 25:
		return RiskLevelHigh
	default:
		return RiskLevelVeryHigh
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true if the risk level has not been initialised.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal returns true when both levels carry the same value.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }
