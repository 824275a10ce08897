package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

func TestNewLoanStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "disbursed", "repaid", "rejected"} {
		status, err := valueobject.NewLoanStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, status.String())
		assert.False(t, status.IsZero())
	}

	_, err := valueobject.NewLoanStatus("cancelled")
	assert.Error(t, err)
}

func TestLoanStatus_Predicates(t *testing.T) {
	assert.True(t, valueobject.LoanStatusApproved.AcceptsRepayment())
	assert.True(t, valueobject.LoanStatusDisbursed.AcceptsRepayment())
	assert.False(t, valueobject.LoanStatusPending.AcceptsRepayment())
	assert.False(t, valueobject.LoanStatusRepaid.AcceptsRepayment())
	assert.False(t, valueobject.LoanStatusRejected.AcceptsRepayment())

	assert.True(t, valueobject.LoanStatusRepaid.IsTerminal())
	assert.True(t, valueobject.LoanStatusRejected.IsTerminal())
	assert.False(t, valueobject.LoanStatusDisbursed.IsTerminal())
}

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.RiskLevel
	}{
		{100, valueobject.RiskLevelLow},
		{75, valueobject.RiskLevelLow},
		{74, valueobject.RiskLevelMedium},
		{50, valueobject.RiskLevelMedium},
		{49, valueobject.RiskLevelHigh},
		{25, valueobject.RiskLevelHigh},
		{24, valueobject.RiskLevelVeryHigh},
		{0, valueobject.RiskLevelVeryHigh},
	}
	for _, tc := range tests {
		assert.True(t, tc.want.Equal(valueobject.RiskLevelForScore(tc.score)),
			"score %d should map to %s", tc.score, tc.want)
	}
}

func TestNewRiskLevel(t *testing.T) {
	level, err := valueobject.NewRiskLevel("Very High")
	require.NoError(t, err)
	assert.True(t, level.Equal(valueobject.RiskLevelVeryHigh))

	_, err = valueobject.NewRiskLevel("severe")
	assert.Error(t, err)
}

func TestIrrigationType_IsIrrigated(t *testing.T) {
	assert.True(t, valueobject.IrrigationCanal.IsIrrigated())
	assert.True(t, valueobject.IrrigationDrip.IsIrrigated())
	assert.False(t, valueobject.IrrigationRainfed.IsIrrigated())
	assert.False(t, valueobject.IrrigationType("").IsIrrigated())
}

func TestVerificationStatus_IsVerified(t *testing.T) {
	assert.True(t, valueobject.VerificationVerified.IsVerified())
	assert.True(t, valueobject.VerificationMockVerified.IsVerified())
	assert.False(t, valueobject.VerificationPending.IsVerified())
}

func TestHealthBandForIndex(t *testing.T) {
	tests := []struct {
		index float64
		want  valueobject.HealthBand
	}{
		{0.85, valueobject.HealthExcellent},
		{0.7, valueobject.HealthExcellent},
		{0.69, valueobject.HealthHealthy},
		{0.5, valueobject.HealthHealthy},
		{0.4, valueobject.HealthModerate},
		{0.25, valueobject.HealthPoor},
		{0.1, valueobject.HealthCritical},
		{-0.3, valueobject.HealthCritical},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, valueobject.HealthBandForIndex(tc.index), "index %v", tc.index)
	}
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, valueobject.ConfidenceHigh, valueobject.ConfidenceFor(true, true))
	assert.Equal(t, valueobject.ConfidenceMedium, valueobject.ConfidenceFor(true, false))
	assert.Equal(t, valueobject.ConfidenceMedium, valueobject.ConfidenceFor(false, true))
	assert.Equal(t, valueobject.ConfidenceLow, valueobject.ConfidenceFor(false, false))
}
