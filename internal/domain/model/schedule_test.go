package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
)

func TestEMI(t *testing.T) {
	t.Run("standard amortization", func(t *testing.T) {
		// 1,20,000 at 12% over 12 months is the textbook case: 10,661.85 -> 10,662.
		emi := model.EMI(decimal.NewFromInt(120_000), decimal.NewFromInt(12), 12)
		assert.True(t, decimal.NewFromInt(10_662).Equal(emi), "got %s", emi)
	})

	t.Run("one lakh at seven percent", func(t *testing.T) {
		emi := model.EMI(decimal.NewFromInt(100_000), decimal.NewFromInt(7), 12)
		assert.True(t, decimal.NewFromInt(8_653).Equal(emi), "got %s", emi)
	})

	t.Run("zero rate splits evenly", func(t *testing.T) {
		emi := model.EMI(decimal.NewFromInt(120_000), decimal.Zero, 12)
		assert.True(t, decimal.NewFromInt(10_000).Equal(emi), "got %s", emi)
	})

	t.Run("zero months yields zero", func(t *testing.T) {
		emi := model.EMI(decimal.NewFromInt(100_000), decimal.NewFromInt(10), 0)
		assert.True(t, emi.IsZero())
	})

	t.Run("non-positive principal yields zero", func(t *testing.T) {
		emi := model.EMI(decimal.Zero, decimal.NewFromInt(10), 12)
		assert.True(t, emi.IsZero())
	})

	t.Run("interest always costs more than the principal", func(t *testing.T) {
		principal := decimal.NewFromInt(500_000)
		emi := model.EMI(principal, decimal.NewFromFloat(10.5), 24)
		total := model.TotalPayable(emi, 24)
		assert.True(t, total.GreaterThan(principal), "total %s should exceed principal", total)
	})
}

func TestTotalPayable(t *testing.T) {
	total := model.TotalPayable(decimal.NewFromInt(8_653), 12)
	assert.True(t, decimal.NewFromInt(103_836).Equal(total), "got %s", total)
}

func TestGenerateRepaymentSchedule(t *testing.T) {
	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	emi := decimal.NewFromInt(8_653)

	schedule := model.GenerateRepaymentSchedule(emi, 12, start)
	require.Len(t, schedule, 12)

	assert.Equal(t, 1, schedule[0].Number)
	assert.Equal(t, start.AddDate(0, 1, 0), schedule[0].DueDate)
	assert.Equal(t, start.AddDate(0, 12, 0), schedule[11].DueDate)
	for _, inst := range schedule {
		assert.True(t, emi.Equal(inst.Amount))
		assert.Equal(t, model.InstallmentStatusPending, inst.Status)
	}
}

func TestGenerateRepaymentSchedule_NoMonths(t *testing.T) {
	assert.Nil(t, model.GenerateRepaymentSchedule(decimal.NewFromInt(100), 0, time.Now()))
}
