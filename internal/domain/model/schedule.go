package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Installment is an immutable value object representing one period of a
// repayment schedule.
type Installment struct {
	DueDate time.Time
	Amount  decimal.Decimal
	Status  string
	Number  int
}

// InstallmentStatusPending is the placeholder status every generated
// installment starts in; per-installment settlement tracking is handled by
// the repayment ledger, not the schedule.
const InstallmentStatusPending = "pending"

// EMI computes the equal monthly installment for a loan, rounded to the
// nearest whole currency unit.
//
// Parameters:
//   - principal:     the loan amount
//   - annualRatePct: annual interest rate in percent (e.g. 10.5)
//   - months:        number of monthly periods
//
// The calculation uses:
//
//	monthlyRate = annualRatePct / 1200
//	emi         = P * r * (1+r)^n / ((1+r)^n - 1)
func EMI(principal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// The power term is computed in float64, monetary arithmetic in decimal.
	monthlyRate := annualRatePct.InexactFloat64() / 1200.0
	if monthlyRate == 0 {
		// Zero-interest: even split.
		return principal.Div(decimal.NewFromInt(int64(months))).Round(0)
	}

	factor := math.Pow(1+monthlyRate, float64(months))
	emi := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(emi).Round(0)
}

// TotalPayable is the amount a borrower pays over the full term: EMI times
// the number of months. It seeds the outstanding balance at approval.
func TotalPayable(emi decimal.Decimal, months int) decimal.Decimal {
	return emi.Mul(decimal.NewFromInt(int64(months)))
}

// GenerateRepaymentSchedule produces one installment per month, due dates
// offset from the start date, each for the flat EMI amount. The result is
// deterministic for identical inputs.
func GenerateRepaymentSchedule(emi decimal.Decimal, months int, startDate time.Time) []Installment {
	if months <= 0 {
		return nil
	}

	schedule := make([]Installment, 0, months)
	for period := 1; period <= months; period++ {
		schedule = append(schedule, Installment{
			Number:  period,
			DueDate: startDate.AddDate(0, period, 0),
			Amount:  emi,
			Status:  InstallmentStatusPending,
		})
	}
	return schedule
}
