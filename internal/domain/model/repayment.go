package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
)

// Repayment is one entry in a loan's repayment ledger. Entries are
// append-only: once created they are never mutated or deleted.
type Repayment struct {
	ID             string
	LoanID         string
	Amount         decimal.Decimal
	PaymentMethod  string
	TransactionRef string
	RepaymentDate  time.Time
}

// DefaultPaymentMethod is recorded when the caller does not name one.
const DefaultPaymentMethod = "Online"

// NewRepayment creates a validated ledger entry.
func NewRepayment(id, loanID string, amount decimal.Decimal, method, transactionRef string, now time.Time) (Repayment, error) {
	if id == "" {
		return Repayment{}, errors.New("repayment ID is required")
	}
	if loanID == "" {
		return Repayment{}, errors.New("loan ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Repayment{}, apperr.New(apperr.InvalidAmount, "repayment amount must be positive")
	}
	if method == "" {
		method = DefaultPaymentMethod
	}

	return Repayment{
		ID:             id,
		LoanID:         loanID,
		Amount:         amount,
		PaymentMethod:  method,
		TransactionRef: transactionRef,
		RepaymentDate:  now,
	}, nil
}
