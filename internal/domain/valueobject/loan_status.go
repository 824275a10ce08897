package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending   = "pending"
	loanStatusApproved  = "approved"
	loanStatusDisbursed = "disbursed"
	loanStatusRepaid    = "repaid"
	loanStatusRejected  = "rejected"
)

var (
	LoanStatusPending   = LoanStatus{value: loanStatusPending}
	LoanStatusApproved  = LoanStatus{value: loanStatusApproved}
	LoanStatusDisbursed = LoanStatus{value: loanStatusDisbursed}
	LoanStatusRepaid    = LoanStatus{value: loanStatusRepaid}
	LoanStatusRejected  = LoanStatus{value: loanStatusRejected}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:   LoanStatusPending,
	loanStatusApproved:  LoanStatusApproved,
	loanStatusDisbursed: LoanStatusDisbursed,
	loanStatusRepaid:    LoanStatusRepaid,
	loanStatusRejected:  LoanStatusRejected,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further transitions are possible.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusRepaid || s.value == loanStatusRejected
}

// AcceptsRepayment reports whether a repayment may be applied in this status.
func (s LoanStatus) AcceptsRepayment() bool {
	return s.value == loanStatusApproved || s.value == loanStatusDisbursed
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
