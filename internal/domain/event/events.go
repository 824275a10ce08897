package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by every event an aggregate can raise.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the DomainEvent implementation shared by all events.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	Kind       string    `json:"aggregate_type"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  aggregateID,
		Kind:       aggregateType,
		OccurredTS: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.Kind }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }

// ---------------------------------------------------------------------------
// Trust score events
// ---------------------------------------------------------------------------

// TrustScoreRecalculated is raised when the score composer persists a fresh
// score for a farmer.
type TrustScoreRecalculated struct {
	BaseEvent
	FarmerID      string `json:"farmer_id"`
	PreviousScore int    `json:"previous_score"`
	TrustScore    int    `json:"trust_score"`
	RiskLevel     string `json:"risk_level"`
}

func NewTrustScoreRecalculated(farmerID string, previousScore, score int, riskLevel string) TrustScoreRecalculated {
	return TrustScoreRecalculated{
		BaseEvent:     NewBaseEvent("agritrust.score.recalculated", farmerID, "Farmer"),
		FarmerID:      farmerID,
		PreviousScore: previousScore,
		TrustScore:    score,
		RiskLevel:     riskLevel,
	}
}

// ---------------------------------------------------------------------------
// Loan lifecycle events
// ---------------------------------------------------------------------------

// LoanApplied is raised when a new loan application enters the system.
type LoanApplied struct {
	BaseEvent
	FarmerID        string          `json:"farmer_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	DurationMonths  int             `json:"duration_months"`
	Purpose         string          `json:"purpose"`
	TrustScore      int             `json:"trust_score_at_application"`
}

func NewLoanApplied(loanID, farmerID string, amount, rate decimal.Decimal, months int, purpose string, trustScore int) LoanApplied {
	return LoanApplied{
		BaseEvent:       NewBaseEvent("agritrust.loan.applied", loanID, "Loan"),
		FarmerID:        farmerID,
		RequestedAmount: amount,
		InterestRate:    rate,
		DurationMonths:  months,
		Purpose:         purpose,
		TrustScore:      trustScore,
	}
}

// LoanApproved is raised when a bank approves a pending loan.
type LoanApproved struct {
	BaseEvent
	FarmerID       string          `json:"farmer_id"`
	BankID         string          `json:"bank_id"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	EMIAmount      decimal.Decimal `json:"emi_amount"`
	TotalPayable   decimal.Decimal `json:"total_payable"`
}

func NewLoanApproved(loanID, farmerID, bankID string, amount, rate, emi, totalPayable decimal.Decimal) LoanApproved {
	return LoanApproved{
		BaseEvent:      NewBaseEvent("agritrust.loan.approved", loanID, "Loan"),
		FarmerID:       farmerID,
		BankID:         bankID,
		ApprovedAmount: amount,
		InterestRate:   rate,
		EMIAmount:      emi,
		TotalPayable:   totalPayable,
	}
}

// LoanRejected is raised when a bank rejects a pending loan.
type LoanRejected struct {
	BaseEvent
	FarmerID string `json:"farmer_id"`
	BankID   string `json:"bank_id"`
	Reason   string `json:"reason"`
}

func NewLoanRejected(loanID, farmerID, bankID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent: NewBaseEvent("agritrust.loan.rejected", loanID, "Loan"),
		FarmerID:  farmerID,
		BankID:    bankID,
		Reason:    reason,
	}
}

// LoanDisbursed is raised when funds are released to the farmer.
type LoanDisbursed struct {
	BaseEvent
	FarmerID       string          `json:"farmer_id"`
	BankID         string          `json:"bank_id"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref"`
}

func NewLoanDisbursed(loanID, farmerID, bankID string, amount decimal.Decimal, txnRef string) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:      NewBaseEvent("agritrust.loan.disbursed", loanID, "Loan"),
		FarmerID:       farmerID,
		BankID:         bankID,
		Amount:         amount,
		TransactionRef: txnRef,
	}
}

// RepaymentRecorded is raised for every repayment applied to a loan.
type RepaymentRecorded struct {
	BaseEvent
	FarmerID          string          `json:"farmer_id"`
	Amount            decimal.Decimal `json:"amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	AmountRepaid      decimal.Decimal `json:"amount_repaid"`
}

func NewRepaymentRecorded(loanID, farmerID string, amount, outstanding, repaid decimal.Decimal) RepaymentRecorded {
	return RepaymentRecorded{
		BaseEvent:         NewBaseEvent("agritrust.loan.repayment_recorded", loanID, "Loan"),
		FarmerID:          farmerID,
		Amount:            amount,
		OutstandingAmount: outstanding,
		AmountRepaid:      repaid,
	}
}

// LoanFullyRepaid is raised when the outstanding balance reaches zero.
type LoanFullyRepaid struct {
	BaseEvent
	FarmerID    string          `json:"farmer_id"`
	TotalRepaid decimal.Decimal `json:"total_repaid"`
}

func NewLoanFullyRepaid(loanID, farmerID string, totalRepaid decimal.Decimal) LoanFullyRepaid {
	return LoanFullyRepaid{
		BaseEvent:   NewBaseEvent("agritrust.loan.fully_repaid", loanID, "Loan"),
		FarmerID:    farmerID,
		TotalRepaid: totalRepaid,
	}
}
