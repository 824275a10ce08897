package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/event"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Lending bounds enforced at application time.
var (
	// MaxLoanAmount is the hard ceiling on a single loan request (₹1 crore).
	MaxLoanAmount = decimal.NewFromInt(10_000_000)
	// MaxInterestRatePct caps the annual interest rate.
	MaxInterestRatePct = decimal.NewFromInt(30)
)

const (
	// MinDurationMonths and MaxDurationMonths bound the loan term.
	MinDurationMonths = 1
	MaxDurationMonths = 120
)

// ErrNotApprovingBank is returned when an institution other than the one
// that approved a loan attempts to disburse it.
var ErrNotApprovingBank = errors.New("caller is not the approving institution")

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The trust score and risk level are captured at application time and never
// change afterwards, regardless of later score recalculations.
type Loan struct {
	id              string
	farmerID        string
	requestedAmount decimal.Decimal
	approvedAmount  decimal.Decimal // zero until approval
	interestRate    decimal.Decimal // annual percent
	durationMonths  int
	purpose         string
	lenderName      string
	lenderType      string
	bankID          string // institution that approved the loan

	trustScoreAtApplication int
	riskLevelAtApplication  valueobject.RiskLevel

	emiAmount         decimal.Decimal
	outstandingAmount decimal.Decimal
	amountRepaid      decimal.Decimal

	status          valueobject.LoanStatus
	rejectionReason string
	transactionRef  string

	applicationDate  time.Time
	approvalDate     *time.Time
	disbursementDate *time.Time
	repaymentDueDate *time.Time

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// LoanState carries every persisted field of a loan; it exists so the
// repository can rebuild the aggregate without a 20-argument constructor.
type LoanState struct {
	ID                      string
	FarmerID                string
	RequestedAmount         decimal.Decimal
	ApprovedAmount          decimal.Decimal
	InterestRate            decimal.Decimal
	DurationMonths          int
	Purpose                 string
	LenderName              string
	LenderType              string
	BankID                  string
	TrustScoreAtApplication int
	RiskLevelAtApplication  valueobject.RiskLevel
	EMIAmount               decimal.Decimal
	OutstandingAmount       decimal.Decimal
	AmountRepaid            decimal.Decimal
	Status                  valueobject.LoanStatus
	RejectionReason         string
	TransactionRef          string
	ApplicationDate         time.Time
	ApprovalDate            *time.Time
	DisbursementDate        *time.Time
	RepaymentDueDate        *time.Time
	Version                 int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a loan application in pending status. The EMI and
// outstanding balance are computed from the requested terms; approval may
// later recompute both from the approved terms.
func NewLoan(
	id, farmerID string,
	requestedAmount, annualRatePct decimal.Decimal,
	durationMonths int,
	purpose, lenderName, lenderType string,
	trustScore int,
	riskLevel valueobject.RiskLevel,
	now time.Time,
) (Loan, error) {
	if id == "" {
		return Loan{}, errors.New("loan ID is required")
	}
	if farmerID == "" {
		return Loan{}, errors.New("farmer ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, apperr.New(apperr.InvalidAmount, "loan amount must be positive")
	}
	if requestedAmount.GreaterThan(MaxLoanAmount) {
		return Loan{}, apperr.Newf(apperr.InvalidAmount, "loan amount exceeds maximum of %s", MaxLoanAmount)
	}
	if annualRatePct.LessThanOrEqual(decimal.Zero) || annualRatePct.GreaterThan(MaxInterestRatePct) {
		return Loan{}, apperr.New(apperr.InvalidAmount, "interest rate must be between 0 and 30 percent")
	}
	if durationMonths < MinDurationMonths || durationMonths > MaxDurationMonths {
		return Loan{}, apperr.Newf(apperr.InvalidAmount, "loan duration must be between %d and %d months", MinDurationMonths, MaxDurationMonths)
	}
	if purpose == "" {
		purpose = "Agricultural purposes"
	}

	emi := EMI(requestedAmount, annualRatePct, durationMonths)
	outstanding := TotalPayable(emi, durationMonths)
	dueDate := now.AddDate(0, durationMonths, 0)

	loan := Loan{
		id:                      id,
		farmerID:                farmerID,
		requestedAmount:         requestedAmount,
		interestRate:            annualRatePct,
		durationMonths:          durationMonths,
		purpose:                 purpose,
		lenderName:              lenderName,
		lenderType:              lenderType,
		trustScoreAtApplication: trustScore,
		riskLevelAtApplication:  riskLevel,
		emiAmount:               emi,
		outstandingAmount:       outstanding,
		amountRepaid:            decimal.Zero,
		status:                  valueobject.LoanStatusPending,
		applicationDate:         now,
		repaymentDueDate:        &dueDate,
		version:                 1,
		createdAt:               now,
		updatedAt:               now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanApplied(
		id, farmerID, requestedAmount, annualRatePct, durationMonths, purpose, trustScore,
	))
	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence without
// side-effects.
func ReconstructLoan(s LoanState) Loan {
	return Loan{
		id:                      s.ID,
		farmerID:                s.FarmerID,
		requestedAmount:         s.RequestedAmount,
		approvedAmount:          s.ApprovedAmount,
		interestRate:            s.InterestRate,
		durationMonths:          s.DurationMonths,
		purpose:                 s.Purpose,
		lenderName:              s.LenderName,
		lenderType:              s.LenderType,
		bankID:                  s.BankID,
		trustScoreAtApplication: s.TrustScoreAtApplication,
		riskLevelAtApplication:  s.RiskLevelAtApplication,
		emiAmount:               s.EMIAmount,
		outstandingAmount:       s.OutstandingAmount,
		amountRepaid:            s.AmountRepaid,
		status:                  s.Status,
		rejectionReason:         s.RejectionReason,
		transactionRef:          s.TransactionRef,
		applicationDate:         s.ApplicationDate,
		approvalDate:            s.ApprovalDate,
		disbursementDate:        s.DisbursementDate,
		repaymentDueDate:        s.RepaymentDueDate,
		version:                 s.Version,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
	}
}

// State exports every persisted field for the repository layer.
func (l Loan) State() LoanState {
	return LoanState{
		ID:                      l.id,
		FarmerID:                l.farmerID,
		RequestedAmount:         l.requestedAmount,
		ApprovedAmount:          l.approvedAmount,
		InterestRate:            l.interestRate,
		DurationMonths:          l.durationMonths,
		Purpose:                 l.purpose,
		LenderName:              l.lenderName,
		LenderType:              l.lenderType,
		BankID:                  l.bankID,
		TrustScoreAtApplication: l.trustScoreAtApplication,
		RiskLevelAtApplication:  l.riskLevelAtApplication,
		EMIAmount:               l.emiAmount,
		OutstandingAmount:       l.outstandingAmount,
		AmountRepaid:            l.amountRepaid,
		Status:                  l.status,
		RejectionReason:         l.rejectionReason,
		TransactionRef:          l.transactionRef,
		ApplicationDate:         l.applicationDate,
		ApprovalDate:            l.approvalDate,
		DisbursementDate:        l.disbursementDate,
		RepaymentDueDate:        l.repaymentDueDate,
		Version:                 l.version,
		CreatedAt:               l.createdAt,
		UpdatedAt:               l.updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions pending -> approved and recomputes the EMI and
// outstanding balance from the approved terms. The approved amount may be
// lower than the requested amount, never higher. A zero rate keeps the rate
// requested at application time.
func (l Loan) Approve(bankID string, approvedAmount, annualRatePct decimal.Decimal, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, apperr.Newf(apperr.InvalidTransition, "loan is already %s, cannot approve", l.status)
	}
	if bankID == "" {
		return l, errors.New("approving bank ID is required")
	}
	if approvedAmount.LessThanOrEqual(decimal.Zero) {
		return l, apperr.New(apperr.InvalidAmount, "approved amount must be positive")
	}
	if approvedAmount.GreaterThan(l.requestedAmount) {
		return l, apperr.New(apperr.InvalidAmount, "approved amount cannot exceed requested amount")
	}

	rate := annualRatePct
	if rate.IsZero() {
		rate = l.interestRate
	}
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(MaxInterestRatePct) {
		return l, apperr.New(apperr.InvalidAmount, "interest rate must be between 0 and 30 percent")
	}

	emi := EMI(approvedAmount, rate, l.durationMonths)
	outstanding := TotalPayable(emi, l.durationMonths)
	dueDate := now.AddDate(0, l.durationMonths, 0)

	next := l
	next.status = valueobject.LoanStatusApproved
	next.bankID = bankID
	next.approvedAmount = approvedAmount
	next.interestRate = rate
	next.emiAmount = emi
	next.outstandingAmount = outstanding
	next.amountRepaid = decimal.Zero
	next.approvalDate = &now
	next.repaymentDueDate = &dueDate
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(
		l.id, l.farmerID, bankID, approvedAmount, rate, emi, outstanding,
	))
	return next, nil
}

// Reject transitions pending -> rejected. A reason is mandatory.
func (l Loan) Reject(bankID, reason string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, apperr.Newf(apperr.InvalidTransition, "loan is already %s, cannot reject", l.status)
	}
	if reason == "" {
		return l, errors.New("rejection reason is required")
	}

	next := l
	next.status = valueobject.LoanStatusRejected
	next.bankID = bankID
	next.rejectionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, l.farmerID, bankID, reason))
	return next, nil
}

// Disburse transitions approved -> disbursed. Only the institution that
// approved the loan may disburse it.
func (l Loan) Disburse(bankID, transactionRef string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, apperr.Newf(apperr.InvalidTransition, "loan must be approved before disbursement, current status: %s", l.status)
	}
	if bankID == "" || bankID != l.bankID {
		return l, ErrNotApprovingBank
	}

	next := l
	next.status = valueobject.LoanStatusDisbursed
	next.transactionRef = transactionRef
	next.disbursementDate = &now
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDisbursed(
		l.id, l.farmerID, bankID, l.approvedAmount, transactionRef,
	))
	return next, nil
}

// Repay applies a repayment: the outstanding balance is decremented (floored
// at zero), the cumulative repaid amount incremented, and the loan moves to
// repaid once the balance reaches zero.
func (l Loan) Repay(amount decimal.Decimal, now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusRepaid) {
		return l, apperr.New(apperr.AlreadyRepaid, "loan already fully repaid")
	}
	if !l.status.AcceptsRepayment() {
		return l, apperr.Newf(apperr.InvalidTransition, "cannot repay a %s loan", l.status)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, apperr.New(apperr.InvalidAmount, "repayment amount must be positive")
	}

	next := l
	next.outstandingAmount = l.outstandingAmount.Sub(amount)
	if next.outstandingAmount.IsNegative() {
		next.outstandingAmount = decimal.Zero
	}
	next.amountRepaid = l.amountRepaid.Add(amount)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewRepaymentRecorded(
		l.id, l.farmerID, amount, next.outstandingAmount, next.amountRepaid,
	))

	if next.outstandingAmount.IsZero() {
		next.status = valueobject.LoanStatusRepaid
		next.domainEvents = append(next.domainEvents, event.NewLoanFullyRepaid(l.id, l.farmerID, next.amountRepaid))
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                            { return l.id }
func (l Loan) FarmerID() string                      { return l.farmerID }
func (l Loan) RequestedAmount() decimal.Decimal      { return l.requestedAmount }
func (l Loan) ApprovedAmount() decimal.Decimal       { return l.approvedAmount }
func (l Loan) InterestRate() decimal.Decimal         { return l.interestRate }
func (l Loan) DurationMonths() int                   { return l.durationMonths }
func (l Loan) Purpose() string                       { return l.purpose }
func (l Loan) LenderName() string                    { return l.lenderName }
func (l Loan) LenderType() string                    { return l.lenderType }
func (l Loan) BankID() string                        { return l.bankID }
func (l Loan) TrustScoreAtApplication() int          { return l.trustScoreAtApplication }
func (l Loan) RiskLevelAtApplication() valueobject.RiskLevel { return l.riskLevelAtApplication }
func (l Loan) EMIAmount() decimal.Decimal            { return l.emiAmount }
func (l Loan) OutstandingAmount() decimal.Decimal    { return l.outstandingAmount }
func (l Loan) AmountRepaid() decimal.Decimal         { return l.amountRepaid }
func (l Loan) Status() valueobject.LoanStatus        { return l.status }
func (l Loan) RejectionReason() string               { return l.rejectionReason }
func (l Loan) TransactionRef() string                { return l.transactionRef }
func (l Loan) ApplicationDate() time.Time            { return l.applicationDate }
func (l Loan) ApprovalDate() *time.Time              { return l.approvalDate }
func (l Loan) DisbursementDate() *time.Time          { return l.disbursementDate }
func (l Loan) RepaymentDueDate() *time.Time          { return l.repaymentDueDate }
func (l Loan) Version() int                          { return l.version }
func (l Loan) CreatedAt() time.Time                  { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                  { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent     { return l.domainEvents }

// ScheduleStart is the anchor date for the repayment schedule: the
// disbursement date when present, the approval date otherwise, falling back
// to the application date for pending loans.
func (l Loan) ScheduleStart() time.Time {
	switch {
	case l.disbursementDate != nil:
		return *l.disbursementDate
	case l.approvalDate != nil:
		return *l.approvalDate
	default:
		return l.applicationDate
	}
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(events []event.DomainEvent) []event.DomainEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]event.DomainEvent, len(events))
	copy(out, events)
	return out
}
