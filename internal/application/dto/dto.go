package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ComputeTrustScoreRequest identifies the farmer whose score to recalculate.
type ComputeTrustScoreRequest struct {
	FarmerID string `json:"farmer_id"`
}

// GetTrustScoreRequest identifies the farmer whose cached score to read.
type GetTrustScoreRequest struct {
	FarmerID string `json:"farmer_id"`
}

// GenerateOffersRequest identifies the farmer to price offers for.
type GenerateOffersRequest struct {
	FarmerID string `json:"farmer_id"`
}

// ApplyLoanRequest carries a new loan application.
type ApplyLoanRequest struct {
	FarmerID       string          `json:"farmer_id"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	DurationMonths int             `json:"loan_duration_months"`
	Purpose        string          `json:"loan_purpose"`
	LenderName     string          `json:"lender_name"`
	LenderType     string          `json:"lender_type"`
}

// ApproveLoanRequest carries a lender's approval decision. A zero approved
// amount defaults to the requested amount; a zero rate keeps the rate from
// the application.
type ApproveLoanRequest struct {
	LoanID         string          `json:"loan_id"`
	BankID         string          `json:"bank_id"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

// RejectLoanRequest carries a lender's rejection decision.
type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	BankID string `json:"bank_id"`
	Reason string `json:"rejection_reason"`
}

// DisburseLoanRequest carries a disbursement instruction.
type DisburseLoanRequest struct {
	LoanID string `json:"loan_id"`
	BankID string `json:"bank_id"`
}

// RepayLoanRequest carries a repayment. FarmerID is optional: when present
// the repayment is rejected unless the loan belongs to that farmer.
type RepayLoanRequest struct {
	LoanID        string          `json:"loan_id"`
	FarmerID      string          `json:"farmer_id,omitempty"`
	Amount        decimal.Decimal `json:"repayment_amount"`
	PaymentMethod string          `json:"payment_method"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// GetLoanHistoryRequest identifies a farmer whose loans to list.
type GetLoanHistoryRequest struct {
	FarmerID string `json:"farmer_id"`
}

// GetRepaymentScheduleRequest identifies a loan whose schedule to project.
type GetRepaymentScheduleRequest struct {
	LoanID string `json:"loan_id"`
}

// ValidateCropRequest identifies the crop to validate against external
// signals.
type ValidateCropRequest struct {
	FarmID string `json:"farm_id"`
	CropID string `json:"crop_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// TrustScoreResponse is the external representation of a score computation.
type TrustScoreResponse struct {
	FarmerID        string                  `json:"farmer_id"`
	FarmerName      string                  `json:"farmer_name"`
	TrustScore      int                     `json:"trust_score"`
	RiskLevel       string                  `json:"risk_level"`
	Factors         []service.ScoreFactor   `json:"score_breakdown,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	Statistics      service.ScoreStatistics `json:"statistics"`
	CalculatedAt    time.Time               `json:"calculated_at"`
}

// CachedScoreResponse is the stored score without a fresh computation.
type CachedScoreResponse struct {
	FarmerID   string `json:"farmer_id"`
	FarmerName string `json:"farmer_name"`
	TrustScore int    `json:"trust_score"`
	RiskLevel  string `json:"risk_level"`
}

// OfferSheetResponse is the external representation of generated offers.
type OfferSheetResponse struct {
	FarmerID        string              `json:"farmer_id"`
	FarmerName      string              `json:"farmer_name,omitempty"`
	TrustScore      int                 `json:"trust_score"`
	RiskLevel       string              `json:"risk_level"`
	TotalLandAcres  decimal.Decimal     `json:"total_land_acres"`
	EligibleOffers  int                 `json:"eligible_offers"`
	Offers          []service.LoanOffer `json:"offers,omitempty"`
	Message         string              `json:"message,omitempty"`
	ImprovementTips []string            `json:"improvement_tips,omitempty"`
	Note            string              `json:"note,omitempty"`
}

// LoanApplicationResponse is returned on a successful application.
type LoanApplicationResponse struct {
	LoanID            string          `json:"loan_id"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	DurationMonths    int             `json:"duration_months"`
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	ProcessingFee     decimal.Decimal `json:"processing_fee"`
	RepaymentDueDate  string          `json:"repayment_due_date"`
	ApplicationStatus string          `json:"application_status"`
	NextSteps         []string        `json:"next_steps"`
}

// RepaymentEntryResponse is one ledger entry in a loan's repayment history.
type RepaymentEntryResponse struct {
	RepaymentID    string          `json:"repayment_id"`
	Amount         decimal.Decimal `json:"repayment_amount"`
	PaymentMethod  string          `json:"payment_method"`
	TransactionRef string          `json:"transaction_id"`
	RepaymentDate  time.Time       `json:"repayment_date"`
}

// LoanResponse is the external representation of a loan with its repayment
// history.
type LoanResponse struct {
	LoanID                  string                   `json:"loan_id"`
	FarmerID                string                   `json:"farmer_id"`
	FarmerName              string                   `json:"farmer_name,omitempty"`
	Status                  string                   `json:"loan_status"`
	RequestedAmount         decimal.Decimal          `json:"loan_amount"`
	ApprovedAmount          decimal.Decimal          `json:"approved_amount,omitempty"`
	InterestRate            decimal.Decimal          `json:"interest_rate"`
	DurationMonths          int                      `json:"loan_duration_months"`
	Purpose                 string                   `json:"loan_purpose"`
	LenderName              string                   `json:"lender_name"`
	LenderType              string                   `json:"lender_type"`
	TrustScoreAtApplication int                      `json:"trust_score_at_application"`
	RiskLevelAtApplication  string                   `json:"risk_level"`
	EMIAmount               decimal.Decimal          `json:"emi_amount"`
	AmountRepaid            decimal.Decimal          `json:"amount_repaid"`
	OutstandingAmount       decimal.Decimal          `json:"outstanding_amount"`
	RejectionReason         string                   `json:"rejection_reason,omitempty"`
	ApplicationDate         time.Time                `json:"application_date"`
	ApprovalDate            *time.Time               `json:"approval_date,omitempty"`
	DisbursementDate        *time.Time               `json:"disbursement_date,omitempty"`
	RepaymentDueDate        *time.Time               `json:"repayment_due_date,omitempty"`
	RepaymentHistory        []RepaymentEntryResponse `json:"repayment_history,omitempty"`
	TotalRepayments         int                      `json:"total_repayments"`
}

// LoanDecisionResponse is returned after an approve/reject/disburse action.
type LoanDecisionResponse struct {
	LoanID           string          `json:"loan_id"`
	Status           string          `json:"loan_status"`
	ApprovedAmount   decimal.Decimal `json:"approved_amount,omitempty"`
	InterestRate     decimal.Decimal `json:"interest_rate,omitempty"`
	EMIAmount        decimal.Decimal `json:"emi_amount,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	TransactionRef   string          `json:"transaction_id,omitempty"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	DisbursementDate *time.Time      `json:"disbursement_date,omitempty"`
	Message          string          `json:"message"`
}

// RepaymentResponse is returned after a repayment is recorded.
type RepaymentResponse struct {
	RepaymentID       string          `json:"repayment_id"`
	LoanID            string          `json:"loan_id"`
	Amount            decimal.Decimal `json:"repayment_amount"`
	AmountRepaid      decimal.Decimal `json:"amount_repaid"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	LoanStatus        string          `json:"loan_status"`
	TransactionRef    string          `json:"transaction_id"`
	RepaymentDate     time.Time       `json:"repayment_date"`
	Message           string          `json:"message"`
}

// LoanHistorySummary aggregates a farmer's loan portfolio.
type LoanHistorySummary struct {
	TotalLoans          int             `json:"total_loans"`
	ActiveLoans         int             `json:"active_loans"`
	PendingApplications int             `json:"pending_applications"`
	CompletedLoans      int             `json:"completed_loans"`
	TotalBorrowed       decimal.Decimal `json:"total_borrowed"`
	TotalRepaid         decimal.Decimal `json:"total_repaid"`
	TotalOutstanding    decimal.Decimal `json:"total_outstanding"`
}

// LoanHistoryResponse lists a farmer's loans newest first.
type LoanHistoryResponse struct {
	FarmerID string             `json:"farmer_id"`
	Summary  LoanHistorySummary `json:"summary"`
	Loans    []LoanResponse     `json:"loans"`
}

// InstallmentResponse is one projected schedule entry.
type InstallmentResponse struct {
	Number  int             `json:"installment_number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
}

// RepaymentScheduleResponse projects the remaining EMI schedule of a loan.
type RepaymentScheduleResponse struct {
	LoanID            string                `json:"loan_id"`
	EMIAmount         decimal.Decimal       `json:"emi_amount"`
	DurationMonths    int                   `json:"duration_months"`
	TotalPayable      decimal.Decimal       `json:"total_payable"`
	AmountRepaid      decimal.Decimal       `json:"amount_repaid"`
	OutstandingAmount decimal.Decimal       `json:"outstanding_amount"`
	Schedule          []InstallmentResponse `json:"schedule"`
}

// CropValidationResponse combines the three external signals for one crop.
type CropValidationResponse struct {
	FarmID     string `json:"farm_id"`
	CropID     string `json:"crop_id"`
	CropType   string `json:"crop_type"`
	Vegetation struct {
		Index           float64   `json:"ndvi"`
		HealthBand      string    `json:"health_status"`
		Confidence      string    `json:"confidence"`
		DataSource      string    `json:"data_source"`
		MeasurementDate time.Time `json:"measurement_date"`
		Recommendations []string  `json:"recommendations,omitempty"`
	} `json:"vegetation"`
	Weather struct {
		RainfallMM      int      `json:"rainfall_mm"`
		TemperatureC    float64  `json:"temperature_c"`
		HumidityPct     int      `json:"humidity_percent"`
		DroughtRisk     string   `json:"drought_risk"`
		Conditions      string   `json:"conditions"`
		Season          string   `json:"season"`
		Recommendations []string `json:"recommendations,omitempty"`
		DataSource      string   `json:"data_source"`
	} `json:"weather"`
	Market struct {
		PricePerQtl     decimal.Decimal `json:"price_per_quintal"`
		AveragePrice    decimal.Decimal `json:"average_price"`
		Trend           string          `json:"trend"`
		Currency        string          `json:"currency"`
		Recommendations []string        `json:"recommendations,omitempty"`
		DataSource      string          `json:"data_source"`
	} `json:"market"`
	ValidatedAt time.Time `json:"validated_at"`
}
