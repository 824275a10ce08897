package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `
	loan_id, farmer_id, requested_amount, approved_amount,
	interest_rate, duration_months, purpose, lender_name, lender_type, bank_id,
	trust_score_at_application, risk_level_at_application,
	emi_amount, outstanding_amount, amount_repaid,
	loan_status, rejection_reason, transaction_ref,
	application_date, approval_date, disbursement_date, repayment_due_date,
	version, created_at, updated_at
`

// Save upserts the loan. Updates carry an optimistic version check: when two
// writers race on the same aggregate, the second write hits zero rows and
// fails instead of clobbering the first.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	s := loan.State()
	query := `
		INSERT INTO loans (
			loan_id, farmer_id, requested_amount, approved_amount,
			interest_rate, duration_months, purpose, lender_name, lender_type, bank_id,
			trust_score_at_application, risk_level_at_application,
			emi_amount, outstanding_amount, amount_repaid,
			loan_status, rejection_reason, transaction_ref,
			application_date, approval_date, disbursement_date, repayment_due_date,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
		ON CONFLICT (loan_id) DO UPDATE SET
			approved_amount    = EXCLUDED.approved_amount,
			interest_rate      = EXCLUDED.interest_rate,
			bank_id            = EXCLUDED.bank_id,
			emi_amount         = EXCLUDED.emi_amount,
			outstanding_amount = EXCLUDED.outstanding_amount,
			amount_repaid      = EXCLUDED.amount_repaid,
			loan_status        = EXCLUDED.loan_status,
			rejection_reason   = EXCLUDED.rejection_reason,
			transaction_ref    = EXCLUDED.transaction_ref,
			approval_date      = EXCLUDED.approval_date,
			disbursement_date  = EXCLUDED.disbursement_date,
			repayment_due_date = EXCLUDED.repayment_due_date,
			version            = loans.version + 1,
			updated_at         = EXCLUDED.updated_at
		WHERE loans.version = $23
	`
	tag, err := r.pool.Exec(ctx, query,
		s.ID, s.FarmerID, s.RequestedAmount, s.ApprovedAmount,
		s.InterestRate, s.DurationMonths, s.Purpose, s.LenderName, s.LenderType, s.BankID,
		s.TrustScoreAtApplication, s.RiskLevelAtApplication.String(),
		s.EMIAmount, s.OutstandingAmount, s.AmountRepaid,
		s.Status.String(), s.RejectionReason, s.TransactionRef,
		s.ApplicationDate, s.ApprovalDate, s.DisbursementDate, s.RepaymentDueDate,
		s.Version, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.Internal, "optimistic locking conflict on loan %s", s.ID)
	}
	return nil
}

// FindByID retrieves one loan.
func (r *LoanRepo) FindByID(ctx context.Context, loanID string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`
	loan, err := scanLoan(r.pool.QueryRow(ctx, query, loanID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, apperr.Newf(apperr.NotFound, "loan %s not found", loanID)
	}
	return loan, err
}

// FindByFarmerID lists a farmer's loans, newest application first.
func (r *LoanRepo) FindByFarmerID(ctx context.Context, farmerID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE farmer_id = $1 ORDER BY application_date DESC`
	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoan(row scannable) (model.Loan, error) {
	var (
		s                             model.LoanState
		statusStr, riskStr            string
		rejectionReason, transaction  *string
		bankID, lenderName, lenderTyp *string
	)
	err := row.Scan(
		&s.ID, &s.FarmerID, &s.RequestedAmount, &s.ApprovedAmount,
		&s.InterestRate, &s.DurationMonths, &s.Purpose, &lenderName, &lenderTyp, &bankID,
		&s.TrustScoreAtApplication, &riskStr,
		&s.EMIAmount, &s.OutstandingAmount, &s.AmountRepaid,
		&statusStr, &rejectionReason, &transaction,
		&s.ApplicationDate, &s.ApprovalDate, &s.DisbursementDate, &s.RepaymentDueDate,
		&s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, err
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	if s.Status, err = valueobject.NewLoanStatus(statusStr); err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}
	if s.RiskLevelAtApplication, err = valueobject.NewRiskLevel(riskStr); err != nil {
		return model.Loan{}, fmt.Errorf("parse risk level: %w", err)
	}
	if lenderName != nil {
		s.LenderName = *lenderName
	}
	if lenderTyp != nil {
		s.LenderType = *lenderTyp
	}
	if bankID != nil {
		s.BankID = *bankID
	}
	if rejectionReason != nil {
		s.RejectionReason = *rejectionReason
	}
	if transaction != nil {
		s.TransactionRef = *transaction
	}

	return model.ReconstructLoan(s), nil
}
