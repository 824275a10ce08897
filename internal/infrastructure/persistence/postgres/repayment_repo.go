package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
)

// RepaymentRepo implements port.RepaymentRepository. The ledger is
// insert-only; there is no update path.
type RepaymentRepo struct {
	pool *pgxpool.Pool
}

// NewRepaymentRepo creates a PostgreSQL-backed repayment ledger.
func NewRepaymentRepo(pool *pgxpool.Pool) *RepaymentRepo {
	return &RepaymentRepo{pool: pool}
}

// Append inserts one ledger entry.
func (r *RepaymentRepo) Append(ctx context.Context, repayment model.Repayment) error {
	query := `
		INSERT INTO loan_repayments (
			repayment_id, loan_id, repayment_amount,
			payment_method, transaction_ref, repayment_date
		) VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.pool.Exec(ctx, query,
		repayment.ID, repayment.LoanID, repayment.Amount,
		repayment.PaymentMethod, repayment.TransactionRef, repayment.RepaymentDate,
	)
	if err != nil {
		return fmt.Errorf("append repayment: %w", err)
	}
	return nil
}

// FindByLoanID lists a loan's repayments, newest first.
func (r *RepaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error) {
	query := `
		SELECT repayment_id, loan_id, repayment_amount,
		       payment_method, transaction_ref, repayment_date
		FROM loan_repayments
		WHERE loan_id = $1
		ORDER BY repayment_date DESC
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query repayments: %w", err)
	}
	defer rows.Close()

	var repayments []model.Repayment
	for rows.Next() {
		var rp model.Repayment
		if err := rows.Scan(&rp.ID, &rp.LoanID, &rp.Amount, &rp.PaymentMethod, &rp.TransactionRef, &rp.RepaymentDate); err != nil {
			return nil, fmt.Errorf("scan repayment: %w", err)
		}
		repayments = append(repayments, rp)
	}
	return repayments, rows.Err()
}
