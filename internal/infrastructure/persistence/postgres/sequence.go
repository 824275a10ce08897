package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// sequenceNames maps identifier families to their database sequences.
var sequenceNames = map[port.SequenceKind]string{
	port.SequenceFarmer:    "farmer_id_seq",
	port.SequenceLoan:      "loan_id_seq",
	port.SequenceRepayment: "repayment_id_seq",
}

// SequenceRepo implements port.SequenceGenerator on database sequences.
// When a sequence draw fails, it degrades to a timestamp suffix so that
// identifier issuance never blocks a business operation; the resulting IDs
// are unique but fall outside the zero-padded range.
type SequenceRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSequenceRepo creates a sequence-backed identifier generator.
func NewSequenceRepo(pool *pgxpool.Pool, logger *slog.Logger) *SequenceRepo {
	return &SequenceRepo{pool: pool, logger: logger}
}

// Next issues the next identifier for the given family, e.g. LOAN000042.
func (r *SequenceRepo) Next(ctx context.Context, kind port.SequenceKind) (string, error) {
	seq, ok := sequenceNames[kind]
	if !ok {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}

	var n int64
	err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT nextval('%s')", seq)).Scan(&n)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("sequence draw failed, falling back to timestamp id",
				"sequence", seq, "error", err)
		}
		return fmt.Sprintf("%s%d", kind, time.Now().UnixMilli()), nil
	}

	return fmt.Sprintf("%s%06d", kind, n), nil
}
