package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// FarmerRepo implements port.FarmerRepository.
type FarmerRepo struct {
	pool *pgxpool.Pool
}

// NewFarmerRepo creates a PostgreSQL-backed farmer repository.
func NewFarmerRepo(pool *pgxpool.Pool) *FarmerRepo {
	return &FarmerRepo{pool: pool}
}

// FindByID retrieves a farmer record.
func (r *FarmerRepo) FindByID(ctx context.Context, farmerID string) (model.Farmer, error) {
	query := `
		SELECT farmer_id, full_name, mobile_number, aadhaar_verified,
		       verification_status, profile_completion,
		       trust_score, risk_level, created_at, updated_at
		FROM farmers
		WHERE farmer_id = $1
	`
	var (
		f                  model.Farmer
		verification, risk string
	)
	err := r.pool.QueryRow(ctx, query, farmerID).Scan(
		&f.ID, &f.FullName, &f.MobileNumber, &f.AadhaarVerified,
		&verification, &f.ProfileCompletion,
		&f.TrustScore, &risk, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Farmer{}, apperr.Newf(apperr.NotFound, "farmer %s not found", farmerID)
	}
	if err != nil {
		return model.Farmer{}, fmt.Errorf("scan farmer: %w", err)
	}

	f.VerificationStatus = valueobject.VerificationStatus(verification)
	f.RiskLevel, err = valueobject.NewRiskLevel(risk)
	if err != nil {
		return model.Farmer{}, fmt.Errorf("parse risk level: %w", err)
	}
	return f, nil
}

// UpdateTrustScore writes the cached score fields. Last write wins; the score
// is advisory and never participates in loan-balance invariants.
func (r *FarmerRepo) UpdateTrustScore(ctx context.Context, farmerID string, score int, riskLevel valueobject.RiskLevel) error {
	query := `
		UPDATE farmers
		SET trust_score = $2, risk_level = $3, updated_at = $4
		WHERE farmer_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, farmerID, score, riskLevel.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update trust score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "farmer %s not found", farmerID)
	}
	return nil
}
