package port

import (
	"context"

	"github.com/ratinto/agri-credit-backend/internal/domain/event"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// FarmerRepository reads farmer records and writes the cached score fields.
type FarmerRepository interface {
	FindByID(ctx context.Context, farmerID string) (model.Farmer, error)
	// UpdateTrustScore persists the recomputed score and risk level. It is
	// the only write the scoring path performs; last write wins when two
	// recomputations race.
	UpdateTrustScore(ctx context.Context, farmerID string, score int, riskLevel valueobject.RiskLevel) error
}

// FarmRepository reads farm records.
type FarmRepository interface {
	FindByFarmerID(ctx context.Context, farmerID string) ([]model.Farm, error)
	FindByID(ctx context.Context, farmID string) (model.Farm, error)
}

// CropRepository reads crop records.
type CropRepository interface {
	FindByFarmIDs(ctx context.Context, farmIDs []string) ([]model.Crop, error)
	FindByFarmID(ctx context.Context, farmID string) ([]model.Crop, error)
}

// LoanRepository persists and retrieves loans. Save uses an optimistic
// version check so that two concurrent repayments on the same loan cannot
// silently overwrite each other's balance update.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, loanID string) (model.Loan, error)
	FindByFarmerID(ctx context.Context, farmerID string) ([]model.Loan, error)
}

// RepaymentRepository appends to and reads the repayment ledger.
// Entries are insert-only.
type RepaymentRepository interface {
	Append(ctx context.Context, repayment model.Repayment) error
	FindByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error)
}

// SequenceGenerator issues human-readable identifiers (FRM…, LOAN…, REP…).
// Implementations fall back to a timestamp suffix when the underlying
// sequence is unavailable.
type SequenceGenerator interface {
	Next(ctx context.Context, kind SequenceKind) (string, error)
}

// SequenceKind selects which identifier family to draw from.
type SequenceKind string

const (
	SequenceFarmer    SequenceKind = "FRM"
	SequenceLoan      SequenceKind = "LOAN"
	SequenceRepayment SequenceKind = "REP"
)

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
