package usecase_test

import (
	"context"
	"fmt"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/event"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

type mockFarmerRepo struct {
	findByIDFunc func(ctx context.Context, farmerID string) (model.Farmer, error)
	updatedScore *int
	updatedRisk  valueobject.RiskLevel
}

func (m *mockFarmerRepo) FindByID(ctx context.Context, farmerID string) (model.Farmer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, farmerID)
	}
	return model.Farmer{}, apperr.New(apperr.NotFound, "farmer not found")
}

func (m *mockFarmerRepo) UpdateTrustScore(_ context.Context, _ string, score int, risk valueobject.RiskLevel) error {
	m.updatedScore = &score
	m.updatedRisk = risk
	return nil
}

type mockFarmRepo struct {
	farms []model.Farm
}

func (m *mockFarmRepo) FindByFarmerID(context.Context, string) ([]model.Farm, error) {
	return m.farms, nil
}

func (m *mockFarmRepo) FindByID(_ context.Context, farmID string) (model.Farm, error) {
	for _, f := range m.farms {
		if f.ID == farmID {
			return f, nil
		}
	}
	return model.Farm{}, apperr.New(apperr.NotFound, "farm not found")
}

type mockCropRepo struct {
	crops []model.Crop
}

func (m *mockCropRepo) FindByFarmIDs(context.Context, []string) ([]model.Crop, error) {
	return m.crops, nil
}

func (m *mockCropRepo) FindByFarmID(_ context.Context, farmID string) ([]model.Crop, error) {
	var out []model.Crop
	for _, c := range m.crops {
		if c.FarmID == farmID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockLoanRepo struct {
	findByIDFunc       func(ctx context.Context, loanID string) (model.Loan, error)
	findByFarmerIDFunc func(ctx context.Context, farmerID string) ([]model.Loan, error)
	saveFunc           func(ctx context.Context, loan model.Loan) error
	savedLoans         []model.Loan
}

func (m *mockLoanRepo) FindByID(ctx context.Context, loanID string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, loanID)
	}
	return model.Loan{}, apperr.New(apperr.NotFound, "loan not found")
}

func (m *mockLoanRepo) FindByFarmerID(ctx context.Context, farmerID string) ([]model.Loan, error) {
	if m.findByFarmerIDFunc != nil {
		return m.findByFarmerIDFunc(ctx, farmerID)
	}
	return nil, nil
}

func (m *mockLoanRepo) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, loan); err != nil {
			return err
		}
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

type mockRepaymentRepo struct {
	appendFunc func(ctx context.Context, r model.Repayment) error
	entries    []model.Repayment
}

func (m *mockRepaymentRepo) Append(ctx context.Context, r model.Repayment) error {
	if m.appendFunc != nil {
		if err := m.appendFunc(ctx, r); err != nil {
			return err
		}
	}
	m.entries = append(m.entries, r)
	return nil
}

func (m *mockRepaymentRepo) FindByLoanID(context.Context, string) ([]model.Repayment, error) {
	return m.entries, nil
}

type mockSequences struct {
	next int
}

func (m *mockSequences) Next(_ context.Context, kind port.SequenceKind) (string, error) {
	m.next++
	return fmt.Sprintf("%s%06d", kind, m.next), nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, events...); err != nil {
			return err
		}
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}
