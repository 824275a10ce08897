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

// FarmRepo implements port.FarmRepository.
type FarmRepo struct {
	pool *pgxpool.Pool
}

// NewFarmRepo creates a PostgreSQL-backed farm repository.
func NewFarmRepo(pool *pgxpool.Pool) *FarmRepo {
	return &FarmRepo{pool: pool}
}

const farmColumns = `
	farm_id, farmer_id, land_size_acres, gps_lat, gps_long,
	irrigation_type, soil_type, state, district, village, created_at
`

// FindByFarmerID lists all farms registered by a farmer.
func (r *FarmRepo) FindByFarmerID(ctx context.Context, farmerID string) ([]model.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE farmer_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("query farms: %w", err)
	}
	defer rows.Close()

	var farms []model.Farm
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, err
		}
		farms = append(farms, farm)
	}
	return farms, rows.Err()
}

// FindByID retrieves one farm.
func (r *FarmRepo) FindByID(ctx context.Context, farmID string) (model.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE farm_id = $1`
	farm, err := scanFarm(r.pool.QueryRow(ctx, query, farmID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Farm{}, apperr.Newf(apperr.NotFound, "farm %s not found", farmID)
	}
	return farm, err
}

func scanFarm(s scannable) (model.Farm, error) {
	var (
		f          model.Farm
		irrigation *string
		soil       *string
		village    *string
	)
	err := s.Scan(
		&f.ID, &f.FarmerID, &f.LandSizeAcres, &f.GPSLat, &f.GPSLong,
		&irrigation, &soil, &f.State, &f.District, &village, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Farm{}, err
	}
	if err != nil {
		return model.Farm{}, fmt.Errorf("scan farm: %w", err)
	}
	if irrigation != nil {
		f.IrrigationType = valueobject.IrrigationType(*irrigation)
	}
	if soil != nil {
		f.SoilType = *soil
	}
	if village != nil {
		f.Village = *village
	}
	return f, nil
}
