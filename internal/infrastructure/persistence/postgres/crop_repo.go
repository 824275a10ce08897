package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// CropRepo implements port.CropRepository.
type CropRepo struct {
	pool *pgxpool.Pool
}

// NewCropRepo creates a PostgreSQL-backed crop repository.
func NewCropRepo(pool *pgxpool.Pool) *CropRepo {
	return &CropRepo{pool: pool}
}

const cropColumns = `
	crop_id, farm_id, crop_type, season, sowing_date,
	expected_harvest_date, actual_harvest_date,
	expected_yield_quintals, actual_yield_quintals,
	area_sown_acres, crop_status, created_at
`

// FindByFarmIDs lists crops across a set of farms. An empty set returns an
// empty slice without touching the database.
func (r *CropRepo) FindByFarmIDs(ctx context.Context, farmIDs []string) ([]model.Crop, error) {
	if len(farmIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + cropColumns + ` FROM crops WHERE farm_id = ANY($1) ORDER BY sowing_date`
	rows, err := r.pool.Query(ctx, query, farmIDs)
	if err != nil {
		return nil, fmt.Errorf("query crops: %w", err)
	}
	defer rows.Close()

	var crops []model.Crop
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
	}
	return crops, rows.Err()
}

// FindByFarmID lists crops on one farm.
func (r *CropRepo) FindByFarmID(ctx context.Context, farmID string) ([]model.Crop, error) {
	return r.FindByFarmIDs(ctx, []string{farmID})
}

func scanCrop(s scannable) (model.Crop, error) {
	var (
		c      model.Crop
		season string
		status string
	)
	err := s.Scan(
		&c.ID, &c.FarmID, &c.CropType, &season, &c.SowingDate,
		&c.ExpectedHarvestDate, &c.ActualHarvestDate,
		&c.ExpectedYieldQtl, &c.ActualYieldQtl,
		&c.AreaSownAcres, &status, &c.CreatedAt,
	)
	if err != nil {
		return model.Crop{}, fmt.Errorf("scan crop: %w", err)
	}
	c.Season = valueobject.Season(season)
	c.Status = valueobject.CropStatus(status)
	return c, nil
}
