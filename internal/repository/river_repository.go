package repository

import (
	"database/sql"
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
)

// RiverRepository handles database operations for rivers
type RiverRepository struct {
	db DBTX
}

// NewRiverRepository creates a new river repository
func NewRiverRepository(db *sql.DB) *RiverRepository {
	return &RiverRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given
// transaction.
func (r *RiverRepository) WithTx(tx *sql.Tx) *RiverRepository {
	return &RiverRepository{db: tx}
}

const riverColumns = `id, name, slug, length_miles, geometry_json, headwater_first,
	gauge_station_id, gauge_name,
	too_low_ft, low_ft, optimal_min_ft, optimal_max_ft, high_ft, dangerous_ft,
	created_at, updated_at`

func scanRiver(row interface{ Scan(...interface{}) error }) (*models.River, error) {
	var r models.River
	err := row.Scan(
		&r.ID, &r.Name, &r.Slug, &r.LengthMiles, &r.GeometryJSON, &r.HeadwaterFirst,
		&r.GaugeStationID, &r.GaugeName,
		&r.TooLowFt, &r.LowFt, &r.OptimalMinFt, &r.OptimalMaxFt, &r.HighFt, &r.DangerousFt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRivers retrieves all rivers ordered by name
func (r *RiverRepository) ListRivers() ([]models.River, error) {
	rows, err := r.db.Query("SELECT " + riverColumns + " FROM rivers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query rivers: %w", err)
	}
	defer rows.Close()

	var rivers []models.River
	for rows.Next() {
		river, err := scanRiver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan river: %w", err)
		}
		rivers = append(rivers, *river)
	}

	return rivers, nil
}

// GetRiverByID retrieves a single river by ID
func (r *RiverRepository) GetRiverByID(id int64) (*models.River, error) {
	river, err := scanRiver(r.db.QueryRow("SELECT "+riverColumns+" FROM rivers WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get river: %w", err)
	}
	return river, nil
}

// GetRiverBySlug retrieves a single river by slug
func (r *RiverRepository) GetRiverBySlug(slug string) (*models.River, error) {
	river, err := scanRiver(r.db.QueryRow("SELECT "+riverColumns+" FROM rivers WHERE slug = ?", slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get river: %w", err)
	}
	return river, nil
}

// CreateRiver inserts a new river and returns its ID
func (r *RiverRepository) CreateRiver(river *models.River) (int64, error) {
	result, err := r.db.Exec(`INSERT INTO rivers
		(name, slug, length_miles, geometry_json, headwater_first,
		 gauge_station_id, gauge_name,
		 too_low_ft, low_ft, optimal_min_ft, optimal_max_ft, high_ft, dangerous_ft)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		river.Name, river.Slug, river.LengthMiles, river.GeometryJSON, river.HeadwaterFirst,
		river.GaugeStationID, river.GaugeName,
		river.TooLowFt, river.LowFt, river.OptimalMinFt, river.OptimalMaxFt, river.HighFt, river.DangerousFt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create river: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get river id: %w", err)
	}
	return id, nil
}

// UpdateRiver updates an existing river
func (r *RiverRepository) UpdateRiver(river *models.River) error {
	_, err := r.db.Exec(`UPDATE rivers SET
		name = ?, slug = ?, length_miles = ?, geometry_json = ?, headwater_first = ?,
		gauge_station_id = ?, gauge_name = ?,
		too_low_ft = ?, low_ft = ?, optimal_min_ft = ?, optimal_max_ft = ?,
		high_ft = ?, dangerous_ft = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		river.Name, river.Slug, river.LengthMiles, river.GeometryJSON, river.HeadwaterFirst,
		river.GaugeStationID, river.GaugeName,
		river.TooLowFt, river.LowFt, river.OptimalMinFt, river.OptimalMaxFt,
		river.HighFt, river.DangerousFt,
		river.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update river: %w", err)
	}
	return nil
}
