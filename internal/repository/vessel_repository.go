package repository

import (
	"database/sql"
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
)

// VesselRepository handles database operations for vessel types
type VesselRepository struct {
	db *sql.DB
}

// NewVesselRepository creates a new vessel repository
func NewVesselRepository(db *sql.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

// ListVessels retrieves all vessel types
func (r *VesselRepository) ListVessels() ([]models.VesselType, error) {
	rows, err := r.db.Query(
		"SELECT id, name, slug, low_water_mph, normal_mph, high_water_mph FROM vessel_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query vessel types: %w", err)
	}
	defer rows.Close()

	var vessels []models.VesselType
	for rows.Next() {
		var v models.VesselType
		if err := rows.Scan(&v.ID, &v.Name, &v.Slug, &v.LowWaterMph, &v.NormalMph, &v.HighWaterMph); err != nil {
			return nil, fmt.Errorf("failed to scan vessel type: %w", err)
		}
		vessels = append(vessels, v)
	}

	return vessels, nil
}

// GetVesselByID retrieves a single vessel type by ID
func (r *VesselRepository) GetVesselByID(id int64) (*models.VesselType, error) {
	var v models.VesselType
	err := r.db.QueryRow(
		"SELECT id, name, slug, low_water_mph, normal_mph, high_water_mph FROM vessel_types WHERE id = ?", id).
		Scan(&v.ID, &v.Name, &v.Slug, &v.LowWaterMph, &v.NormalMph, &v.HighWaterMph)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vessel type: %w", err)
	}
	return &v, nil
}
