package repository

import (
	"database/sql"
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
)

// HazardRepository handles database operations for hazards
type HazardRepository struct {
	db *sql.DB
}

// NewHazardRepository creates a new hazard repository
func NewHazardRepository(db *sql.DB) *HazardRepository {
	return &HazardRepository{db: db}
}

const hazardColumns = `id, river_id, name, river_mile, severity, portage_required,
	description, created_at, updated_at`

func scanHazard(row interface{ Scan(...interface{}) error }) (*models.Hazard, error) {
	var h models.Hazard
	err := row.Scan(
		&h.ID, &h.RiverID, &h.Name, &h.RiverMile, &h.Severity, &h.PortageReqd,
		&h.Description, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListByRiver retrieves all hazards on a river ordered by river-mile
func (r *HazardRepository) ListByRiver(riverID int64) ([]models.Hazard, error) {
	rows, err := r.db.Query(
		"SELECT "+hazardColumns+" FROM hazards WHERE river_id = ? ORDER BY river_mile", riverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hazards: %w", err)
	}
	defer rows.Close()

	return collectHazards(rows)
}

// HazardsInRange retrieves hazards between two river-mile positions,
// inclusive on both ends.
func (r *HazardRepository) HazardsInRange(riverID int64, minMile, maxMile float64) ([]models.Hazard, error) {
	rows, err := r.db.Query(
		"SELECT "+hazardColumns+` FROM hazards
		WHERE river_id = ? AND river_mile >= ? AND river_mile <= ?
		ORDER BY river_mile`,
		riverID, minMile, maxMile)
	if err != nil {
		return nil, fmt.Errorf("failed to query hazards in range: %w", err)
	}
	defer rows.Close()

	return collectHazards(rows)
}

// GetHazardByID retrieves a single hazard by ID
func (r *HazardRepository) GetHazardByID(id int64) (*models.Hazard, error) {
	hazard, err := scanHazard(r.db.QueryRow("SELECT "+hazardColumns+" FROM hazards WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hazard: %w", err)
	}
	return hazard, nil
}

// CreateHazard inserts a new hazard and returns its ID
func (r *HazardRepository) CreateHazard(h *models.Hazard) (int64, error) {
	result, err := r.db.Exec(`INSERT INTO hazards
		(river_id, name, river_mile, severity, portage_required, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.RiverID, h.Name, h.RiverMile, h.Severity, h.PortageReqd, h.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create hazard: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get hazard id: %w", err)
	}
	return id, nil
}

// UpdateHazard updates an existing hazard
func (r *HazardRepository) UpdateHazard(h *models.Hazard) error {
	_, err := r.db.Exec(`UPDATE hazards SET
		name = ?, river_mile = ?, severity = ?, portage_required = ?, description = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		h.Name, h.RiverMile, h.Severity, h.PortageReqd, h.Description, h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hazard: %w", err)
	}
	return nil
}

func collectHazards(rows *sql.Rows) ([]models.Hazard, error) {
	var hazards []models.Hazard
	for rows.Next() {
		hazard, err := scanHazard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hazard: %w", err)
		}
		hazards = append(hazards, *hazard)
	}
	return hazards, nil
}
