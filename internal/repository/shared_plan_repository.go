package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
)

// SharedPlanRepository handles database operations for shared plans
type SharedPlanRepository struct {
	db *sql.DB
}

// NewSharedPlanRepository creates a new shared plan repository
func NewSharedPlanRepository(db *sql.DB) *SharedPlanRepository {
	return &SharedPlanRepository{db: db}
}

// InsertSharedPlan persists a share record. The code's uniqueness
// constraint is the only collision check: a violation comes back as
// plan.ErrDuplicateCode so the allocator retries, and two concurrent
// allocations can never both claim one code.
func (r *SharedPlanRepository) InsertSharedPlan(sp *models.SharedPlan) error {
	result, err := r.db.Exec(`INSERT INTO shared_plans
		(code, river_id, put_in_id, take_out_id, vessel_id,
		 distance_miles, float_minutes, drive_minutes,
		 condition_code, gauge_height_ft, gauge_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.Code, sp.RiverID, sp.PutInID, sp.TakeOutID, sp.VesselID,
		sp.DistanceMiles, sp.FloatMinutes, sp.DriveMinutes,
		string(sp.ConditionCode), sp.GaugeHeightFt, sp.GaugeName, sp.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("code %s: %w", sp.Code, plan.ErrDuplicateCode)
		}
		return fmt.Errorf("failed to insert shared plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get shared plan id: %w", err)
	}
	sp.ID = id
	return nil
}

// GetSharedPlanByCode retrieves a shared plan by its short code
func (r *SharedPlanRepository) GetSharedPlanByCode(code string) (*models.SharedPlan, error) {
	var sp models.SharedPlan
	err := r.db.QueryRow(`SELECT id, code, river_id, put_in_id, take_out_id, vessel_id,
		distance_miles, float_minutes, drive_minutes,
		condition_code, gauge_height_ft, gauge_name, created_at
		FROM shared_plans WHERE code = ?`, code).Scan(
		&sp.ID, &sp.Code, &sp.RiverID, &sp.PutInID, &sp.TakeOutID, &sp.VesselID,
		&sp.DistanceMiles, &sp.FloatMinutes, &sp.DriveMinutes,
		&sp.ConditionCode, &sp.GaugeHeightFt, &sp.GaugeName, &sp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shared plan: %w", err)
	}
	return &sp, nil
}
