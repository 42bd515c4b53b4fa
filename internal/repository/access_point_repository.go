package repository

import (
	"database/sql"
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
)

// AccessPointRepository handles database operations for access points
type AccessPointRepository struct {
	db DBTX
}

// NewAccessPointRepository creates a new access point repository
func NewAccessPointRepository(db *sql.DB) *AccessPointRepository {
	return &AccessPointRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given
// transaction.
func (r *AccessPointRepository) WithTx(tx *sql.Tx) *AccessPointRepository {
	return &AccessPointRepository{db: tx}
}

const accessPointColumns = `id, river_id, name, lat, lon, snapped_lat, snapped_lon,
	river_mile, approved, description, created_at, updated_at`

func scanAccessPoint(row interface{ Scan(...interface{}) error }) (*models.AccessPoint, error) {
	var a models.AccessPoint
	err := row.Scan(
		&a.ID, &a.RiverID, &a.Name, &a.Lat, &a.Lon, &a.SnappedLat, &a.SnappedLon,
		&a.RiverMile, &a.Approved, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByRiver retrieves access points for a river ordered by river-mile.
// When approvedOnly is set, unapproved points are filtered out.
func (r *AccessPointRepository) ListByRiver(riverID int64, approvedOnly bool) ([]models.AccessPoint, error) {
	query := "SELECT " + accessPointColumns + " FROM access_points WHERE river_id = ?"
	if approvedOnly {
		query += " AND approved = 1"
	}
	query += " ORDER BY river_mile"

	rows, err := r.db.Query(query, riverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query access points: %w", err)
	}
	defer rows.Close()

	var points []models.AccessPoint
	for rows.Next() {
		point, err := scanAccessPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access point: %w", err)
		}
		points = append(points, *point)
	}

	return points, nil
}

// GetAccessPointByID retrieves a single access point by ID
func (r *AccessPointRepository) GetAccessPointByID(id int64) (*models.AccessPoint, error) {
	point, err := scanAccessPoint(r.db.QueryRow(
		"SELECT "+accessPointColumns+" FROM access_points WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access point: %w", err)
	}
	return point, nil
}

// CreateAccessPoint inserts a new access point and returns its ID
func (r *AccessPointRepository) CreateAccessPoint(a *models.AccessPoint) (int64, error) {
	result, err := r.db.Exec(`INSERT INTO access_points
		(river_id, name, lat, lon, snapped_lat, snapped_lon, river_mile, approved, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RiverID, a.Name, a.Lat, a.Lon, a.SnappedLat, a.SnappedLon, a.RiverMile, a.Approved, a.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create access point: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get access point id: %w", err)
	}
	return id, nil
}

// UpdateAccessPoint updates an existing access point
func (r *AccessPointRepository) UpdateAccessPoint(a *models.AccessPoint) error {
	_, err := r.db.Exec(`UPDATE access_points SET
		name = ?, lat = ?, lon = ?, snapped_lat = ?, snapped_lon = ?,
		river_mile = ?, approved = ?, description = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		a.Name, a.Lat, a.Lon, a.SnappedLat, a.SnappedLon,
		a.RiverMile, a.Approved, a.Description,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update access point: %w", err)
	}
	return nil
}

// UpdateSnap rewrites only the derived position fields, used when a
// river's geometry changes and every point gets re-snapped.
func (r *AccessPointRepository) UpdateSnap(id int64, snappedLat, snappedLon, riverMile float64) error {
	_, err := r.db.Exec(`UPDATE access_points SET
		snapped_lat = ?, snapped_lon = ?, river_mile = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		snappedLat, snappedLon, riverMile, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update access point snap: %w", err)
	}
	return nil
}
