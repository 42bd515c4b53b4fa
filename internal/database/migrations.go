package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one schema step. Migrations live in code so the binary
// carries its own schema.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. Append only.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "init_schema",
		SQL: `
		CREATE TABLE IF NOT EXISTS rivers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			length_miles REAL NOT NULL,
			geometry_json TEXT NOT NULL,
			headwater_first INTEGER NOT NULL DEFAULT 1,
			gauge_station_id TEXT NOT NULL DEFAULT '',
			gauge_name TEXT NOT NULL DEFAULT '',
			too_low_ft REAL,
			low_ft REAL,
			optimal_min_ft REAL,
			optimal_max_ft REAL,
			high_ft REAL,
			dangerous_ft REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS access_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			river_id INTEGER NOT NULL REFERENCES rivers(id),
			name TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			snapped_lat REAL NOT NULL,
			snapped_lon REAL NOT NULL,
			river_mile REAL NOT NULL,
			approved INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_access_points_river ON access_points(river_id);

		CREATE TABLE IF NOT EXISTS hazards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			river_id INTEGER NOT NULL REFERENCES rivers(id),
			name TEXT NOT NULL,
			river_mile REAL NOT NULL,
			severity TEXT NOT NULL,
			portage_required INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_hazards_river_mile ON hazards(river_id, river_mile);

		CREATE TABLE IF NOT EXISTS vessel_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			low_water_mph REAL NOT NULL,
			normal_mph REAL NOT NULL,
			high_water_mph REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS shared_plans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			river_id INTEGER NOT NULL REFERENCES rivers(id),
			put_in_id INTEGER NOT NULL REFERENCES access_points(id),
			take_out_id INTEGER NOT NULL REFERENCES access_points(id),
			vessel_id INTEGER NOT NULL REFERENCES vessel_types(id),
			distance_miles REAL NOT NULL,
			float_minutes INTEGER,
			drive_minutes INTEGER NOT NULL,
			condition_code TEXT NOT NULL,
			gauge_height_ft REAL,
			gauge_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
	},
	{
		Version: 2,
		Name:    "seed_vessel_types",
		SQL: `
		INSERT OR IGNORE INTO vessel_types (name, slug, low_water_mph, normal_mph, high_water_mph) VALUES
			('Canoe', 'canoe', 2.0, 3.0, 5.0),
			('Kayak', 'kayak', 2.5, 3.5, 5.5),
			('Raft', 'raft', 1.5, 2.5, 4.5),
			('Tube', 'tube', 1.0, 1.5, 3.0);
		`,
	},
}

// Migrate applies all pending migrations in order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

func apply(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", m.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}

	log.Printf("Applied migration %d: %s", m.Version, m.Name)
	return nil
}
