package models

import "time"

// AccessPoint is a put-in/take-out location on a river. The snapped
// coordinate and river-mile are derived from the raw coordinate and the
// river geometry; they are recomputed on every write and never accepted
// from a client.
type AccessPoint struct {
	ID      int64 `json:"id" db:"id"`
	RiverID int64 `json:"river_id" db:"river_id"`

	Name string `json:"name" db:"name"`

	// Raw operator-entered position
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`

	// Derived: nearest point on the river polyline and its linear position
	SnappedLat float64 `json:"snapped_lat" db:"snapped_lat"`
	SnappedLon float64 `json:"snapped_lon" db:"snapped_lon"`
	RiverMile  float64 `json:"river_mile" db:"river_mile"`

	// Approved gates public visibility
	Approved bool `json:"approved" db:"approved"`

	Description string `json:"description,omitempty" db:"description"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Coordinate returns the raw operator-entered position.
func (a *AccessPoint) Coordinate() Coordinate {
	return Coordinate{Lon: a.Lon, Lat: a.Lat}
}

// Snapped returns the derived on-river position.
func (a *AccessPoint) Snapped() Coordinate {
	return Coordinate{Lon: a.SnappedLon, Lat: a.SnappedLat}
}
