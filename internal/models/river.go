package models

import "time"

// River represents a floatable river with its polyline geometry and
// per-river gauge threshold configuration.
type River struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`

	// Geometry
	LengthMiles float64 `json:"length_miles" db:"length_miles"`
	// GeometryJSON is the stored [lon, lat] vertex sequence. Not exposed
	// directly; handlers return the decoded form.
	GeometryJSON string `json:"-" db:"geometry_json"`
	// HeadwaterFirst is true when the first polyline vertex is river-mile 0
	// (the headwater). When false the polyline is stored mouth-first.
	HeadwaterFirst bool `json:"headwater_first" db:"headwater_first"`

	// Primary gauge
	GaugeStationID string `json:"gauge_station_id,omitempty" db:"gauge_station_id"`
	GaugeName      string `json:"gauge_name,omitempty" db:"gauge_name"`

	// Gauge height thresholds in feet, each optional
	TooLowFt     *float64 `json:"too_low_ft,omitempty" db:"too_low_ft"`
	LowFt        *float64 `json:"low_ft,omitempty" db:"low_ft"`
	OptimalMinFt *float64 `json:"optimal_min_ft,omitempty" db:"optimal_min_ft"`
	OptimalMaxFt *float64 `json:"optimal_max_ft,omitempty" db:"optimal_max_ft"`
	HighFt       *float64 `json:"high_ft,omitempty" db:"high_ft"`
	DangerousFt  *float64 `json:"dangerous_ft,omitempty" db:"dangerous_ft"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GaugeThresholds is the ordered boundary set for condition classification.
// Any field may be nil; present values are non-decreasing from TooLowFt up.
type GaugeThresholds struct {
	TooLowFt     *float64 `json:"too_low_ft,omitempty"`
	LowFt        *float64 `json:"low_ft,omitempty"`
	OptimalMinFt *float64 `json:"optimal_min_ft,omitempty"`
	OptimalMaxFt *float64 `json:"optimal_max_ft,omitempty"`
	HighFt       *float64 `json:"high_ft,omitempty"`
	DangerousFt  *float64 `json:"dangerous_ft,omitempty"`
}

// Thresholds returns the river's gauge thresholds as one value.
func (r *River) Thresholds() GaugeThresholds {
	return GaugeThresholds{
		TooLowFt:     r.TooLowFt,
		LowFt:        r.LowFt,
		OptimalMinFt: r.OptimalMinFt,
		OptimalMaxFt: r.OptimalMaxFt,
		HighFt:       r.HighFt,
		DangerousFt:  r.DangerousFt,
	}
}

// Polyline decodes the stored geometry into its vertex sequence.
func (r *River) Polyline() ([]Coordinate, error) {
	return DecodePolyline(r.GeometryJSON)
}
