package models

import "time"

// CacheFreshness is the caching policy a caller passes to the routing
// collaborator. Short freshness exists because roads and bridges can
// close during high water; it is a safety rule, not an optimization.
type CacheFreshness string

// Routing cache policies
const (
	FreshnessLong  CacheFreshness = "long"
	FreshnessShort CacheFreshness = "short"
)

// FloatEstimate is the computed float leg. Nil when no usable speed
// exists for the vessel under the current condition.
type FloatEstimate struct {
	Minutes  int     `json:"minutes"`
	SpeedMph float64 `json:"speed_mph"`
}

// DriveEstimate is the road leg from take-out back to put-in, as
// returned by the routing collaborator.
type DriveEstimate struct {
	Minutes  int     `json:"minutes"`
	Miles    float64 `json:"miles"`
	Geometry string  `json:"geometry,omitempty"` // encoded route polyline
}

// FloatPlan is the derived aggregate for one trip request. Ephemeral;
// persisted only through a share request, and then only as inputs plus
// the condition snapshot.
type FloatPlan struct {
	River   *River       `json:"river"`
	PutIn   *AccessPoint `json:"put_in"`
	TakeOut *AccessPoint `json:"take_out"`
	Vessel  *VesselType  `json:"vessel"`

	DistanceMiles float64 `json:"distance_miles"`

	Float *FloatEstimate `json:"float,omitempty"`
	Drive DriveEstimate  `json:"drive"`

	Conditions ConditionSnapshot `json:"conditions"`
	Hazards    []Hazard          `json:"hazards"`
	Warnings   []string          `json:"warnings"`
}

// SharedPlan is the persisted, immutable record behind a short share
// code. It freezes the plan inputs and the condition at creation time.
type SharedPlan struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`

	RiverID   int64 `json:"river_id" db:"river_id"`
	PutInID   int64 `json:"put_in_id" db:"put_in_id"`
	TakeOutID int64 `json:"take_out_id" db:"take_out_id"`
	VesselID  int64 `json:"vessel_id" db:"vessel_id"`

	DistanceMiles float64 `json:"distance_miles" db:"distance_miles"`
	FloatMinutes  *int    `json:"float_minutes,omitempty" db:"float_minutes"`
	DriveMinutes  int     `json:"drive_minutes" db:"drive_minutes"`

	// Condition at creation
	ConditionCode ConditionCode `json:"condition_code" db:"condition_code"`
	GaugeHeightFt *float64      `json:"gauge_height_ft,omitempty" db:"gauge_height_ft"`
	GaugeName     string        `json:"gauge_name,omitempty" db:"gauge_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
