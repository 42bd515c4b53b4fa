package models

// VesselType is static reference data: a craft and its base float speeds
// under low, normal, and high water.
type VesselType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`

	LowWaterMph  float64 `json:"low_water_mph" db:"low_water_mph"`
	NormalMph    float64 `json:"normal_mph" db:"normal_mph"`
	HighWaterMph float64 `json:"high_water_mph" db:"high_water_mph"`
}

// VesselSpeeds groups the three base speeds for the estimator.
type VesselSpeeds struct {
	LowWaterMph  float64 `json:"low_water_mph"`
	NormalMph    float64 `json:"normal_mph"`
	HighWaterMph float64 `json:"high_water_mph"`
}

// Speeds returns the vessel's base speed set.
func (v *VesselType) Speeds() VesselSpeeds {
	return VesselSpeeds{
		LowWaterMph:  v.LowWaterMph,
		NormalMph:    v.NormalMph,
		HighWaterMph: v.HighWaterMph,
	}
}
