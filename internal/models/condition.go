package models

import "time"

// ConditionCode is the discrete floatability classification of a river
// at a given gauge reading.
type ConditionCode string

// Condition codes, from no-data through rising severity
const (
	ConditionUnknown   ConditionCode = "unknown"
	ConditionTooLow    ConditionCode = "too_low"
	ConditionVeryLow   ConditionCode = "very_low"
	ConditionLow       ConditionCode = "low"
	ConditionOptimal   ConditionCode = "optimal"
	ConditionHigh      ConditionCode = "high"
	ConditionDangerous ConditionCode = "dangerous"
)

// ConditionReading is one gauge observation. Either measurement may be
// absent depending on what the station reports. Ephemeral; owned by the
// gauge-data collaborator, never persisted except inside a plan snapshot.
type ConditionReading struct {
	GaugeHeightFt *float64  `json:"gauge_height_ft,omitempty"`
	DischargeCFS  *float64  `json:"discharge_cfs,omitempty"`
	ObservedAt    time.Time `json:"observed_at"`
	StationID     string    `json:"station_id"`
}

// ConditionSnapshot is the condition state frozen into a float plan so a
// shared plan never shifts when the gauge later changes.
type ConditionSnapshot struct {
	Code          ConditionCode `json:"code"`
	GaugeHeightFt *float64      `json:"gauge_height_ft,omitempty"`
	DischargeCFS  *float64      `json:"discharge_cfs,omitempty"`
	ObservedAt    *time.Time    `json:"observed_at,omitempty"`
	GaugeName     string        `json:"gauge_name,omitempty"`
}
