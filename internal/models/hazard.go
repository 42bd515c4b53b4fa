package models

import "time"

// Hazard severity levels
const (
	SeverityInfo    = "info"
	SeverityCaution = "caution"
	SeverityDanger  = "danger"
)

// Hazard is a fixed obstacle on a river (dam, strainer, rapid) at a
// known river-mile position.
type Hazard struct {
	ID      int64 `json:"id" db:"id"`
	RiverID int64 `json:"river_id" db:"river_id"`

	Name        string  `json:"name" db:"name"`
	RiverMile   float64 `json:"river_mile" db:"river_mile"`
	Severity    string  `json:"severity" db:"severity"`
	PortageReqd bool    `json:"portage_required" db:"portage_required"`
	Description string  `json:"description,omitempty" db:"description"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidSeverity reports whether s is a known severity level.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityCaution, SeverityDanger:
		return true
	}
	return false
}
