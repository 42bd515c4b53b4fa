package plan

import (
	"context"
	"fmt"
	"math"

	"github.com/driftwell/riverplan/internal/models"
)

// Degradation factors applied to the low-water base speed when the
// river is below its low boundary.
const (
	veryLowFactor = 0.75
	tooLowFactor  = 0.5
)

// RoutingService is the road-routing collaborator: point-to-point
// driving between take-out and put-in. The freshness hint selects the
// cache window; implementations must not serve a short-freshness
// request from a longer-lived cache.
type RoutingService interface {
	Route(ctx context.Context, from, to models.Coordinate, freshness models.CacheFreshness) (*models.DriveEstimate, error)
}

// GaugeService is the gauge-data collaborator. Latest returns the most
// recent reading for a station, or an error when the station is
// unreachable or reports nothing.
type GaugeService interface {
	Latest(ctx context.Context, stationID string) (*models.ConditionReading, error)
}

// speedFor selects the base speed for a condition. Unknown conditions
// use the normal speed as a documented default, not as a guess about
// the actual water.
func speedFor(speeds models.VesselSpeeds, code models.ConditionCode) float64 {
	switch code {
	case models.ConditionDangerous, models.ConditionHigh:
		return speeds.HighWaterMph
	case models.ConditionOptimal:
		return speeds.NormalMph
	case models.ConditionLow:
		return speeds.LowWaterMph
	case models.ConditionVeryLow:
		return speeds.LowWaterMph * veryLowFactor
	case models.ConditionTooLow:
		return speeds.LowWaterMph * tooLowFactor
	default:
		return speeds.NormalMph
	}
}

// EstimateFloat computes the float leg from distance, the vessel's base
// speeds, and the current condition. Returns nil when the resolved
// speed is not positive; a time is never fabricated from a zero speed.
func EstimateFloat(distanceMiles float64, speeds models.VesselSpeeds, code models.ConditionCode) *models.FloatEstimate {
	speed := speedFor(speeds, code)
	if speed <= 0 {
		return nil
	}

	return &models.FloatEstimate{
		Minutes:  int(math.Round(distanceMiles / speed * 60)),
		SpeedMph: speed,
	}
}

// FreshnessFor maps the current condition to the routing cache policy.
// High and dangerous water force the short window because the road
// network itself may have changed.
func FreshnessFor(code models.ConditionCode) models.CacheFreshness {
	if code == models.ConditionHigh || code == models.ConditionDangerous {
		return models.FreshnessShort
	}
	return models.FreshnessLong
}

// EstimateDrive fetches the take-out to put-in drive leg. A routing
// failure fails the whole plan; drive-back time is not optional.
func EstimateDrive(ctx context.Context, routing RoutingService, from, to models.Coordinate, code models.ConditionCode) (models.DriveEstimate, error) {
	est, err := routing.Route(ctx, from, to, FreshnessFor(code))
	if err != nil {
		return models.DriveEstimate{}, fmt.Errorf("%w: routing: %v", ErrUpstreamUnavailable, err)
	}
	return *est, nil
}
