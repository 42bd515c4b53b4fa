package plan

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/driftwell/riverplan/internal/conditions"
	"github.com/driftwell/riverplan/internal/models"
)

// Warning strings attached to assembled plans
const (
	WarningDangerous  = "Dangerous water levels. Do not float."
	WarningHigh       = "High water. Experienced paddlers only."
	WarningZeroLength = "Put-in and take-out are the same location."
	WarningPortage    = "This stretch includes hazards that require portaging."
)

// RiverStore resolves rivers for plan assembly.
type RiverStore interface {
	GetRiverByID(id int64) (*models.River, error)
}

// AccessPointStore resolves access points for plan assembly.
type AccessPointStore interface {
	GetAccessPointByID(id int64) (*models.AccessPoint, error)
}

// VesselStore resolves vessel types for plan assembly.
type VesselStore interface {
	GetVesselByID(id int64) (*models.VesselType, error)
}

// HazardStore selects hazards inside a river-mile range, inclusive on
// both ends.
type HazardStore interface {
	HazardsInRange(riverID int64, minMile, maxMile float64) ([]models.Hazard, error)
}

// Request identifies the inputs of one float plan.
type Request struct {
	RiverID   int64 `json:"river_id" binding:"required"`
	PutInID   int64 `json:"put_in_id" binding:"required"`
	TakeOutID int64 `json:"take_out_id" binding:"required"`
	VesselID  int64 `json:"vessel_id" binding:"required"`
}

// Assembler builds complete float plans from stored geometry, live
// condition data, and the routing collaborator.
type Assembler struct {
	rivers  RiverStore
	points  AccessPointStore
	vessels VesselStore
	hazards HazardStore
	gauge   GaugeService
	routing RoutingService
}

// NewAssembler creates a plan assembler.
func NewAssembler(rivers RiverStore, points AccessPointStore, vessels VesselStore, hazards HazardStore, gauge GaugeService, routing RoutingService) *Assembler {
	return &Assembler{
		rivers:  rivers,
		points:  points,
		vessels: vessels,
		hazards: hazards,
		gauge:   gauge,
		routing: routing,
	}
}

// Assemble resolves the request, classifies current conditions, and
// computes both trip legs. A gauge failure degrades the condition to
// unknown; a routing failure fails the plan.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*models.FloatPlan, error) {
	river, err := a.rivers.GetRiverByID(req.RiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve river: %w", err)
	}
	if river == nil {
		return nil, fmt.Errorf("%w: river %d", ErrNotFound, req.RiverID)
	}

	putIn, err := a.resolvePoint(req.PutInID, river.ID)
	if err != nil {
		return nil, err
	}
	takeOut, err := a.resolvePoint(req.TakeOutID, river.ID)
	if err != nil {
		return nil, err
	}

	vessel, err := a.vessels.GetVesselByID(req.VesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vessel: %w", err)
	}
	if vessel == nil {
		return nil, fmt.Errorf("%w: vessel %d", ErrNotFound, req.VesselID)
	}

	// Callers may hand the points in either order.
	distance := math.Abs(putIn.RiverMile - takeOut.RiverMile)
	distance = math.Round(distance*10) / 10

	// Condition degrades to unknown when the gauge is unreachable; the
	// plan still gets built.
	reading := a.currentReading(ctx, river)
	var height *float64
	if reading != nil {
		height = reading.GaugeHeightFt
	}
	code := conditions.Classify(height, river.Thresholds())

	floatEst := EstimateFloat(distance, vessel.Speeds(), code)

	drive, err := EstimateDrive(ctx, a.routing, takeOut.Snapped(), putIn.Snapped(), code)
	if err != nil {
		return nil, err
	}

	lo := math.Min(putIn.RiverMile, takeOut.RiverMile)
	hi := math.Max(putIn.RiverMile, takeOut.RiverMile)
	hazards, err := a.hazards.HazardsInRange(river.ID, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to query hazards: %w", err)
	}

	snapshot := models.ConditionSnapshot{
		Code:      code,
		GaugeName: river.GaugeName,
	}
	if reading != nil {
		snapshot.GaugeHeightFt = reading.GaugeHeightFt
		snapshot.DischargeCFS = reading.DischargeCFS
		observed := reading.ObservedAt
		snapshot.ObservedAt = &observed
	}

	return &models.FloatPlan{
		River:         river,
		PutIn:         putIn,
		TakeOut:       takeOut,
		Vessel:        vessel,
		DistanceMiles: distance,
		Float:         floatEst,
		Drive:         drive,
		Conditions:    snapshot,
		Hazards:       hazards,
		Warnings:      buildWarnings(code, distance, hazards),
	}, nil
}

// resolvePoint fetches an access point and rejects it when it belongs
// to a different river than requested.
func (a *Assembler) resolvePoint(id, riverID int64) (*models.AccessPoint, error) {
	point, err := a.points.GetAccessPointByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access point: %w", err)
	}
	if point == nil || point.RiverID != riverID {
		return nil, fmt.Errorf("%w: access point %d on river %d", ErrNotFound, id, riverID)
	}
	return point, nil
}

// currentReading fetches the river's primary gauge, returning nil when
// the river has no gauge or the collaborator fails.
func (a *Assembler) currentReading(ctx context.Context, river *models.River) *models.ConditionReading {
	if river.GaugeStationID == "" {
		return nil
	}
	reading, err := a.gauge.Latest(ctx, river.GaugeStationID)
	if err != nil {
		log.Printf("Gauge %s unavailable, classifying as unknown: %v", river.GaugeStationID, err)
		return nil
	}
	return reading
}

func buildWarnings(code models.ConditionCode, distance float64, hazards []models.Hazard) []string {
	var warnings []string

	switch code {
	case models.ConditionDangerous:
		warnings = append(warnings, WarningDangerous)
	case models.ConditionHigh:
		warnings = append(warnings, WarningHigh)
	}

	if distance == 0 {
		warnings = append(warnings, WarningZeroLength)
	}

	for _, h := range hazards {
		if h.PortageReqd {
			warnings = append(warnings, WarningPortage)
			break
		}
	}

	return warnings
}
