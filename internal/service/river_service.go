package service

import (
	"database/sql"
	"fmt"
	"log"
	"math"

	"github.com/driftwell/riverplan/internal/conditions"
	"github.com/driftwell/riverplan/internal/database"
	"github.com/driftwell/riverplan/internal/geometry"
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

// lengthTolerance is how far the stated river length may diverge from
// the polyline's true arc-length, as a fraction of the latter. Stated
// lengths come from printed river guides and never match the digitized
// centerline exactly.
const lengthTolerance = 0.25

// RiverService handles business logic for rivers
type RiverService struct {
	db     *sql.DB
	repo   *repository.RiverRepository
	points *repository.AccessPointRepository
}

// NewRiverService creates a new river service
func NewRiverService(db *sql.DB, repo *repository.RiverRepository, points *repository.AccessPointRepository) *RiverService {
	return &RiverService{db: db, repo: repo, points: points}
}

// ListRivers retrieves all rivers
func (s *RiverService) ListRivers() ([]models.River, error) {
	return s.repo.ListRivers()
}

// GetRiverBySlug retrieves a single river by slug
func (s *RiverService) GetRiverBySlug(slug string) (*models.River, error) {
	return s.repo.GetRiverBySlug(slug)
}

// GetRiverByID retrieves a single river by ID
func (s *RiverService) GetRiverByID(id int64) (*models.River, error) {
	return s.repo.GetRiverByID(id)
}

// RiverInput is the payload for creating or updating a river.
type RiverInput struct {
	Name           string              `json:"name" binding:"required"`
	Slug           string              `json:"slug" binding:"required"`
	LengthMiles    float64             `json:"length_miles"`
	Geometry       []models.Coordinate `json:"geometry" binding:"required"`
	HeadwaterFirst bool                `json:"headwater_first"`
	GaugeStationID string              `json:"gauge_station_id"`
	GaugeName      string              `json:"gauge_name"`

	Thresholds models.GaugeThresholds `json:"thresholds"`
}

// CreateRiver validates and stores a new river
func (s *RiverService) CreateRiver(in RiverInput) (*models.River, error) {
	river, err := s.buildRiver(in)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateRiver(river)
	if err != nil {
		return nil, err
	}
	return s.repo.GetRiverByID(id)
}

// UpdateRiver validates and stores changes to a river. Any geometry or
// length change re-snaps every access point on the river so stored
// river-miles stay consistent with the new centerline. The update and
// the re-snaps commit together; a failure mid-resnap rolls back the
// river too, so points never reference geometry that is not stored.
func (s *RiverService) UpdateRiver(id int64, in RiverInput) (*models.River, error) {
	existing, err := s.repo.GetRiverByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: river %d", plan.ErrNotFound, id)
	}

	river, err := s.buildRiver(in)
	if err != nil {
		return nil, err
	}
	river.ID = id

	geometryChanged := river.GeometryJSON != existing.GeometryJSON ||
		river.LengthMiles != existing.LengthMiles ||
		river.HeadwaterFirst != existing.HeadwaterFirst

	err = database.Transaction(s.db, func(tx *sql.Tx) error {
		if err := s.repo.WithTx(tx).UpdateRiver(river); err != nil {
			return err
		}
		if geometryChanged {
			return resnapAccessPoints(s.points.WithTx(tx), river)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetRiverByID(id)
}

// buildRiver validates the input and assembles the storable record.
func (s *RiverService) buildRiver(in RiverInput) (*models.River, error) {
	vertices := make([]geometry.Point, len(in.Geometry))
	for i, c := range in.Geometry {
		vertices[i] = geometry.Point{Lon: c.Lon, Lat: c.Lat}
	}

	poly, err := geometry.NewPolyline(vertices)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plan.ErrValidation, err)
	}

	length := in.LengthMiles
	trueLength := poly.TotalMiles()
	if length == 0 {
		length = math.Round(trueLength*10) / 10
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: river length %v is negative", plan.ErrValidation, length)
	}
	if trueLength > 0 && math.Abs(length-trueLength)/trueLength > lengthTolerance {
		return nil, fmt.Errorf("%w: stated length %.1f mi disagrees with geometry length %.1f mi",
			plan.ErrValidation, length, trueLength)
	}

	if !conditions.Monotonic(in.Thresholds) {
		return nil, fmt.Errorf("%w: gauge thresholds are not non-decreasing", plan.ErrValidation)
	}

	geomJSON, err := models.EncodePolyline(in.Geometry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plan.ErrValidation, err)
	}

	return &models.River{
		Name:           in.Name,
		Slug:           in.Slug,
		LengthMiles:    length,
		GeometryJSON:   geomJSON,
		HeadwaterFirst: in.HeadwaterFirst,
		GaugeStationID: in.GaugeStationID,
		GaugeName:      in.GaugeName,
		TooLowFt:       in.Thresholds.TooLowFt,
		LowFt:          in.Thresholds.LowFt,
		OptimalMinFt:   in.Thresholds.OptimalMinFt,
		OptimalMaxFt:   in.Thresholds.OptimalMaxFt,
		HighFt:         in.Thresholds.HighFt,
		DangerousFt:    in.Thresholds.DangerousFt,
	}, nil
}

// resnapAccessPoints recomputes the snapped position and river-mile of
// every point on the river through the one shared translator.
func resnapAccessPoints(repo *repository.AccessPointRepository, river *models.River) error {
	poly, err := riverPolyline(river)
	if err != nil {
		return err
	}

	points, err := repo.ListByRiver(river.ID, false)
	if err != nil {
		return err
	}

	for _, p := range points {
		snapped, mile, err := geometry.MileForPoint(poly,
			geometry.Point{Lon: p.Lon, Lat: p.Lat}, river.LengthMiles, river.HeadwaterFirst)
		if err != nil {
			return fmt.Errorf("failed to re-snap access point %d: %w", p.ID, err)
		}
		if err := repo.UpdateSnap(p.ID, snapped.Lat, snapped.Lon, mile); err != nil {
			return err
		}
	}

	log.Printf("Re-snapped %d access points on river %s", len(points), river.Slug)
	return nil
}

// riverPolyline decodes a stored river geometry into a projector-ready
// polyline.
func riverPolyline(river *models.River) (*geometry.Polyline, error) {
	coords, err := river.Polyline()
	if err != nil {
		return nil, fmt.Errorf("%w: river %d geometry: %v", plan.ErrValidation, river.ID, err)
	}

	vertices := make([]geometry.Point, len(coords))
	for i, c := range coords {
		vertices[i] = geometry.Point{Lon: c.Lon, Lat: c.Lat}
	}
	poly, err := geometry.NewPolyline(vertices)
	if err != nil {
		return nil, fmt.Errorf("%w: river %d geometry: %v", plan.ErrValidation, river.ID, err)
	}
	return poly, nil
}
