package service

import (
	"fmt"

	"github.com/driftwell/riverplan/internal/geometry"
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

// AccessPointService handles business logic for access points. The
// snapped coordinate and river-mile are always derived here, through
// the shared translator, so every write path agrees on a point's
// position.
type AccessPointService struct {
	repo   *repository.AccessPointRepository
	rivers *repository.RiverRepository
}

// NewAccessPointService creates a new access point service
func NewAccessPointService(repo *repository.AccessPointRepository, rivers *repository.RiverRepository) *AccessPointService {
	return &AccessPointService{repo: repo, rivers: rivers}
}

// AccessPointInput is the payload for creating or updating an access
// point. Snapped position and river-mile are not accepted from clients.
type AccessPointInput struct {
	RiverID     int64   `json:"river_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Lat         float64 `json:"lat" binding:"required"`
	Lon         float64 `json:"lon" binding:"required"`
	Approved    bool    `json:"approved"`
	Description string  `json:"description"`
}

// ListByRiver retrieves a river's access points
func (s *AccessPointService) ListByRiver(riverID int64, approvedOnly bool) ([]models.AccessPoint, error) {
	return s.repo.ListByRiver(riverID, approvedOnly)
}

// CreateAccessPoint snaps the raw coordinate onto the river and stores
// the point with its derived river-mile.
func (s *AccessPointService) CreateAccessPoint(in AccessPointInput) (*models.AccessPoint, error) {
	point, err := s.derive(in)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateAccessPoint(point)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAccessPointByID(id)
}

// UpdateAccessPoint recomputes the derived position from the submitted
// raw coordinate and stores the changes. The point cannot move to a
// different river.
func (s *AccessPointService) UpdateAccessPoint(id int64, in AccessPointInput) (*models.AccessPoint, error) {
	existing, err := s.repo.GetAccessPointByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: access point %d", plan.ErrNotFound, id)
	}
	if in.RiverID != existing.RiverID {
		return nil, fmt.Errorf("%w: access point %d belongs to river %d", plan.ErrValidation, id, existing.RiverID)
	}

	point, err := s.derive(in)
	if err != nil {
		return nil, err
	}
	point.ID = id

	if err := s.repo.UpdateAccessPoint(point); err != nil {
		return nil, err
	}
	return s.repo.GetAccessPointByID(id)
}

// SnapPreview is the result of an ad-hoc "where would this land"
// request: the snapped position and river-mile for a candidate
// coordinate, computed without persisting anything.
type SnapPreview struct {
	Snapped   models.Coordinate `json:"snapped"`
	RiverMile float64           `json:"river_mile"`
}

// Preview computes the snap result for a candidate coordinate. It runs
// the same projector and translator as the write paths.
func (s *AccessPointService) Preview(riverID int64, coord models.Coordinate) (*SnapPreview, error) {
	river, poly, err := s.riverGeometry(riverID)
	if err != nil {
		return nil, err
	}

	snapped, mile, err := geometry.MileForPoint(poly,
		geometry.Point{Lon: coord.Lon, Lat: coord.Lat}, river.LengthMiles, river.HeadwaterFirst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plan.ErrValidation, err)
	}

	return &SnapPreview{
		Snapped:   models.Coordinate{Lon: snapped.Lon, Lat: snapped.Lat},
		RiverMile: mile,
	}, nil
}

// derive resolves the river and computes the snapped position and
// river-mile for the input coordinate.
func (s *AccessPointService) derive(in AccessPointInput) (*models.AccessPoint, error) {
	river, poly, err := s.riverGeometry(in.RiverID)
	if err != nil {
		return nil, err
	}

	snapped, mile, err := geometry.MileForPoint(poly,
		geometry.Point{Lon: in.Lon, Lat: in.Lat}, river.LengthMiles, river.HeadwaterFirst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plan.ErrValidation, err)
	}

	return &models.AccessPoint{
		RiverID:     in.RiverID,
		Name:        in.Name,
		Lat:         in.Lat,
		Lon:         in.Lon,
		SnappedLat:  snapped.Lat,
		SnappedLon:  snapped.Lon,
		RiverMile:   mile,
		Approved:    in.Approved,
		Description: in.Description,
	}, nil
}

func (s *AccessPointService) riverGeometry(riverID int64) (*models.River, *geometry.Polyline, error) {
	river, err := s.rivers.GetRiverByID(riverID)
	if err != nil {
		return nil, nil, err
	}
	if river == nil {
		return nil, nil, fmt.Errorf("%w: river %d", plan.ErrNotFound, riverID)
	}

	poly, err := riverPolyline(river)
	if err != nil {
		return nil, nil, err
	}
	return river, poly, nil
}
