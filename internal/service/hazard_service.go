package service

import (
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

// HazardService handles business logic for hazards
type HazardService struct {
	repo   *repository.HazardRepository
	rivers *repository.RiverRepository
}

// NewHazardService creates a new hazard service
func NewHazardService(repo *repository.HazardRepository, rivers *repository.RiverRepository) *HazardService {
	return &HazardService{repo: repo, rivers: rivers}
}

// HazardInput is the payload for creating or updating a hazard.
type HazardInput struct {
	RiverID     int64   `json:"river_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	RiverMile   float64 `json:"river_mile"`
	Severity    string  `json:"severity" binding:"required"`
	PortageReqd bool    `json:"portage_required"`
	Description string  `json:"description"`
}

// ListByRiver retrieves all hazards on a river
func (s *HazardService) ListByRiver(riverID int64) ([]models.Hazard, error) {
	return s.repo.ListByRiver(riverID)
}

// CreateHazard validates and stores a new hazard
func (s *HazardService) CreateHazard(in HazardInput) (*models.Hazard, error) {
	hazard, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateHazard(hazard)
	if err != nil {
		return nil, err
	}
	return s.repo.GetHazardByID(id)
}

// UpdateHazard validates and stores changes to a hazard
func (s *HazardService) UpdateHazard(id int64, in HazardInput) (*models.Hazard, error) {
	existing, err := s.repo.GetHazardByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: hazard %d", plan.ErrNotFound, id)
	}

	hazard, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	hazard.ID = id

	if err := s.repo.UpdateHazard(hazard); err != nil {
		return nil, err
	}
	return s.repo.GetHazardByID(id)
}

// validate checks the input against the owning river.
func (s *HazardService) validate(in HazardInput) (*models.Hazard, error) {
	if !models.ValidSeverity(in.Severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", plan.ErrValidation, in.Severity)
	}

	river, err := s.rivers.GetRiverByID(in.RiverID)
	if err != nil {
		return nil, err
	}
	if river == nil {
		return nil, fmt.Errorf("%w: river %d", plan.ErrNotFound, in.RiverID)
	}
	if in.RiverMile < 0 || in.RiverMile > river.LengthMiles {
		return nil, fmt.Errorf("%w: river-mile %.1f outside [0, %.1f]", plan.ErrValidation, in.RiverMile, river.LengthMiles)
	}

	return &models.Hazard{
		RiverID:     in.RiverID,
		Name:        in.Name,
		RiverMile:   in.RiverMile,
		Severity:    in.Severity,
		PortageReqd: in.PortageReqd,
		Description: in.Description,
	}, nil
}
