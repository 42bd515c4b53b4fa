package service

import (
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/repository"
)

// VesselService handles business logic for vessel types
type VesselService struct {
	repo *repository.VesselRepository
}

// NewVesselService creates a new vessel service
func NewVesselService(repo *repository.VesselRepository) *VesselService {
	return &VesselService{repo: repo}
}

// ListVessels retrieves all vessel types
func (s *VesselService) ListVessels() ([]models.VesselType, error) {
	return s.repo.ListVessels()
}
