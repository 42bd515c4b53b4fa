package service

import (
	"context"
	"fmt"
	"log"

	"github.com/driftwell/riverplan/internal/conditions"
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

// ConditionService resolves a river's current classified condition.
type ConditionService struct {
	rivers *repository.RiverRepository
	gauge  plan.GaugeService
}

// NewConditionService creates a new condition service
func NewConditionService(rivers *repository.RiverRepository, gauge plan.GaugeService) *ConditionService {
	return &ConditionService{rivers: rivers, gauge: gauge}
}

// CurrentConditions is a river's live reading plus its classification.
type CurrentConditions struct {
	Code      models.ConditionCode     `json:"code"`
	Reading   *models.ConditionReading `json:"reading,omitempty"`
	GaugeName string                   `json:"gauge_name,omitempty"`
}

// Current fetches and classifies the latest reading for a river. A
// gauge failure degrades to an unknown code instead of erroring.
func (s *ConditionService) Current(ctx context.Context, slug string) (*CurrentConditions, error) {
	river, err := s.rivers.GetRiverBySlug(slug)
	if err != nil {
		return nil, err
	}
	if river == nil {
		return nil, fmt.Errorf("%w: river %s", plan.ErrNotFound, slug)
	}

	var reading *models.ConditionReading
	if river.GaugeStationID != "" {
		reading, err = s.gauge.Latest(ctx, river.GaugeStationID)
		if err != nil {
			log.Printf("Gauge %s unavailable: %v", river.GaugeStationID, err)
			reading = nil
		}
	}

	var height *float64
	if reading != nil {
		height = reading.GaugeHeightFt
	}

	return &CurrentConditions{
		Code:      conditions.Classify(height, river.Thresholds()),
		Reading:   reading,
		GaugeName: river.GaugeName,
	}, nil
}

// WarmGauges fetches the latest reading for every gauged river so the
// cache stays warm; run from the background scheduler.
func (s *ConditionService) WarmGauges(ctx context.Context) {
	rivers, err := s.rivers.ListRivers()
	if err != nil {
		log.Printf("Gauge warm-up failed to list rivers: %v", err)
		return
	}

	for _, river := range rivers {
		if river.GaugeStationID == "" {
			continue
		}
		if _, err := s.gauge.Latest(ctx, river.GaugeStationID); err != nil {
			log.Printf("Gauge warm-up for %s (%s) failed: %v", river.Slug, river.GaugeStationID, err)
		}
	}
}
