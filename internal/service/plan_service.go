package service

import (
	"context"
	"fmt"

	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

// PlanService fronts the plan core: assembly for previews and
// assembly-plus-allocation for shares.
type PlanService struct {
	assembler *plan.Assembler
	allocator *plan.Allocator
	shared    *repository.SharedPlanRepository
}

// NewPlanService creates a new plan service
func NewPlanService(assembler *plan.Assembler, allocator *plan.Allocator, shared *repository.SharedPlanRepository) *PlanService {
	return &PlanService{assembler: assembler, allocator: allocator, shared: shared}
}

// Compute assembles a float plan without persisting anything.
func (s *PlanService) Compute(ctx context.Context, req plan.Request) (*models.FloatPlan, error) {
	return s.assembler.Assemble(ctx, req)
}

// ShareResult is a freshly allocated share code with its frozen plan.
type ShareResult struct {
	Code string             `json:"code"`
	Plan *models.SharedPlan `json:"plan"`
}

// Share assembles the plan at this moment and freezes it behind a new
// short code. The snapshot is taken now; later gauge changes never
// alter it.
func (s *PlanService) Share(ctx context.Context, req plan.Request) (*ShareResult, error) {
	p, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	sp, err := s.allocator.Allocate(p)
	if err != nil {
		return nil, err
	}

	return &ShareResult{Code: sp.Code, Plan: sp}, nil
}

// GetShared retrieves a previously shared plan by code.
func (s *PlanService) GetShared(code string) (*models.SharedPlan, error) {
	if len(code) != plan.CodeLength {
		return nil, fmt.Errorf("%w: share code must be %d characters", plan.ErrValidation, plan.CodeLength)
	}

	sp, err := s.shared.GetSharedPlanByCode(code)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, fmt.Errorf("%w: shared plan %s", plan.ErrNotFound, code)
	}
	return sp, nil
}
