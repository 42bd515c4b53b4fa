package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// PlanHandler handles HTTP requests for float plans
type PlanHandler struct {
	service *service.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service *service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// ComputePlan handles POST /api/v1/plan
func (h *PlanHandler) ComputePlan(c *gin.Context) {
	var req plan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid plan request", err)
		return
	}

	p, err := h.service.Compute(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to compute plan")
		return
	}
	response.Success(c, p)
}

// SharePlan handles POST /api/v1/plan/share
func (h *PlanHandler) SharePlan(c *gin.Context) {
	var req plan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid plan request", err)
		return
	}

	result, err := h.service.Share(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to share plan")
		return
	}
	response.Success(c, result)
}

// GetSharedPlan handles GET /api/v1/plan/shared/:code
func (h *PlanHandler) GetSharedPlan(c *gin.Context) {
	sp, err := h.service.GetShared(c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to get shared plan")
		return
	}
	response.Success(c, sp)
}
