package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// HazardHandler handles HTTP requests for hazards
type HazardHandler struct {
	service *service.HazardService
	rivers  *service.RiverService
}

// NewHazardHandler creates a new hazard handler
func NewHazardHandler(service *service.HazardService, rivers *service.RiverService) *HazardHandler {
	return &HazardHandler{service: service, rivers: rivers}
}

// ListByRiver handles GET /api/v1/rivers/:slug/hazards
func (h *HazardHandler) ListByRiver(c *gin.Context) {
	river, err := h.rivers.GetRiverBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get river", err)
		return
	}
	if river == nil {
		response.Error(c, http.StatusNotFound, "River not found", nil)
		return
	}

	hazards, err := h.service.ListByRiver(river.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list hazards", err)
		return
	}
	response.Success(c, hazards)
}

// CreateHazard handles POST /api/v1/hazards (admin)
func (h *HazardHandler) CreateHazard(c *gin.Context) {
	var in service.HazardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid hazard payload", err)
		return
	}

	hazard, err := h.service.CreateHazard(in)
	if err != nil {
		respondError(c, err, "Failed to create hazard")
		return
	}
	response.Success(c, hazard)
}

// UpdateHazard handles PUT /api/v1/hazards/:id (admin)
func (h *HazardHandler) UpdateHazard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid hazard ID", err)
		return
	}

	var in service.HazardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid hazard payload", err)
		return
	}

	hazard, err := h.service.UpdateHazard(id, in)
	if err != nil {
		respondError(c, err, "Failed to update hazard")
		return
	}
	response.Success(c, hazard)
}
