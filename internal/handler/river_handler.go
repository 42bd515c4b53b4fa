package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// RiverHandler handles HTTP requests for rivers
type RiverHandler struct {
	service *service.RiverService
}

// NewRiverHandler creates a new river handler
func NewRiverHandler(service *service.RiverService) *RiverHandler {
	return &RiverHandler{service: service}
}

// ListRivers handles GET /api/v1/rivers
func (h *RiverHandler) ListRivers(c *gin.Context) {
	rivers, err := h.service.ListRivers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list rivers", err)
		return
	}
	response.Success(c, rivers)
}

// GetRiver handles GET /api/v1/rivers/:slug
func (h *RiverHandler) GetRiver(c *gin.Context) {
	river, err := h.service.GetRiverBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get river", err)
		return
	}
	if river == nil {
		response.Error(c, http.StatusNotFound, "River not found", nil)
		return
	}

	geometry, err := river.Polyline()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to decode river geometry", err)
		return
	}

	response.Success(c, gin.H{
		"river":    river,
		"geometry": geometry,
	})
}

// CreateRiver handles POST /api/v1/rivers (admin)
func (h *RiverHandler) CreateRiver(c *gin.Context) {
	var in service.RiverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid river payload", err)
		return
	}

	river, err := h.service.CreateRiver(in)
	if err != nil {
		respondError(c, err, "Failed to create river")
		return
	}
	response.Success(c, river)
}

// UpdateRiver handles PUT /api/v1/rivers/:id (admin)
func (h *RiverHandler) UpdateRiver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid river ID", err)
		return
	}

	var in service.RiverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid river payload", err)
		return
	}

	river, err := h.service.UpdateRiver(id, in)
	if err != nil {
		respondError(c, err, "Failed to update river")
		return
	}
	response.Success(c, river)
}
