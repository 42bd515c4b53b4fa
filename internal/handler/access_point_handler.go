package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/middleware"
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// AccessPointHandler handles HTTP requests for access points
type AccessPointHandler struct {
	service   *service.AccessPointService
	rivers    *service.RiverService
	jwtSecret string
}

// NewAccessPointHandler creates a new access point handler
func NewAccessPointHandler(service *service.AccessPointService, rivers *service.RiverService, jwtSecret string) *AccessPointHandler {
	return &AccessPointHandler{service: service, rivers: rivers, jwtSecret: jwtSecret}
}

// ListByRiver handles GET /api/v1/rivers/:slug/access-points. The route
// is public and returns approved points; ?include_unapproved=true is
// only honored with a valid admin token on the request.
func (h *AccessPointHandler) ListByRiver(c *gin.Context) {
	river, err := h.rivers.GetRiverBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get river", err)
		return
	}
	if river == nil {
		response.Error(c, http.StatusNotFound, "River not found", nil)
		return
	}

	approvedOnly := true
	if c.Query("include_unapproved") == "true" {
		if !middleware.BearerTokenValid(c, h.jwtSecret) {
			response.Error(c, http.StatusUnauthorized, "Admin token required to list unapproved points", nil)
			return
		}
		approvedOnly = false
	}

	points, err := h.service.ListByRiver(river.ID, approvedOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list access points", err)
		return
	}
	response.Success(c, points)
}

// CreateAccessPoint handles POST /api/v1/access-points (admin)
func (h *AccessPointHandler) CreateAccessPoint(c *gin.Context) {
	var in service.AccessPointInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid access point payload", err)
		return
	}

	point, err := h.service.CreateAccessPoint(in)
	if err != nil {
		respondError(c, err, "Failed to create access point")
		return
	}
	response.Success(c, point)
}

// UpdateAccessPoint handles PUT /api/v1/access-points/:id (admin)
func (h *AccessPointHandler) UpdateAccessPoint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid access point ID", err)
		return
	}

	var in service.AccessPointInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid access point payload", err)
		return
	}

	point, err := h.service.UpdateAccessPoint(id, in)
	if err != nil {
		respondError(c, err, "Failed to update access point")
		return
	}
	response.Success(c, point)
}

// previewRequest is an ad-hoc snap query.
type previewRequest struct {
	RiverID int64   `json:"river_id" binding:"required"`
	Lat     float64 `json:"lat" binding:"required"`
	Lon     float64 `json:"lon" binding:"required"`
}

// Preview handles POST /api/v1/access-points/preview: where would this
// candidate coordinate land on the river, without persisting it.
func (h *AccessPointHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid preview payload", err)
		return
	}

	preview, err := h.service.Preview(req.RiverID, models.Coordinate{Lon: req.Lon, Lat: req.Lat})
	if err != nil {
		respondError(c, err, "Failed to compute preview")
		return
	}
	response.Success(c, preview)
}
