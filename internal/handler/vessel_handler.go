package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// VesselHandler handles HTTP requests for vessel types
type VesselHandler struct {
	service *service.VesselService
}

// NewVesselHandler creates a new vessel handler
func NewVesselHandler(service *service.VesselService) *VesselHandler {
	return &VesselHandler{service: service}
}

// ListVessels handles GET /api/v1/vessels
func (h *VesselHandler) ListVessels(c *gin.Context) {
	vessels, err := h.service.ListVessels()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list vessel types", err)
		return
	}
	response.Success(c, vessels)
}
