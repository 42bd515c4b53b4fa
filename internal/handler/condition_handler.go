package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/service"
	"github.com/driftwell/riverplan/pkg/response"
)

// ConditionHandler handles HTTP requests for river conditions
type ConditionHandler struct {
	service *service.ConditionService
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(service *service.ConditionService) *ConditionHandler {
	return &ConditionHandler{service: service}
}

// GetCurrent handles GET /api/v1/rivers/:slug/conditions
func (h *ConditionHandler) GetCurrent(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to get conditions")
		return
	}
	response.Success(c, current)
}
