package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/pkg/response"
)

// respondError maps the core error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, plan.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, plan.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, plan.ErrUpstreamUnavailable):
		response.Error(c, http.StatusBadGateway, "A required upstream service is unavailable", err)
	case errors.Is(err, plan.ErrAllocationExhausted):
		// Retryable by the caller; nothing is wrong with the request.
		response.Error(c, http.StatusServiceUnavailable, "Could not allocate a share code, please retry", err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
