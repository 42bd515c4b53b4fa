package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/riverplan/internal/config"
	"github.com/driftwell/riverplan/internal/handler"
	"github.com/driftwell/riverplan/internal/middleware"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Rivers       *handler.RiverHandler
	AccessPoints *handler.AccessPointHandler
	Hazards      *handler.HazardHandler
	Vessels      *handler.VesselHandler
	Conditions   *handler.ConditionHandler
	Plans        *handler.PlanHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "riverplan API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/admin/login", h.Auth.Login)

		api.GET("/rivers", h.Rivers.ListRivers)
		api.GET("/rivers/:slug", h.Rivers.GetRiver)
		api.GET("/rivers/:slug/access-points", h.AccessPoints.ListByRiver)
		api.GET("/rivers/:slug/hazards", h.Hazards.ListByRiver)
		api.GET("/rivers/:slug/conditions", h.Conditions.GetCurrent)

		api.GET("/vessels", h.Vessels.ListVessels)

		// Plan endpoints fan out to routing/gauge upstreams, so they
		// carry the rate limiter.
		limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		plans := api.Group("/plan", middleware.RateLimit(limiter))
		{
			plans.POST("", h.Plans.ComputePlan)
			plans.POST("/share", h.Plans.SharePlan)
			plans.GET("/shared/:code", h.Plans.GetSharedPlan)
		}

		admin := api.Group("", middleware.AdminRequired(cfg.JWTSecret))
		{
			admin.POST("/rivers", h.Rivers.CreateRiver)
			admin.PUT("/rivers/:id", h.Rivers.UpdateRiver)
			admin.POST("/access-points", h.AccessPoints.CreateAccessPoint)
			admin.PUT("/access-points/:id", h.AccessPoints.UpdateAccessPoint)
			admin.POST("/access-points/preview", h.AccessPoints.Preview)
			admin.POST("/hazards", h.Hazards.CreateHazard)
			admin.PUT("/hazards/:id", h.Hazards.UpdateHazard)
		}
	}

	return r
}
