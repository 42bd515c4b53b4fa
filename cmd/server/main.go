package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/driftwell/riverplan/internal/api"
	"github.com/driftwell/riverplan/internal/config"
	"github.com/driftwell/riverplan/internal/database"
	"github.com/driftwell/riverplan/internal/gauge"
	"github.com/driftwell/riverplan/internal/handler"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
	"github.com/driftwell/riverplan/internal/routing"
	"github.com/driftwell/riverplan/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// Repositories
	riverRepo := repository.NewRiverRepository(db)
	pointRepo := repository.NewAccessPointRepository(db)
	hazardRepo := repository.NewHazardRepository(db)
	vesselRepo := repository.NewVesselRepository(db)
	sharedRepo := repository.NewSharedPlanRepository(db)

	// External collaborators
	gaugeClient := gauge.NewClient(cfg.GaugeBaseURL, cfg.GaugeCacheTTL)
	routingClient := routing.NewClient(cfg.RoutingBaseURL, cfg.RouteLongTTL, cfg.RouteShortTTL)

	// Plan core
	assembler := plan.NewAssembler(riverRepo, pointRepo, vesselRepo, hazardRepo, gaugeClient, routingClient)
	allocator := plan.NewAllocator(sharedRepo)

	// Services
	riverSvc := service.NewRiverService(db, riverRepo, pointRepo)
	pointSvc := service.NewAccessPointService(pointRepo, riverRepo)
	hazardSvc := service.NewHazardService(hazardRepo, riverRepo)
	vesselSvc := service.NewVesselService(vesselRepo)
	conditionSvc := service.NewConditionService(riverRepo, gaugeClient)
	planSvc := service.NewPlanService(assembler, allocator, sharedRepo)

	// Keep gauge readings warm so plan requests rarely wait on USGS.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 30m", func() {
		conditionSvc.WarmGauges(context.Background())
	}); err != nil {
		log.Fatal("Failed to schedule gauge refresh:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := api.SetupRouter(cfg, api.Handlers{
		Auth:         handler.NewAuthHandler(cfg.AdminPassword, cfg.JWTSecret),
		Rivers:       handler.NewRiverHandler(riverSvc),
		AccessPoints: handler.NewAccessPointHandler(pointSvc, riverSvc, cfg.JWTSecret),
		Hazards:      handler.NewHazardHandler(hazardSvc, riverSvc),
		Vessels:      handler.NewVesselHandler(vesselSvc),
		Conditions:   handler.NewConditionHandler(conditionSvc),
		Plans:        handler.NewPlanHandler(planSvc),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
