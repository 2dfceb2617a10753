package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jasonfurnell/narrative-set-engine/internal/api/handlers"
	"github.com/jasonfurnell/narrative-set-engine/internal/api/middleware"
	"github.com/jasonfurnell/narrative-set-engine/internal/config"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/orchestrator"
)

// SetupRouter wires the illustrative HTTP harness around the pipeline. This
// is not the core's public contract (spec.md §6 models the core as a Go
// API consumed in-process); it exists to demonstrate the pipeline behind an
// HTTP boundary the way the teacher fronts its agents.
func SetupRouter(cfg *config.Config, capability llm.Capability, pipeline *orchestrator.Pipeline, version string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoverWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.RequestTracking())

	healthHandler := handlers.NewHealthHandler(capability)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	setBuilderHandler := handlers.NewSetBuilderHandler(pipeline)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.NoAuth())
	{
		v1.POST("/sets", setBuilderHandler.BuildSet)
	}

	return router
}
