package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/jasonfurnell/narrative-set-engine/internal/api"
	"github.com/jasonfurnell/narrative-set-engine/internal/config"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/metrics"
	"github.com/jasonfurnell/narrative-set-engine/internal/observability"
	"github.com/jasonfurnell/narrative-set-engine/internal/orchestrator"
	"github.com/jasonfurnell/narrative-set-engine/internal/phaseprofile"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "narrative-set-engine@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("Sentry not configured (SENTRY_DSN not set)")
	}

	observability.InitializeLangfuse(context.Background(), cfg)

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	capability, err := factory.BuildCapability(context.Background(), cfg.CreativeModel, cfg.MechanicalModel)
	if err != nil {
		log.Fatalf("Failed to build LLM capability: %v", err)
	}

	metricsClient, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
	}

	phaseProfiles := phaseprofile.NewRegistry(phaseprofile.DefaultProfiles()...)
	pipeline := orchestrator.New(capability, nil, phaseProfiles, metricsClient)

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, capability, pipeline, releaseVersion)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting narrative-set-engine on port %s", port)
	if err := router.Run(":" + port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}
