package api

import (
	"github.com/Conceptual-Machines/musictheory-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/musictheory-api/internal/api/middleware"
	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/metrics"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes. cw and prom may be nil.
func SetupRouter(cfg *config.Config, version string, cw *metrics.Client, prom *metrics.Prometheus) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw, prom))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// MIDI files are already compact binary
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/export", "/metrics"})))

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoints
	metricsHandler := handlers.NewMetricsHandler(version, cfg)
	router.GET("/api/metrics", metricsHandler.GetMetrics)
	if prom != nil {
		router.GET("/metrics", gin.WrapH(prom.Handler()))
	}

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware(cfg))
	{
		theoryHandler := handlers.NewTheoryHandler()
		v1.GET("/notes", theoryHandler.ListNotes)
		v1.GET("/notes/:name", theoryHandler.GetNote)
		v1.POST("/notes/shift", theoryHandler.ShiftNote)

		v1.GET("/scales/:root", theoryHandler.GetScale)
		v1.POST("/scales", theoryHandler.BuildScale)

		v1.GET("/chords/:symbol", theoryHandler.GetChord)
		v1.POST("/chords", theoryHandler.BuildChord)

		v1.GET("/intervals", theoryHandler.GetInterval)

		v1.GET("/midi/encode", theoryHandler.EncodeMIDI)
		v1.GET("/midi/decode/:pitch", theoryHandler.DecodeMIDI)

		v1.GET("/keys/:root", theoryHandler.GetKey)

		noteMathHandler := handlers.NewNoteMathHandler(cfg, cw, prom)
		v1.POST("/notemath/evaluate", noteMathHandler.Evaluate)

		drillHandler := handlers.NewDrillHandler(cfg)
		v1.GET("/drills/notemath", drillHandler.NoteMath)
		v1.GET("/drills/steps", drillHandler.Steps)
		v1.GET("/drills/keys", drillHandler.Keys)

		exportHandler := handlers.NewExportHandler(cfg)
		v1.GET("/export/scale/:root", exportHandler.ExportScale)
		v1.GET("/export/chord/:symbol", exportHandler.ExportChord)
	}

	return router
}

func authMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsGatewayMode():
		return apimiddleware.GatewayAuth()
	case cfg.IsJWTMode():
		return apimiddleware.JWTAuth(cfg.JWTSecret)
	default:
		return apimiddleware.NoAuth()
	}
}
