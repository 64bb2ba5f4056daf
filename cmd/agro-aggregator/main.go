package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
	"github.com/ItUser-Softwares/AgriGrow/internal/agro/sources"
	httpapi "github.com/ItUser-Softwares/AgriGrow/internal/api/http"
	"github.com/ItUser-Softwares/AgriGrow/internal/config"
	"github.com/ItUser-Softwares/AgriGrow/internal/observability"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	metrics := observability.NewMetrics()

	// Core service fanning out to the four public sources.
	service := agro.NewAggregateService(
		sources.NewClimateArchive(httpClient),
		sources.NewSoilArchive(httpClient),
		sources.NewNASAPower(httpClient),
		sources.NewSoilGrids(httpClient),
		clockwork.NewRealClock(),
		metrics,
	)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "agro-aggregator",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// The response deadline must outlive the slowest upstream fetch.
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterAggregateRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
