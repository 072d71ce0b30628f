package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/api/http"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/bloom"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate/providers"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/config"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/metrics"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/scheduler"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client bounding every outbound provider call.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory region cache with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Climate source: NASA POWER first, synthetic fallback always.
	power := providers.NewPowerProvider(httpClient, cfg.NASAAPIKey, cfg.PowerAPIURL)
	source := climate.NewSource(power)

	// Core service orchestrating the source and the scoring heuristics.
	service := bloom.NewService(source, memStore)

	// Scheduler that pre-warms the global bloom map cache.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "bloomwatch-backend",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response; nothing escapes as a bare 500 page.
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestMetrics)

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "bloomwatch-backend",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Frontend assets, when present.
	if st, err := os.Stat(cfg.StaticDir); err == nil && st.IsDir() {
		app.Static("/", cfg.StaticDir)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("bloomwatch listening on :%s", cfg.Port)

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

// requestMetrics records per-endpoint request counts by response status.
// Handler errors have not reached the error handler yet at this point, so the
// status is taken from the error when one is returned. The endpoint label is
// the registered route pattern, not the raw URL path, keeping the label set
// bounded under arbitrary unmatched requests.
func requestMetrics(c *fiber.Ctx) error {
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
	}

	metrics.APIRequestsTotal.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()
	return err
}
