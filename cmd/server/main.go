package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/internal/delivery/http"
	"github.com/skycast/skycast/internal/repository/postgres"
	"github.com/skycast/skycast/internal/service"
	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	path := *configPath
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New("skycast-gateway", logging.ParseLevel(cfg.Logging.Level))
	collector := metrics.NewCollector("skycast", prometheus.DefaultRegisterer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Lookup journal: degrade to a no-op when Postgres is not configured or
	// unreachable; weather requests never depend on it.
	var journal service.LookupJournal = postgres.NewNoopJournal()
	var pool *pgxpool.Pool
	if cfg.Journal.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.Journal.DatabaseURL)
		if err != nil {
			logger.Warn(ctx, "could not connect to database, lookup journal disabled", logging.Fields{"error": err.Error()})
			pool = nil
		} else if j, jerr := postgres.NewLookupJournal(ctx, pool); jerr != nil {
			logger.Warn(ctx, "could not prepare lookup journal, journal disabled", logging.Fields{"error": jerr.Error()})
			pool.Close()
			pool = nil
		} else {
			journal = j
			logger.Info(ctx, "connected to PostgreSQL lookup journal", nil)
		}
	}

	// Dependency Injection: Services
	geocodeSvc := service.NewGeocodeService(cfg.Upstream.GeocodingBaseURL, cfg.Upstream.Timeout(), logger, collector)
	forecastSvc := service.NewForecastService(cfg.Upstream.ForecastBaseURL, cfg.Upstream.Timeout(), logger, collector)
	gatewaySvc := service.NewGatewayService(geocodeSvc, forecastSvc, journal, logger, collector)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "SkyCast Gateway v1.0",
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		ErrorHandler: http.NewErrorHandler(logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(http.RequestContext())
	app.Use(http.HTTPMetrics(collector))
	app.Use(http.AccessLog(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, gatewaySvc)

	// Graceful shutdown
	go func() {
		logger.Info(context.Background(), "server starting", logging.Fields{"port": cfg.Server.Port})
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Fatal(context.Background(), "server error", nil, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(context.Background(), "shutting down server", nil)
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error(context.Background(), "server forced to shutdown", nil, err)
	}
	gatewaySvc.WaitBackground()
	if pool != nil {
		pool.Close()
	}
	logger.Info(context.Background(), "server exited gracefully", nil)
}
