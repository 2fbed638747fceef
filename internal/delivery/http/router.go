package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skycast/skycast/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, gatewaySvc *service.GatewayService) {
	handler := NewHandler(gatewaySvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Weather endpoints
	app.Get("/weather", handler.GetWeatherByCoordinates)
	app.Get("/weather/city/:city", handler.GetWeatherByCity)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
