package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	gatewaySvc *service.GatewayService
}

// NewHandler creates a new handler
func NewHandler(gatewaySvc *service.GatewayService) *Handler {
	return &Handler{
		gatewaySvc: gatewaySvc,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(domain.HealthResponse{
		Status:  "OK",
		Message: "SkyCast gateway is running",
	})
}

// GetWeatherByCoordinates returns current conditions for a coordinate pair.
// Parameter values are not parsed here: presence is checked by the service
// and everything else is the provider's problem.
func (h *Handler) GetWeatherByCoordinates(c *fiber.Ctx) error {
	ctx := c.UserContext()

	report, err := h.gatewaySvc.ByCoordinates(ctx, c.Query("latitude"), c.Query("longitude"))
	if err != nil {
		return err
	}

	return c.JSON(domain.WeatherResponse{
		Success:        true,
		Location:       report.Location,
		CurrentWeather: report.Current,
	})
}

// GetWeatherByCity resolves a city name and returns its current conditions
func (h *Handler) GetWeatherByCity(c *fiber.Ctx) error {
	ctx := c.UserContext()

	city := c.Params("city")
	if decoded, err := url.PathUnescape(city); err == nil {
		city = decoded
	}

	report, err := h.gatewaySvc.ByCity(ctx, city)
	if err != nil {
		return err
	}

	return c.JSON(domain.WeatherResponse{
		Success:        true,
		Location:       report.Location,
		CurrentWeather: report.Current,
	})
}
