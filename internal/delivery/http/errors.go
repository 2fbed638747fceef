package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/pkg/logging"
)

// Client-facing error messages. These are fixed strings clients display or
// match on; do not reword them.
const (
	msgMissingCoordinates = "Missing latitude or longitude parameters"
	msgCityNotFound       = "City not found"
	msgFetchFailed        = "Failed to fetch weather data"
)

// NewErrorHandler maps errors returned by handlers onto the JSON error
// envelope. Anything that is not a client input error or a not-found is
// collapsed into a generic 500 carrying the upstream detail.
func NewErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		switch {
		case errors.Is(err, domain.ErrMissingCoordinates):
			return c.Status(fiber.StatusBadRequest).JSON(domain.ErrorResponse{
				Error: msgMissingCoordinates,
			})
		case errors.Is(err, domain.ErrCityNotFound):
			return c.Status(fiber.StatusNotFound).JSON(domain.ErrorResponse{
				Error: msgCityNotFound,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(domain.ErrorResponse{
				Error: fiberErr.Message,
			})
		}

		detail := err.Error()
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			detail = upstreamErr.Detail()
		}

		log.Error(c.UserContext(), "weather lookup failed", logging.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}, err)

		return c.Status(fiber.StatusInternalServerError).JSON(domain.ErrorResponse{
			Error:   msgFetchFailed,
			Details: detail,
		})
	}
}
