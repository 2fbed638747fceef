package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

// RequestContext copies the request ID assigned by the requestid middleware
// into the user context so log entries emitted by the services carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			c.SetUserContext(logging.ContextWithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// HTTPMetrics counts requests and observes latency per route. Labels use the
// registered route pattern rather than the raw path to keep cardinality bounded.
func HTTPMetrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		collector.RecordHTTPRequest(route, c.Method(), strconv.Itoa(c.Response().StatusCode()))
		collector.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// AccessLog writes one structured line per request. Handler errors are passed
// to the application error handler before logging so the recorded status
// matches the response the client actually received.
func AccessLog(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := logging.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		}
		if chainErr != nil {
			fields["error"] = chainErr.Error()
		}
		log.Info(c.UserContext(), "request completed", fields)

		return nil
	}
}
