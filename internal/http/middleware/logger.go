package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger is a middleware that logs each HTTP request as one structured line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
//
// 5xx responses are logged at error level, 4xx at warn.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Errors returned by handlers are rendered by the app's ErrorHandler after
		// the middleware chain, so map them here to report the final status.
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		latency := float64(time.Since(start).Microseconds()) / 1000

		var e *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			e = log.Error()
		case status >= fiber.StatusBadRequest:
			e = log.Warn()
		default:
			e = log.Info()
		}
		e.Str("request_id", rid).
			Str("method", c.Method()).
			// Use only the path segment (no query string)
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", latency).
			Msg("request")

		return err
	}
}
