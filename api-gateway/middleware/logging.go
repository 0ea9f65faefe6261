package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/troyan365/marketplace/pkg/logger"
)

// StructuredLoggingMiddleware provides structured logging for requests
func StructuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get("X-Request-Id")

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()

		logEvent := logger.Info(c.UserContext())
		if statusCode >= 500 {
			logEvent = logger.Error(c.UserContext())
		} else if statusCode >= 400 {
			logEvent = logger.Warn(c.UserContext())
		}

		logEvent.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Int("status", statusCode).
			Dur("duration", duration).
			Int("response_size", len(c.Response().Body())).
			Str("request_id", requestID).
			Msg("Gateway request completed")

		if err != nil {
			logger.Error(c.UserContext()).
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", requestID).
				Msg("Gateway request error")
		}

		return err
	}
}
