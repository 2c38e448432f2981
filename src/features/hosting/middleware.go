package hosting

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var quietPaths = []string{"/__livereload", "/metrics", "/health"}

// CORSMiddleware allows any origin on every response, including errors,
// and answers preflight requests directly.
func CORSMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

// LogAllRequestsMiddleware logs all requests with their request id
func LogAllRequestsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)

		if status >= 400 {
			slog.Error("HTTP request",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
				"error", err,
			)
		} else if !isQuiet(c.Path()) {
			slog.Debug("HTTP request",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
			)
		}
		return err
	}
}

// isQuiet reports whether path is polled often enough that logging it would drown the rest.
func isQuiet(path string) bool {
	for _, prefix := range quietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
