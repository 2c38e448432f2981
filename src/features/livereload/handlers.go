package livereload

import (
	_ "embed"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed client.js
var clientScript []byte

// Handler serves reload polls and the polling script.
type Handler struct {
	notifier *Notifier
}

// NewHandler creates a new livereload handler.
func NewHandler(notifier *Notifier) *Handler {
	return &Handler{notifier: notifier}
}

// Poll answers GET /__livereload?since=<epoch-millis>. A missing since means 0.
func (h *Handler) Poll(c *fiber.Ctx) error {
	since, err := parseSince(c.Query("since"))
	if err != nil {
		slog.Debug("Invalid livereload since", "since", c.Query("since"), "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid since timestamp"})
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(h.notifier.HasChangedSince(since))
}

// Script serves the browser side of the reload loop.
func (h *Handler) Script(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(clientScript)
}

func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.UnixMilli(0), nil
	}
	// Browsers sometimes send fractional milliseconds
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, err
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if math.IsNaN(value) || value >= math.MaxInt64 || value <= math.MinInt64 {
		return time.Time{}, strconv.ErrRange
	}
	return time.UnixMilli(int64(value)), nil
}
