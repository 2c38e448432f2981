package ui

import (
	"log/slog"
	"time"

	"github.com/contre95/voicemusic/src/features/config"
	"github.com/contre95/voicemusic/src/music"
	"github.com/gofiber/fiber/v2"
)

// ProviderLister lists the configured search providers in try order.
type ProviderLister interface {
	Providers() []music.ProviderDescriptor
}

// ChangeReporter describes the state of the livereload watcher.
type ChangeReporter interface {
	LastChangeAt() time.Time
	WatchedFiles() int
}

// Handler is the handler for the UI feature.
type Handler struct {
	configManager *config.Manager
	providers     ProviderLister
	changes       ChangeReporter
	startedAt     time.Time
}

// NewHandler creates a new handler for the UI feature. changes may be nil when livereload is disabled.
func NewHandler(configManager *config.Manager, providers ProviderLister, changes ChangeReporter) *Handler {
	return &Handler{
		configManager: configManager,
		providers:     providers,
		changes:       changes,
		startedAt:     time.Now(),
	}
}

// RenderStatus renders the developer status page.
func (h *Handler) RenderStatus(c *fiber.Ctx) error {
	slog.Debug("RenderStatus handler called")
	cfg := h.configManager.Get()
	data := fiber.Map{
		"Title":             "voicemusic dev server",
		"StartedAt":         h.startedAt,
		"Port":              cfg.Server.Port,
		"StaticDir":         cfg.Server.StaticDir,
		"Providers":         h.providers.Providers(),
		"InterpretModel":    cfg.Interpret.Model,
		"InterpretReady":    cfg.Interpret.APIKey != "",
		"LiveReload":        cfg.LiveReload,
		"LiveReloadRunning": h.changes != nil,
		"MetricsEnabled":    cfg.Metrics.Enabled,
		"LastChangeAt":      time.Time{},
		"WatchedFiles":      0,
	}
	if h.changes != nil {
		data["LastChangeAt"] = h.changes.LastChangeAt()
		data["WatchedFiles"] = h.changes.WatchedFiles()
	}
	return c.Render("status", data)
}
