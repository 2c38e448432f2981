package hosting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contre95/voicemusic/src/features/config"
	"github.com/contre95/voicemusic/src/features/interpreting"
	"github.com/contre95/voicemusic/src/features/livereload"
	"github.com/contre95/voicemusic/src/features/metrics"
	"github.com/contre95/voicemusic/src/features/searching"
	"github.com/contre95/voicemusic/src/features/ui"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server. notifier and collector may be nil when
// livereload or metrics are disabled.
func NewServer(cfg *config.Manager, searchService *searching.Service, interpretService *interpreting.Service, notifier *livereload.Notifier, collector *metrics.Collector) *Server {
	app := fiber.New(fiber.Config{
		Views:                 ui.NewEngine(cfg.Get().Logger.Level == "debug"),
		ErrorHandler:          errorHandler,
		AppName:               "voicemusic",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	// Add middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(CORSMiddleware())
	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	searching.RegisterRoutes(app, searchService)
	interpreting.RegisterRoutes(app, interpretService)
	config.RegisterRoutes(app, cfg)

	var changes ui.ChangeReporter
	if notifier != nil {
		livereload.RegisterRoutes(app, livereload.NewHandler(notifier))
		changes = notifier
	}
	if cfg.Get().Metrics.Enabled && collector != nil {
		metrics.RegisterRoutes(app, collector)
	}
	ui.RegisterRoutes(app, ui.NewHandler(cfg, searchService, changes))

	// Static assets last so they never shadow an API route
	staticDir := cfg.Get().Server.StaticDir
	app.Static("/", staticDir, fiber.Static{
		Index: "index.html",
		Next:  privateStaticPath(staticDir, cfg.Path()),
	})

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", s.port)
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler answers every unhandled error with a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("Internal Server Error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
