package interpreting

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the interpretation routes
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Post("/interpret", handler.Interpret)
	// Legacy path still called by older player builds
	app.Post("/api/claude", handler.Interpret)
}
