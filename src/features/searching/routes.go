package searching

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the search routes
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Get("/search", handler.Search)
	// Path used by the PHP proxy the player ships with
	app.Get("/proxy.php", handler.Search)
}
