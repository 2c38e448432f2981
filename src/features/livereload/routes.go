package livereload

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the livereload routes.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/__livereload", handler.Poll)
	app.Get("/__livereload.js", handler.Script)
}
