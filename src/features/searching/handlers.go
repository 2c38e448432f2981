package searching

import (
	"errors"
	"log/slog"

	"github.com/contre95/voicemusic/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler handles video search requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new search handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type searchResponse struct {
	Videos   []music.SearchResult `json:"videos"`
	Source   music.ProviderFamily `json:"source"`
	Instance string               `json:"instance"`
}

// Search proxies a video search to the first provider able to answer it.
func (h *Handler) Search(c *fiber.Ctx) error {
	if c.Context().QueryArgs().Has("test") {
		return c.JSON(fiber.Map{"status": "Proxy is working", "server": "voicemusic dev server"})
	}

	query := c.Query("q")
	slog.Debug("Search handler called", "query", query)

	// The user context is not tied to the client connection, a disconnect does not abort the fallback chain.
	result, err := h.service.Search(c.UserContext(), query)
	if errors.Is(err, ErrInvalidQuery) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No query provided"})
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "All instances failed"})
	}

	return c.JSON(searchResponse{
		Videos:   result.Results,
		Source:   result.Provider.Family,
		Instance: result.Provider.BaseURL,
	})
}
