package interpreting

import (
	"errors"
	"log/slog"

	"github.com/contre95/voicemusic/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler handles music interpretation requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new interpretation handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type interpretRequest struct {
	Transcript string `json:"transcript"`
}

type interpretResponse struct {
	Songs []music.SongInterpretation `json:"songs"`
}

// Interpret forwards a transcript to the LLM and answers with the suggested songs.
func (h *Handler) Interpret(c *fiber.Ctx) error {
	var req interpretRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Debug("Invalid interpret request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	songs, err := h.service.Interpret(c.UserContext(), req.Transcript)
	switch {
	case err == nil:
		return c.JSON(interpretResponse{Songs: songs})
	case errors.Is(err, ErrEmptyTranscript):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No transcript provided"})
	case errors.Is(err, ErrInvalidShape):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No songs found or invalid response"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
