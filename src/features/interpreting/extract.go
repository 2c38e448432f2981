package interpreting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/contre95/voicemusic/src/music"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedJSON means no candidate in the text parsed as JSON.
	ErrMalformedJSON = errors.New("no parseable JSON in completion")
	// ErrInvalidShape means the JSON was not a non-empty list of songs.
	ErrInvalidShape = errors.New("no songs found or invalid response")
)

var (
	fencedArrayPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")
	// Greedy: spans from the first '[' to the last ']' in the text.
	arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

	validate = validator.New()
)

type songPayload struct {
	Comment    *string `json:"comment" validate:"required"`
	SearchTerm *string `json:"searchTerm" validate:"required,min=1"`
}

type songList struct {
	Songs []songPayload `validate:"min=1,dive"`
}

// Extract finds the JSON song list inside an LLM completion. A fenced code block
// wins over a bare array, and the whole text is parsed only when neither exists.
func Extract(text string) ([]music.SongInterpretation, error) {
	text = strings.TrimSpace(text)

	var candidates []string
	if m := fencedArrayPattern.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := arrayPattern.FindString(text); m != "" {
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		candidates = append(candidates, text)
	}

	var lastErr error
	for _, candidate := range candidates {
		songs, err := parseSongs(candidate)
		if err == nil {
			return songs, nil
		}
		// Valid JSON with the wrong shape is the model's answer, not a parsing accident.
		if errors.Is(err, ErrInvalidShape) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func parseSongs(candidate string) ([]music.SongInterpretation, error) {
	var payload []songPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	if err := validate.Struct(songList{Songs: payload}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	songs := make([]music.SongInterpretation, 0, len(payload))
	for _, p := range payload {
		songs = append(songs, music.SongInterpretation{Comment: *p.Comment, SearchTerm: *p.SearchTerm})
	}
	return songs, nil
}
