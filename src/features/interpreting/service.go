package interpreting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/voicemusic/src/music"
)

// Outcomes, also used as metric labels.
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty_transcript"
	OutcomeUpstream  = "upstream_error"
	OutcomeMalformed = "malformed"
	OutcomeShape     = "invalid_shape"
)

var (
	ErrEmptyTranscript = errors.New("no transcript provided")
	ErrUpstream        = errors.New("llm request failed")
)

// Completer turns a prompt into free-form text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Recorder receives interpretation telemetry.
type Recorder interface {
	InterpretCompleted(outcome string, seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) InterpretCompleted(string, float64) {}

// Service turns spoken music requests into song suggestions.
type Service struct {
	completer Completer
	recorder  Recorder
}

// NewService creates a new interpretation service
func NewService(completer Completer, recorder Recorder) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{completer: completer, recorder: recorder}
}

// Interpret asks the LLM which songs match transcript.
func (s *Service) Interpret(ctx context.Context, transcript string) ([]music.SongInterpretation, error) {
	start := time.Now()
	songs, err := s.interpret(ctx, transcript)
	s.recorder.InterpretCompleted(outcomeFor(err), time.Since(start).Seconds())
	return songs, err
}

func (s *Service) interpret(ctx context.Context, transcript string) ([]music.SongInterpretation, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, ErrEmptyTranscript
	}

	text, err := s.completer.Complete(ctx, BuildPrompt(transcript))
	if err != nil {
		slog.Error("LLM completion failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	songs, err := Extract(text)
	if err != nil {
		preview := text
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		slog.Warn("Could not extract songs from completion", "error", err, "completionPreview", preview)
		return nil, err
	}

	slog.Info("Music request interpreted", "transcript", transcript, "songs", len(songs))
	return songs, nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyTranscript):
		return OutcomeEmpty
	case errors.Is(err, ErrUpstream):
		return OutcomeUpstream
	case errors.Is(err, ErrInvalidShape):
		return OutcomeShape
	default:
		return OutcomeMalformed
	}
}
