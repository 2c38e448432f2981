package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/voicemusic/src/features/config"
)

// SetupLogger builds the slog logger backed by charmbracelet/log.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	return newLogger(os.Stderr, cfg.Get().Logger)
}

func newLogger(w io.Writer, cfg config.Logger) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch cfg.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	if !cfg.Enabled {
		w = io.Discard
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "VoiceMusic",
		Formatter:       formatter,
		Level:           level,
	})

	logger := slog.New(handler)
	logger.Info("Logger initialized", "time", time.Now().Format(time.RFC3339))
	return logger
}
