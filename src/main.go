package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contre95/voicemusic/src/features/config"
	"github.com/contre95/voicemusic/src/features/hosting"
	"github.com/contre95/voicemusic/src/features/interpreting"
	"github.com/contre95/voicemusic/src/features/livereload"
	"github.com/contre95/voicemusic/src/features/logging"
	"github.com/contre95/voicemusic/src/features/metrics"
	"github.com/contre95/voicemusic/src/features/searching"
	"github.com/contre95/voicemusic/src/infra/llm"
	"github.com/contre95/voicemusic/src/infra/providers"
	"github.com/contre95/voicemusic/src/infra/watcher"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	configPath := os.Getenv("VOICEMUSIC_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	// Create the searching service
	searchProviders, err := providers.FromConfig(cfg.Search)
	if err != nil {
		log.Fatalf("failed to build search providers: %v", err)
	}
	searchService := searching.NewService(searchProviders,
		searching.WithMaxResults(cfg.Search.MaxResults),
		searching.WithRecorder(collector),
	)
	slog.Info("Search providers configured", "count", len(searchProviders))

	// Create the interpreting service
	llmClient := llm.NewClient(llm.Config{
		APIKey:    cfg.Interpret.APIKey,
		BaseURL:   cfg.Interpret.BaseURL,
		Model:     cfg.Interpret.Model,
		MaxTokens: cfg.Interpret.MaxTokens,
		Timeout:   cfg.Interpret.Timeout,
	})
	if cfg.Interpret.APIKey == "" {
		slog.Warn("No LLM API key configured, /interpret will answer with an error")
	}
	interpretService := interpreting.NewService(llmClient, collector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, ctx := errgroup.WithContext(ctx)

	// Create the livereload detector and notifier
	var notifier *livereload.Notifier
	if cfg.LiveReload.Enabled {
		baseline, err := livereload.TakeSnapshot(cfg.LiveReload.WatchDir, cfg.LiveReload.Extensions, cfg.LiveReload.Recursive)
		if err != nil {
			log.Fatalf("failed to scan %s: %v", cfg.LiveReload.WatchDir, err)
		}
		state := livereload.NewState(baseline, time.Now())
		notifier = livereload.NewNotifier(state)
		detector := livereload.NewDetector(state, livereload.Options{
			Dir:        cfg.LiveReload.WatchDir,
			Extensions: cfg.LiveReload.Extensions,
			Recursive:  cfg.LiveReload.Recursive,
			Interval:   cfg.LiveReload.Interval,
			Recorder:   collector,
		})
		group.Go(func() error {
			return detector.Run(ctx)
		})

		if cfg.LiveReload.FSNotify {
			fileWatcher, err := watcher.NewWatcher(func(watcher.FileEvent) { detector.Trigger() }, watcher.Options{
				Extensions: cfg.LiveReload.Extensions,
				Recursive:  cfg.LiveReload.Recursive,
			})
			if err != nil {
				// Polling still catches every change, only later
				slog.Warn("File watcher unavailable, relying on polling", "error", err)
			} else {
				group.Go(func() error {
					if err := fileWatcher.Run(ctx, cfg.LiveReload.WatchDir); err != nil {
						slog.Warn("File watcher stopped, relying on polling", "error", err)
					}
					return nil
				})
			}
		}
		slog.Info("Live reload enabled", "dir", cfg.LiveReload.WatchDir, "files", len(baseline))
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, searchService, interpretService, notifier, collector)
	group.Go(func() error {
		return server.Start()
	})
	group.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Server gracefully shut down.")
}
