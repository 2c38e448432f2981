package ui

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contre95/voicemusic/src/features/config"
	"github.com/contre95/voicemusic/src/music"
	"github.com/gofiber/fiber/v2"
)

type staticProviders []music.ProviderDescriptor

func (p staticProviders) Providers() []music.ProviderDescriptor { return p }

type fixedChanges struct {
	at    time.Time
	files int
}

func (f fixedChanges) LastChangeAt() time.Time { return f.at }
func (f fixedChanges) WatchedFiles() int       { return f.files }

func renderStatus(t *testing.T, changes ChangeReporter) string {
	t.Helper()
	cfg := config.NewManager(&config.Config{
		Server:     config.Server{Port: 8000, StaticDir: "."},
		Interpret:  config.Interpret{Model: "claude-3-5-haiku-20241022"},
		LiveReload: config.LiveReload{WatchDir: ".", Interval: 500 * time.Millisecond},
	})
	providers := staticProviders{
		{Family: music.FamilyPiped, BaseURL: "https://pipedapi.kavin.rocks", Priority: 1},
		{Family: music.FamilyInvidious, BaseURL: "https://inv.nadeko.net", Priority: 1},
	}

	app := fiber.New(fiber.Config{Views: NewEngine(false)})
	RegisterRoutes(app, NewHandler(cfg, providers, changes))

	resp, err := app.Test(httptest.NewRequest("GET", "/__dev", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestRenderStatus_WithLiveReload(t *testing.T) {
	body := renderStatus(t, fixedChanges{at: time.UnixMilli(1_700_000_000_000), files: 4})

	for _, want := range []string{
		"https://pipedapi.kavin.rocks",
		"https://inv.nadeko.net",
		"Watching 4 files",
		"1700000000000",
		"No API key configured",
		`<script src="/__livereload.js"></script>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestRenderStatus_WithoutLiveReload(t *testing.T) {
	body := renderStatus(t, nil)
	if strings.Contains(body, "/__livereload.js") {
		t.Error("livereload script should not be injected when disabled")
	}
	if !strings.Contains(body, "Disabled.") {
		t.Error("expected livereload to be reported as disabled")
	}
}
