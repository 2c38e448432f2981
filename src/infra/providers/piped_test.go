package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contre95/voicemusic/src/features/searching"
	"github.com/contre95/voicemusic/src/music"
)

func TestPipedProviderSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "miles davis & co" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("filter"); got != "videos" {
			t.Errorf("unexpected filter %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "Mozilla/5.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		payload := map[string]any{
			"items": []any{
				map[string]any{"type": "stream", "url": "/watch?v=abc123", "title": "So What", "uploaderName": "Miles Davis", "thumbnail": "https://img/abc.jpg"},
				map[string]any{"type": "channel", "url": "/channel/UC1", "name": "Miles Davis - Topic"},
				map[string]any{"type": "stream", "url": "/watch?v=nope", "title": ""},
				map[string]any{"type": "stream", "url": "/watch?v=def456", "title": "Blue in Green"},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	provider := NewPipedProvider(server.URL+"/", 1, Options{})
	videos, err := provider.Search(context.Background(), "miles davis & co")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	want := []music.SearchResult{
		{VideoID: "abc123", Title: "So What", ChannelTitle: "Miles Davis", Thumbnail: "https://img/abc.jpg"},
		{VideoID: "def456", Title: "Blue in Green", ChannelTitle: "", Thumbnail: ""},
	}
	if len(videos) != len(want) {
		t.Fatalf("expected %d videos, got %d: %+v", len(want), len(videos), videos)
	}
	for i := range want {
		if videos[i] != want[i] {
			t.Errorf("video %d: expected %+v, got %+v", i, want[i], videos[i])
		}
	}
}

func TestPipedProviderOnlyConsidersFirstItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]any, 0, 15)
		for i := range 15 {
			items = append(items, map[string]any{"type": "stream", "url": fmt.Sprintf("/watch?v=id%02d", i), "title": fmt.Sprintf("Track %d", i)})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
	defer server.Close()

	provider := NewPipedProvider(server.URL, 1, Options{})
	videos, err := provider.Search(context.Background(), "jazz")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(videos) != 10 {
		t.Fatalf("expected 10 videos, got %d", len(videos))
	}
	for i, v := range videos {
		if v.VideoID != fmt.Sprintf("id%02d", i) {
			t.Errorf("expected provider order, position %d has %s", i, v.VideoID)
		}
	}
}

func TestPipedProviderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewPipedProvider(server.URL, 1, Options{})
	videos, err := provider.Search(context.Background(), "jazz")
	if !errors.Is(err, searching.ErrProviderUnreachable) {
		t.Fatalf("expected ErrProviderUnreachable, got %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("expected no videos, got %+v", videos)
	}
}

func TestPipedProviderMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer server.Close()

	provider := NewPipedProvider(server.URL, 1, Options{})
	if _, err := provider.Search(context.Background(), "jazz"); !errors.Is(err, searching.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestPipedProviderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	provider := NewPipedProvider(server.URL, 1, Options{Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := provider.Search(context.Background(), "jazz")
	if !errors.Is(err, searching.ErrProviderUnreachable) {
		t.Fatalf("expected ErrProviderUnreachable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://piped.video/watch?v=abc&t=10", "abc"},
		{"/shorts/xyz789", "xyz789"},
		{"bare123", "bare123"},
		{"", ""},
		{"/", ""},
		{"/watch?v=", ""},
		{"/watch", ""},
		{"https://piped.video/watch?t=10", ""},
	}
	for _, tt := range tests {
		if got := videoIDFromURL(tt.raw); got != tt.want {
			t.Errorf("videoIDFromURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
