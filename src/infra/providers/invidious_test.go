package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contre95/voicemusic/src/features/searching"
)

func TestInvidiousProviderSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "video" {
			t.Errorf("unexpected type %q", got)
		}
		payload := []any{
			map[string]any{"type": "channel", "author": "Eagles"},
			map[string]any{
				"type":    "video",
				"videoId": "EqPtz5qN7HM",
				"title":   "Hotel California",
				"author":  "Eagles",
				"videoThumbnails": []any{
					map[string]any{"quality": "maxres", "url": "https://img/max.jpg"},
					map[string]any{"quality": "default", "url": "https://img/default.jpg"},
				},
			},
			map[string]any{"type": "video", "videoId": "noThumb", "title": "Take It Easy"},
			map[string]any{"type": "video", "videoId": "", "title": "Broken"},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	provider := NewInvidiousProvider(server.URL, 1, Options{})
	videos, err := provider.Search(context.Background(), "hotel california")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d: %+v", len(videos), videos)
	}
	if videos[0].VideoID != "EqPtz5qN7HM" || videos[0].ChannelTitle != "Eagles" || videos[0].Thumbnail != "https://img/max.jpg" {
		t.Errorf("unexpected first video %+v", videos[0])
	}
	if videos[1].VideoID != "noThumb" || videos[1].Thumbnail != "" {
		t.Errorf("expected empty thumbnail for second video, got %+v", videos[1])
	}
}

func TestInvidiousProviderObjectPayloadIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "search disabled"})
	}))
	defer server.Close()

	provider := NewInvidiousProvider(server.URL, 1, Options{})
	if _, err := provider.Search(context.Background(), "x"); !errors.Is(err, searching.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestInvidiousProviderEmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	provider := NewInvidiousProvider(server.URL, 1, Options{})
	videos, err := provider.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("expected no error for empty result, got %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("expected no videos, got %+v", videos)
	}
}
