package providers

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/contre95/voicemusic/src/music"
)

// Piped API response structures
type pipedSearchResponse struct {
	Items []pipedItem `json:"items"`
}

type pipedItem struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	UploaderName string `json:"uploaderName"`
	Thumbnail    string `json:"thumbnail"`
}

// PipedProvider implements searching.Provider for a Piped API instance
type PipedProvider struct {
	descriptor music.ProviderDescriptor
	fetcher    *fetcher
	maxResults int
}

// NewPipedProvider creates a new Piped provider
func NewPipedProvider(baseURL string, priority int, opts Options) *PipedProvider {
	opts = opts.withDefaults()
	return &PipedProvider{
		descriptor: music.ProviderDescriptor{Family: music.FamilyPiped, BaseURL: baseURL, Priority: priority},
		fetcher:    newFetcher(opts),
		maxResults: opts.MaxResults,
	}
}

func (p *PipedProvider) Search(ctx context.Context, query string) ([]music.SearchResult, error) {
	reqURL := searchURL(p.descriptor.BaseURL, "/search", url.Values{
		"q":      {query},
		"filter": {"videos"},
	})

	var searchResp pipedSearchResponse
	if err := p.fetcher.getJSON(ctx, reqURL, &searchResp); err != nil {
		return nil, err
	}

	items := searchResp.Items
	if len(items) > p.maxResults {
		items = items[:p.maxResults]
	}

	videos := make([]music.SearchResult, 0, len(items))
	for _, item := range items {
		if item.Type != "stream" {
			continue
		}
		video := music.SearchResult{
			VideoID:      videoIDFromURL(item.URL),
			Title:        item.Title,
			ChannelTitle: item.UploaderName,
			Thumbnail:    item.Thumbnail,
		}
		if video.Valid() {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (p *PipedProvider) Descriptor() music.ProviderDescriptor { return p.descriptor }

// videoIDFromURL reduces a Piped item URL such as "/watch?v=abc" to the bare video id.
func videoIDFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimPrefix(raw, "/watch?v=")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	trimmed := strings.Trim(u.Path, "/")
	// A watch URL without v carries no id
	if trimmed == "" || path.Base(trimmed) == "watch" {
		return ""
	}
	return path.Base(trimmed)
}
