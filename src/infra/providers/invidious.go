package providers

import (
	"context"
	"net/url"

	"github.com/contre95/voicemusic/src/music"
)

// Invidious API response structures
type invidiousSearchResponse []invidiousItem

type invidiousItem struct {
	Type            string               `json:"type"`
	VideoID         string               `json:"videoId"`
	Title           string               `json:"title"`
	Author          string               `json:"author"`
	VideoThumbnails []invidiousThumbnail `json:"videoThumbnails"`
}

type invidiousThumbnail struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// InvidiousProvider implements searching.Provider for an Invidious instance
type InvidiousProvider struct {
	descriptor music.ProviderDescriptor
	fetcher    *fetcher
	maxResults int
}

// NewInvidiousProvider creates a new Invidious provider
func NewInvidiousProvider(baseURL string, priority int, opts Options) *InvidiousProvider {
	opts = opts.withDefaults()
	return &InvidiousProvider{
		descriptor: music.ProviderDescriptor{Family: music.FamilyInvidious, BaseURL: baseURL, Priority: priority},
		fetcher:    newFetcher(opts),
		maxResults: opts.MaxResults,
	}
}

func (p *InvidiousProvider) Search(ctx context.Context, query string) ([]music.SearchResult, error) {
	reqURL := searchURL(p.descriptor.BaseURL, "/api/v1/search", url.Values{
		"q":    {query},
		"type": {"video"},
	})

	var searchResp invidiousSearchResponse
	if err := p.fetcher.getJSON(ctx, reqURL, &searchResp); err != nil {
		return nil, err
	}

	items := searchResp
	if len(items) > p.maxResults {
		items = items[:p.maxResults]
	}

	videos := make([]music.SearchResult, 0, len(items))
	for _, item := range items {
		if item.Type != "video" {
			continue
		}
		video := music.SearchResult{
			VideoID:      item.VideoID,
			Title:        item.Title,
			ChannelTitle: item.Author,
		}
		if len(item.VideoThumbnails) > 0 {
			video.Thumbnail = item.VideoThumbnails[0].URL
		}
		if video.Valid() {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (p *InvidiousProvider) Descriptor() music.ProviderDescriptor { return p.descriptor }
