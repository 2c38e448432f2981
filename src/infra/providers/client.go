package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contre95/voicemusic/src/features/searching"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0"
	// Search pages are small, anything larger is not a search page.
	maxPayloadBytes = 8 << 20
)

// Options holds the settings shared by every provider instance.
type Options struct {
	Timeout    time.Duration
	UserAgent  string // Some instances reject requests with Go's default agent
	MaxResults int
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if strings.TrimSpace(o.UserAgent) == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.MaxResults <= 0 {
		o.MaxResults = searching.DefaultMaxResults
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	return o
}

// fetcher issues the single bounded GET a provider performs per search.
type fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func newFetcher(opts Options) *fetcher {
	return &fetcher{
		httpClient: opts.HTTPClient,
		timeout:    opts.Timeout,
		userAgent:  opts.UserAgent,
	}
}

// getJSON decodes the JSON document at rawURL into target.
func (f *fetcher) getJSON(ctx context.Context, rawURL string, target any) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", searching.ErrProviderUnreachable, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to make request: %w", searching.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: request failed with status %d", searching.ErrProviderUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %w", searching.ErrProviderUnreachable, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", searching.ErrMalformedPayload, err)
	}
	return nil
}

func searchURL(baseURL, path string, params url.Values) string {
	return strings.TrimRight(baseURL, "/") + path + "?" + params.Encode()
}
