package searching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/voicemusic/src/music"
)

// DefaultMaxResults caps the number of videos returned for a single search.
const DefaultMaxResults = 10

// Attempt outcomes, also used as metric labels.
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeUnreachable = "unreachable"
	OutcomeMalformed   = "malformed"
	OutcomeInvalid     = "invalid_query"
	OutcomeExhausted   = "exhausted"
)

// FailureReason tells why no provider could satisfy a search.
type FailureReason string

const (
	ReasonAllEmpty       FailureReason = "all_empty"
	ReasonAllUnreachable FailureReason = "all_unreachable"
)

var (
	ErrInvalidQuery          = errors.New("no query provided")
	ErrAllProvidersExhausted = errors.New("all instances failed")
)

// ExhaustedError is returned when every configured provider came back empty.
type ExhaustedError struct {
	Attempted []music.ProviderDescriptor
	Reason    FailureReason
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all instances failed (%s, %d attempted)", e.Reason, len(e.Attempted))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllProvidersExhausted
}

// Result is a successful search.
type Result struct {
	Results  []music.SearchResult
	Provider music.ProviderDescriptor
}

// Service tries the configured providers in order until one of them finds something.
type Service struct {
	providers  []Provider
	maxResults int
	recorder   Recorder
}

// Option customizes the service.
type Option func(*Service)

// WithMaxResults overrides the number of results kept from the winning provider.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates a new search service. Providers are tried in the given order,
// so callers must list a whole family before the next one.
func NewService(providers []Provider, opts ...Option) *Service {
	s := &Service{
		providers:  providers,
		maxResults: DefaultMaxResults,
		recorder:   noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the descriptors of the configured providers in try order.
func (s *Service) Providers() []music.ProviderDescriptor {
	descs := make([]music.ProviderDescriptor, 0, len(s.providers))
	for _, p := range s.providers {
		descs = append(descs, p.Descriptor())
	}
	return descs
}

// Search returns the results of the first provider that finds at least one video.
// Later providers are never queried once one succeeds.
func (s *Service) Search(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		s.recorder.SearchCompleted(OutcomeInvalid)
		return nil, ErrInvalidQuery
	}

	attempted := make([]music.ProviderDescriptor, 0, len(s.providers))
	failures := 0
	for _, provider := range s.providers {
		desc := provider.Descriptor()
		attempted = append(attempted, desc)

		start := time.Now()
		results, err := provider.Search(ctx, query)
		elapsed := time.Since(start)
		if err != nil {
			failures++
			outcome := outcomeFor(err)
			s.recorder.ProviderAttempt(desc, outcome, elapsed.Seconds())
			slog.Warn("Search provider failed", "family", desc.Family, "instance", desc.BaseURL, "outcome", outcome, "duration", elapsed.String(), "error", err)
			continue
		}

		results = s.normalize(results)
		if len(results) == 0 {
			s.recorder.ProviderAttempt(desc, OutcomeEmpty, elapsed.Seconds())
			slog.Debug("Search provider returned no videos", "family", desc.Family, "instance", desc.BaseURL, "duration", elapsed.String())
			continue
		}

		s.recorder.ProviderAttempt(desc, OutcomeSuccess, elapsed.Seconds())
		s.recorder.SearchCompleted(OutcomeSuccess)
		slog.Info("Search served", "family", desc.Family, "instance", desc.BaseURL, "results", len(results), "attempts", len(attempted))
		return &Result{Results: results, Provider: desc}, nil
	}

	reason := ReasonAllEmpty
	if len(attempted) > 0 && failures == len(attempted) {
		reason = ReasonAllUnreachable
	}
	s.recorder.SearchCompleted(OutcomeExhausted)
	slog.Error("All search providers failed", "query", query, "reason", reason, "attempts", len(attempted))
	return nil, &ExhaustedError{Attempted: attempted, Reason: reason}
}

// normalize drops unplayable records and caps the slice, keeping provider order
func (s *Service) normalize(results []music.SearchResult) []music.SearchResult {
	kept := make([]music.SearchResult, 0, min(len(results), s.maxResults))
	for _, r := range results {
		if len(kept) == s.maxResults {
			break
		}
		if r.Valid() {
			kept = append(kept, r)
		}
	}
	return kept
}

func outcomeFor(err error) string {
	if errors.Is(err, ErrMalformedPayload) {
		return OutcomeMalformed
	}
	return OutcomeUnreachable
}
