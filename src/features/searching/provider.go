package searching

import (
	"context"
	"errors"

	"github.com/contre95/voicemusic/src/music"
)

var (
	// ErrProviderUnreachable marks transport level failures: DNS, TLS, timeouts and non-2xx answers.
	ErrProviderUnreachable = errors.New("provider unreachable")
	// ErrMalformedPayload marks a provider answer that could not be decoded.
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// Provider searches videos on a single external instance.
type Provider interface {
	// Search returns the playable videos the instance found for query, in the instance's order.
	// A returned error only explains why the slice is empty.
	Search(ctx context.Context, query string) ([]music.SearchResult, error)

	// Descriptor returns the immutable description of the instance
	Descriptor() music.ProviderDescriptor
}

// Recorder receives search telemetry.
type Recorder interface {
	ProviderAttempt(desc music.ProviderDescriptor, outcome string, seconds float64)
	SearchCompleted(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ProviderAttempt(music.ProviderDescriptor, string, float64) {}
func (noopRecorder) SearchCompleted(string)                                    {}
