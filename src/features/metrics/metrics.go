package metrics

import (
	"github.com/contre95/voicemusic/src/music"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "voicemusic"

// Collector records search, interpretation and livereload telemetry on its own registry.
// A nil *Collector is valid and records nothing, so callers can disable metrics without branching.
type Collector struct {
	registry *prometheus.Registry

	providerAttempts *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	searches         *prometheus.CounterVec

	interpretations        *prometheus.CounterVec
	interpretationDuration prometheus.Histogram

	scans        *prometheus.CounterVec
	scanDuration prometheus.Histogram
}

// NewCollector creates the collector and registers every metric, plus the Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "provider_attempts_total",
			Help:      "Search attempts per provider instance and outcome.",
		}, []string{"family", "instance", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "provider_attempt_duration_seconds",
			Help:      "Time spent waiting for a provider instance.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"family", "outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Searches by final outcome.",
		}, []string{"outcome"}),
		interpretations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interpret",
			Name:      "requests_total",
			Help:      "Song interpretations by outcome.",
		}, []string{"outcome"}),
		interpretationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "interpret",
			Name:      "duration_seconds",
			Help:      "Time spent interpreting a transcript, LLM call included.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30},
		}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "livereload",
			Name:      "scans_total",
			Help:      "Watched directory scans by outcome.",
		}, []string{"outcome"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "livereload",
			Name:      "scan_duration_seconds",
			Help:      "Time spent scanning the watched directory.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.providerAttempts,
		c.providerDuration,
		c.searches,
		c.interpretations,
		c.interpretationDuration,
		c.scans,
		c.scanDuration,
	)
	return c
}

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ProviderAttempt records a single provider call.
func (c *Collector) ProviderAttempt(desc music.ProviderDescriptor, outcome string, seconds float64) {
	if c == nil {
		return
	}
	c.providerAttempts.WithLabelValues(string(desc.Family), desc.BaseURL, outcome).Inc()
	c.providerDuration.WithLabelValues(string(desc.Family), outcome).Observe(seconds)
}

// SearchCompleted records the final outcome of a search.
func (c *Collector) SearchCompleted(outcome string) {
	if c == nil {
		return
	}
	c.searches.WithLabelValues(outcome).Inc()
}

// InterpretCompleted records the outcome of a transcript interpretation.
func (c *Collector) InterpretCompleted(outcome string, seconds float64) {
	if c == nil {
		return
	}
	c.interpretations.WithLabelValues(outcome).Inc()
	c.interpretationDuration.Observe(seconds)
}

// ScanCompleted records a livereload scan.
func (c *Collector) ScanCompleted(outcome string, seconds float64) {
	if c == nil {
		return
	}
	c.scans.WithLabelValues(outcome).Inc()
	c.scanDuration.Observe(seconds)
}
