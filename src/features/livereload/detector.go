package livereload

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the pause between two scans.
const DefaultInterval = 500 * time.Millisecond

// Scan outcomes, also used as metric labels.
const (
	ScanUnchanged = "unchanged"
	ScanChanged   = "changed"
	ScanFailed    = "error"
)

// Phase is the state of the detector loop.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseScanning
)

func (p Phase) String() string {
	if p == PhaseScanning {
		return "scanning"
	}
	return "idle"
}

// Recorder receives scan telemetry.
type Recorder interface {
	ScanCompleted(outcome string, seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) ScanCompleted(string, float64) {}

// Options configures a Detector.
type Options struct {
	Dir        string
	Extensions []string
	Recursive  bool
	Interval   time.Duration
	Recorder   Recorder
}

// Detector periodically rescans the watched files and records in State the
// moment anything was added, removed or touched.
type Detector struct {
	state    *State
	opts     Options
	phase    atomic.Int32
	scanMu   sync.Mutex
	trigger  chan struct{}
	now      func() time.Time
	recorder Recorder
}

// NewDetector creates a detector writing to state.
func NewDetector(state *State, opts Options) *Detector {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Detector{
		state:    state,
		opts:     opts,
		trigger:  make(chan struct{}, 1),
		now:      time.Now,
		recorder: recorder,
	}
}

// Phase reports whether a scan is in progress.
func (d *Detector) Phase() Phase {
	return Phase(d.phase.Load())
}

// Trigger asks for a scan as soon as possible. It never blocks; triggers
// arriving while one is already pending are merged.
func (d *Detector) Trigger() {
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// Scan compares the watched files with the stored snapshot and replaces it
// when they differ. Scans never overlap.
func (d *Detector) Scan() (bool, error) {
	d.scanMu.Lock()
	defer d.scanMu.Unlock()

	d.phase.Store(int32(PhaseScanning))
	defer d.phase.Store(int32(PhaseIdle))

	start := time.Now()
	files, err := TakeSnapshot(d.opts.Dir, d.opts.Extensions, d.opts.Recursive)
	if err != nil {
		d.recorder.ScanCompleted(ScanFailed, time.Since(start).Seconds())
		return false, err
	}

	if sameFiles(d.state.Load().Files, files) {
		d.recorder.ScanCompleted(ScanUnchanged, time.Since(start).Seconds())
		return false, nil
	}

	changedAt := d.now()
	d.state.Replace(files, changedAt)
	d.recorder.ScanCompleted(ScanChanged, time.Since(start).Seconds())
	slog.Info("Watched files changed", "dir", d.opts.Dir, "files", len(files), "at", changedAt.UnixMilli())
	return true, nil
}

// Run scans on every tick and on every Trigger until ctx is cancelled.
// Scan errors are logged and the loop keeps going.
func (d *Detector) Run(ctx context.Context) error {
	slog.Info("Starting change detector", "dir", d.opts.Dir, "interval", d.opts.Interval, "recursive", d.opts.Recursive)
	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Change detector stopped")
			return nil
		case <-ticker.C:
			d.scanAndLog()
		case <-d.trigger:
			d.scanAndLog()
		}
	}
}

func (d *Detector) scanAndLog() {
	if _, err := d.Scan(); err != nil {
		slog.Warn("Change detector scan failed", "dir", d.opts.Dir, "error", err)
	}
}
