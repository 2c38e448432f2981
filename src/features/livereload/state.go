package livereload

import (
	"sync/atomic"
	"time"
)

// Snapshot is the modification time of every watched file together with the
// moment the set last differed from the previous scan. A Snapshot is never
// mutated after it has been stored.
type Snapshot struct {
	Files        map[string]time.Time
	LastChangeAt time.Time
}

// State holds the current Snapshot. The detector is its only writer, readers never block.
type State struct {
	current atomic.Pointer[Snapshot]
}

// NewState stores the baseline snapshot taken at startup.
func NewState(files map[string]time.Time, startedAt time.Time) *State {
	s := &State{}
	s.Replace(files, startedAt)
	return s
}

// Load returns the current snapshot.
func (s *State) Load() *Snapshot {
	return s.current.Load()
}

// Replace swaps in a new snapshot, files and timestamp as one unit.
func (s *State) Replace(files map[string]time.Time, changedAt time.Time) {
	if files == nil {
		files = map[string]time.Time{}
	}
	s.current.Store(&Snapshot{Files: files, LastChangeAt: changedAt})
}
