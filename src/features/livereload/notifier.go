package livereload

import "time"

// Status is the answer to a reload poll. Time is the server clock in epoch milliseconds.
type Status struct {
	Changed bool  `json:"changed"`
	Time    int64 `json:"time"`
}

// Notifier answers reload polls from the shared State.
type Notifier struct {
	state *State
	now   func() time.Time
}

// NewNotifier creates a notifier reading state.
func NewNotifier(state *State) *Notifier {
	return &Notifier{state: state, now: time.Now}
}

// HasChangedSince reports whether the watched files changed after since,
// compared at millisecond resolution.
func (n *Notifier) HasChangedSince(since time.Time) Status {
	return Status{
		Changed: n.state.Load().LastChangeAt.UnixMilli() > since.UnixMilli(),
		Time:    n.now().UnixMilli(),
	}
}

// LastChangeAt returns the time of the last detected change.
func (n *Notifier) LastChangeAt() time.Time {
	return n.state.Load().LastChangeAt
}

// WatchedFiles returns the number of files in the current snapshot.
func (n *Notifier) WatchedFiles() int {
	return len(n.state.Load().Files)
}
