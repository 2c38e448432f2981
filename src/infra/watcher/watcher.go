package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/contre95/voicemusic/src/features/livereload"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Extensions []string
	Recursive  bool
	Debounce   time.Duration
}

// Watcher monitors a directory and calls onChange once per burst of events
// on files with a watched extension.
type Watcher struct {
	watcher       *fsnotify.Watcher
	watchPath     string
	extensions    map[string]struct{}
	recursive     bool
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	lastEvent     FileEvent
	onChange      func(FileEvent)
}

// NewWatcher creates a new file system watcher
func NewWatcher(onChange func(FileEvent), opts Options) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:    watcher,
		extensions: livereload.ExtensionSet(opts.Extensions),
		recursive:  opts.Recursive,
		debounce:   opts.Debounce,
		onChange:   onChange,
	}, nil
}

// Run watches watchPath until ctx is cancelled, then releases the fsnotify handle.
func (w *Watcher) Run(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath, "recursive", w.recursive)

	if err := w.addTree(watchPath); err != nil {
		w.watcher.Close()
		return err
	}
	defer w.stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) stop() {
	slog.Info("Stopping file watcher")
	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()
	w.watcher.Close()
}

// addTree adds root, and every non hidden directory below it when recursive.
func (w *Watcher) addTree(root string) error {
	if !w.recursive {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// handleEvent processes a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	eventKind, ok := eventType(event.Op)
	if !ok {
		return
	}

	if w.recursive && eventKind == FileCreated && isDir(event.Name) {
		if err := w.addTree(event.Name); err != nil {
			slog.Warn("Could not watch new directory", "path", event.Name, "error", err)
		}
		return
	}

	if !w.isSupportedFile(event.Name) {
		return
	}

	slog.Debug("Detected change in watched file", "file", event.Name, "op", event.Op.String())

	// Start or reset the debounce timer
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.lastEvent = FileEvent{Path: event.Name, EventType: eventKind, Timestamp: time.Now()}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.emitDebounceEvent)
}

// isSupportedFile checks if the file has one of the watched extensions
func (w *Watcher) isSupportedFile(filePath string) bool {
	_, supported := w.extensions[strings.ToLower(filepath.Ext(filePath))]
	return supported
}

// emitDebounceEvent reports the last event of a burst after the debounce period
func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	event := w.lastEvent
	w.debounceTimer = nil
	w.debounceMutex.Unlock()

	slog.Debug("Emitting file event after debounce", "path", event.Path, "type", event.EventType)
	w.onChange(event)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
