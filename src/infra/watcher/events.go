package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileCreated  FileEventType = "created"
	FileRemoved  FileEventType = "removed"
	FileModified FileEventType = "modified"
)

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	EventType FileEventType
	Timestamp time.Time
}

// eventType maps an fsnotify operation to a FileEventType. Chmod only events are ignored.
func eventType(op fsnotify.Op) (FileEventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return FileCreated, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return FileRemoved, true
	case op.Has(fsnotify.Write):
		return FileModified, true
	}
	return "", false
}
