package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/lockgraph/pkg/logging"
)

// ChangeType identifies which reconciliation input changed
type ChangeType int

const (
	ChangeLock ChangeType = iota
	ChangeManifest
)

// ChangeEvent represents a batch of detected input changes
type ChangeEvent struct {
	Types     []ChangeType
	Timestamp time.Time
}

// Has reports whether the batch contains the given change type.
func (e ChangeEvent) Has(t ChangeType) bool {
	for _, ct := range e.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// FileWatcher watches the lock file and manifest for changes. The parent
// directories are watched rather than the files themselves: the lock is
// replaced by rename on save, which would silently detach a direct watch.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	lockPath string
	manifest string
	events   chan ChangeEvent
}

// NewFileWatcher creates a watcher over the two reconciliation inputs
func NewFileWatcher(lockPath, manifestPath string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  w,
		lockPath: filepath.Clean(lockPath),
		manifest: filepath.Clean(manifestPath),
		events:   make(chan ChangeEvent, 16),
	}, nil
}

// Start begins watching for changes until the context is cancelled
func (fw *FileWatcher) Start(ctx context.Context) error {
	dirs := map[string]bool{
		filepath.Dir(fw.lockPath): true,
		filepath.Dir(fw.manifest): true,
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	logging.Info("watching reconciliation inputs", "lock", fw.lockPath, "manifest", fw.manifest)
	go fw.processEvents(ctx)
	return nil
}

// Events returns the channel of detected changes
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer func() {
		_ = fw.watcher.Close()
		close(fw.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			change, relevant := fw.classify(event)
			if !relevant {
				continue
			}
			logging.Debug("input changed", "path", event.Name, "op", event.Op.String())
			select {
			case fw.events <- ChangeEvent{Types: []ChangeType{change}, Timestamp: time.Now()}:
			default:
				// Consumer is behind; the debouncer will coalesce anyway
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

// classify maps an fsnotify event onto one of the watched inputs.
func (fw *FileWatcher) classify(event fsnotify.Event) (ChangeType, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return 0, false
	}

	switch filepath.Clean(event.Name) {
	case fw.lockPath:
		return ChangeLock, true
	case fw.manifest:
		return ChangeManifest, true
	}
	return 0, false
}
