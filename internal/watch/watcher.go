// Package watch triggers a rebuild when table files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher calls onChange once per burst of edits to any tracked file.
type Watcher struct {
	files    map[string]struct{}
	debounce time.Duration
	onChange func(ctx context.Context)
	log      *zap.Logger
}

// New creates a watcher over files. Directories are watched rather than the
// files themselves so editors that replace files by rename are still seen.
func New(files []string, debounce time.Duration, onChange func(ctx context.Context), log *zap.Logger) *Watcher {
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = struct{}{}
	}
	return &Watcher{files: set, debounce: debounce, onChange: onChange, log: log}
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating table watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.tracked(event) {
				continue
			}
			w.log.Debug("table file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("table watcher error: %w", err)
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) tracked(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}
