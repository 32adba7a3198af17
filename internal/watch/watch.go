// Package watch reloads a tag file when the external indexer rewrites it.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the directory holding a tag file. Indexers usually write a
// temp file and rename it over the old one, so watching the file itself would
// lose track of it after the first regeneration.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func() error
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// New creates a watcher that calls reload once the tag file at path has been
// quiet for debounce.
func New(path string, debounce time.Duration, reload func() error, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		reload:   reload,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Run processes events until ctx is done. Reload failures are logged and the
// watcher keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("tag file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if err := w.reload(); err != nil {
				w.logger.Warn("tag file reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("tag file reloaded", "path", w.path)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
