package out

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reloads settings when the settings file changes on disk, so
// edits made outside a running TUI take effect without a restart. The data
// directory is watched rather than the file itself: editors that write via
// rename would otherwise detach the watch.
type FileWatcher struct {
	path     string
	onChange func(context.Context)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

func NewFileWatcher(path string, onChange func(context.Context), logger *slog.Logger) *FileWatcher {
	return &FileWatcher{path: path, onChange: onChange, logger: logger}
}

// Start begins watching until ctx is cancelled. Watch setup failures are
// logged and disable live reload; they never block startup.
func (w *FileWatcher) Start(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("settings watch unavailable", "error", err)
		return
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Warn("settings watch unavailable", "path", w.path, "error", err)
		_ = watcher.Close()
		return
	}
	w.watcher = watcher

	go w.run(ctx)
}

func (w *FileWatcher) run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.onChange(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watch error", "error", err)
		}
	}
}
