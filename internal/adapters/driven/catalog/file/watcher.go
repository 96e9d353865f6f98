package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/epz-tools/udiscan/internal/logger"
)

// Watcher reports changes to one catalog file so the owning command
// can rebuild its index. The parent directory is watched rather than
// the file itself; editors and export jobs typically replace the file
// wholesale, which would otherwise drop the watch.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
}

// NewWatcher creates a watcher for the catalog at path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{fsw: fsw, path: path}, nil
}

// Run blocks, invoking onChange every time the catalog file is written
// or replaced, until the context is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			eventAbs, err := filepath.Abs(event.Name)
			if err != nil || eventAbs != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("watch: %s changed (%s)", w.path, event.Op)
				onChange()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
