// pattern: Imperative Shell

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"framedock/internal/layout"
)

// settleDelay batches the burst of events one external save produces.
const settleDelay = 50 * time.Millisecond

// ReloadFunc receives the set loaded after an external change, with any
// error Load reported.
type ReloadFunc func(set layout.Set, err error)

// Watcher reloads the layouts file when another process changes it.
type Watcher struct {
	store    *Store
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching the store's file; events are handled once Run
// is called. The parent directory is watched so atomic renames and a file
// that does not exist yet are both seen.
func NewWatcher(s *Store, onReload ReloadFunc) (*Watcher, error) {
	dir := filepath.Dir(s.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create layouts directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{store: s, onReload: onReload, watcher: w}, nil
}

// Run handles file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	target := filepath.Clean(w.store.Path())
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				settle.Reset(settleDelay)
			}

		case <-settle.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.store.logger.Warn("layouts watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.store.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			w.store.logger.Warn("read changed layouts", "error", err)
		}
		return
	}
	if w.store.IsOwnWrite(data) {
		return
	}

	set, err := Decode(data)
	if !Recoverable(err) {
		// Half-written or broken file; keep the current layouts
		w.store.logger.Warn("ignoring unreadable layouts file", "error", err)
		return
	}
	w.store.logger.Info("layouts file changed on disk", "layouts", len(set.Layouts))
	w.onReload(set, err)
}
