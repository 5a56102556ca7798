package repository

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the memory store when the JSON data files change on
// disk, so hand edits show up without a restart in development.
type Watcher struct {
	fsw    *fsnotify.Watcher
	store  *MemoryStore
	logger *slog.Logger
	done   chan struct{}
}

// NewWatcher starts watching the store's data directory. Close stops it.
func NewWatcher(store *MemoryStore, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(store.dataDir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.run()
	logger.Info("Watching data directory for changes", "dir", store.dataDir)
	return w, nil
}

func (w *Watcher) run() {
	// Editors fire several events per save; coalesce them.
	var reloadAt time.Time
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if name != termsFile && name != categoriesFile {
				continue
			}
			// The store's own saves fire events too; the memory state
			// already reflects those bytes, so reloading would be churn.
			if w.store.UpToDate(name) {
				continue
			}
			reloadAt = time.Now().Add(200 * time.Millisecond)
			timer.Reset(200 * time.Millisecond)
		case <-timer.C:
			if time.Now().Before(reloadAt) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.logger.Error("Error reloading data files", "error", err)
			} else {
				w.logger.Info("Data files reloaded")
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
