package file

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// Watcher reloads a ConfigStore when its file changes on disk and
// notifies a callback with the reloaded store. Editors often replace
// the file rather than writing in place, so the parent directory is
// watched and events are filtered by name.
type Watcher struct {
	store    *ConfigStore
	fsw      *fsnotify.Watcher
	onReload func(*ConfigStore)
	done     chan struct{}
}

// debounceWindow coalesces the bursts of events editors produce on save.
const debounceWindow = 250 * time.Millisecond

// NewWatcher starts watching the store's config file. onReload is
// invoked after each successful reload; it may be nil.
func NewWatcher(store *ConfigStore, onReload func(*ConfigStore)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		fsw:      fsw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.store.Path()) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceWindow, w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("config reload failed: %v", err)
		return
	}
	logger.Debug("config reloaded from %s", w.store.Path())
	if w.onReload != nil {
		w.onReload(w.store)
	}
}
