package manifest

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/logger"
)

// Watcher watches a manifest file for changes and triggers reload callbacks.
// Used by watch-mode generation to regenerate doubles as contracts evolve.
type Watcher struct {
	manifestPath   string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// ReloadCallback is called with the freshly parsed manifest after a change.
type ReloadCallback func(*Manifest) error

// NewWatcher creates a watcher for the given manifest file.
func NewWatcher(manifestPath string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(manifestPath); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch manifest %s", manifestPath)
	}

	return &Watcher{
		manifestPath:   manifestPath,
		watcher:        watcher,
		debouncePeriod: 500 * time.Millisecond, // editors fire several events per save
	}, nil
}

// OnReload registers a callback to be called when the manifest is reloaded.
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for manifest changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Infow("manifest changed",
					logger.FieldFile, event.Name,
					"op", event.Op.String())
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("manifest watcher error",
				logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			logger.Errorw("manifest reload failed",
				logger.FieldManifest, w.manifestPath,
				logger.FieldError, err)
		}
	})
}

func (w *Watcher) reload() error {
	m, err := Load(w.manifestPath)
	if err != nil {
		return err
	}

	logger.Infow("manifest reloaded",
		logger.FieldManifest, w.manifestPath,
		logger.FieldCount, len(m.Units))

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(m); err != nil {
			logger.Warnw("manifest reload callback error",
				logger.FieldError, err)
			// Keep calling the other callbacks even if one fails.
		}
	}
	return nil
}

// Stop stops watching for manifest changes.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
