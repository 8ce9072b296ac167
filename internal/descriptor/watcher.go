package descriptor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback receives a descriptor that was reloaded and validated.
type ReloadCallback func(*Descriptor) error

// ErrorCallback receives load and validation failures.
type ErrorCallback func(error)

// ErrWatcherClosed is returned when Close is called twice.
var ErrWatcherClosed = errors.New("descriptor: watcher already closed")

// DefaultDebounceDelay is the quiet period after the last file event before
// a reload runs.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher reloads a descriptor file whenever it changes on disk. Bursts of
// events are debounced and the parent directory is watched so that
// temp-file-and-rename saves are seen.
type Watcher struct {
	ctx       context.Context
	fsWatcher *fsnotify.Watcher
	cancel    context.CancelFunc
	path      string
	overrides []Override
	onReload  []ReloadCallback
	onError   []ErrorCallback
	debounce  time.Duration
	mu        sync.RWMutex
	closed    bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithOverrides re-applies overrides on every reload.
func WithOverrides(overrides ...Override) WatcherOption {
	return func(w *Watcher) {
		w.overrides = append(w.overrides, overrides...)
	}
}

// NewWatcher watches the descriptor at path.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		ctx:       ctx,
		cancel:    cancel,
		fsWatcher: fsWatcher,
		path:      absPath,
		debounce:  DefaultDebounceDelay,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		cancel()
		if closeErr := fsWatcher.Close(); closeErr != nil {
			l := logger()
			l.Error().Err(closeErr).Msg("failed to close watcher after add failure")
		}
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a callback for successful reloads. Callbacks run in
// registration order.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, cb)
}

// OnError registers a callback for failed reloads.
func (w *Watcher) OnError(cb ErrorCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, cb)
}

// Watch blocks until ctx is canceled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
		target  = filepath.Base(w.path)
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if w.ctx.Err() != nil || ctx.Err() != nil {
					return
				}
				w.reload()
			})
			timerMu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			l := logger()
			l.Error().Err(err).Msg("descriptor watcher error")
		}
	}
}

// relevant reports whether event is a write or create of the target file.
// Chmod events from indexers are ignored.
func relevant(event fsnotify.Event, target string) bool {
	if filepath.Base(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// reload loads and validates the file, then notifies callbacks.
func (w *Watcher) reload() {
	l := logger()

	d, err := Load(w.path, w.overrides...)
	if err == nil {
		err = d.Validate()
	}
	if err != nil {
		l.Warn().Err(err).Str("path", w.path).Msg("descriptor reload rejected")
		w.mu.RLock()
		callbacks := append([]ErrorCallback(nil), w.onError...)
		w.mu.RUnlock()
		for _, cb := range callbacks {
			cb(err)
		}
		return
	}

	l.Info().Str("path", w.path).Msg("descriptor reloaded")
	w.mu.RLock()
	callbacks := append([]ReloadCallback(nil), w.onReload...)
	w.mu.RUnlock()
	for _, cb := range callbacks {
		if err := cb(d); err != nil {
			l.Error().Err(err).Msg("descriptor reload callback error")
		}
	}
}

// Close stops watching and releases the file watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	w.cancel()
	return w.fsWatcher.Close()
}
