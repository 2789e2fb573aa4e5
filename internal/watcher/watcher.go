// Package watcher reports changes to a single file, debounced.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/pubsub"
)

// Event reports that the watched file settled after a change.
type Event struct {
	Path string
}

// Watcher monitors one file and signals after it settles.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Event]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns a one-second debounce for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 1 * time.Second,
	}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBroker[Event](1),
		done:      make(chan struct{}),
	}, nil
}

// Broker publishes one Event per settled burst of changes.
func (w *Watcher) Broker() *pubsub.Broker[Event] {
	return w.broker
}

// Start watches the file's directory, which also catches editors that
// replace the file instead of writing it in place.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()
	return nil
}

// Stop terminates the watcher, closes subscriber channels and releases
// resources.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Debug(log.CatWatcher, "file changed", "path", w.path)
			w.broker.Publish(Event{Path: w.path})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
