// Package watch reports changes to the working directory on the event bus.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"abik/internal/domain"
	"abik/internal/eventbus"
	"abik/internal/logger"
)

// DefaultDebounce collapses bursts of events, e.g. an unpack writing many files
const DefaultDebounce = 250 * time.Millisecond

// Watcher publishes a WorkDirChangedEvent when the direct children of a
// directory change. It only signals; listings are always recomputed by the
// reader.
type Watcher struct {
	fsw      *fsnotify.Watcher
	bus      eventbus.EventBus
	path     string
	debounce time.Duration
	done     chan struct{}
}

// New starts watching path. Call Run to process events.
func New(bus eventbus.EventBus, path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		bus:      bus,
		path:     path,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Run processes events until ctx is cancelled or Close is called
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			logger.L().Debug("watch.event", "name", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.L().Warn("watch.error", "path", w.path, "err", err)
		case <-timer.C:
			w.bus.Publish(domain.WorkDirChangedEvent{Path: w.path})
		}
	}
}

// Done is closed when Run returned
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close stops the underlying watcher, which also ends Run
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
