package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"abik/internal/domain"
	"abik/internal/eventbus"
	"abik/internal/logger"
)

// Keeper keeps a Watcher running on path. A path that cannot be watched yet
// is reported once as an ErrorEvent and retried after every finished
// operation, since an extract creates the working directory.
type Keeper struct {
	ctx      context.Context
	bus      eventbus.EventBus
	path     string
	debounce time.Duration

	mu          sync.Mutex
	w           *Watcher
	reported    bool
	closed      bool
	unsubscribe func()
}

// Keep starts watching path until ctx is cancelled or Close is called
func Keep(ctx context.Context, bus eventbus.EventBus, path string, debounce time.Duration) *Keeper {
	k := &Keeper{ctx: ctx, bus: bus, path: path, debounce: debounce}
	if k.start() {
		return k
	}

	unsubscribe := bus.Subscribe(domain.EventOperationFinished, func(domain.DomainEvent) {
		k.start()
	})
	k.mu.Lock()
	k.unsubscribe = unsubscribe
	k.mu.Unlock()
	return k
}

// Running reports whether the watch is active
func (k *Keeper) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.w != nil
}

func (k *Keeper) start() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.w != nil {
		return true
	}
	if k.closed {
		return false
	}

	w, err := New(k.bus, k.path, k.debounce)
	if err != nil {
		logger.L().Warn("watch.start_failed", "path", k.path, "err", err)
		if !k.reported {
			k.reported = true
			k.bus.Publish(domain.ErrorEvent{Message: fmt.Sprintf("not watching %s", k.path), Err: err})
		}
		return false
	}

	k.w = w
	go w.Run(k.ctx)
	if k.reported {
		// Changes made while unwatched were missed
		k.bus.Publish(domain.WorkDirChangedEvent{Path: k.path})
	}
	return true
}

// Close stops the watch and any pending retry
func (k *Keeper) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	if k.unsubscribe != nil {
		k.unsubscribe()
		k.unsubscribe = nil
	}
	if k.w != nil {
		k.w.Close()
		k.w = nil
	}
}
