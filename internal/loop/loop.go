// Package loop models the single interaction context that owns all UI state.
//
// Background work never touches UI state directly. It posts funcs to a Loop,
// and the loop runs them one at a time in the order they were posted.
package loop

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"abik/internal/logger"
)

// ErrClosed is returned by Call when the loop shut down before running the func
var ErrClosed = errors.New("loop closed")

// Loop is an interaction context
type Loop interface {
	// Post queues fn without blocking. Funcs run in post order.
	Post(fn func())
	// Call queues fn and waits until it ran. Must not be called from the loop itself.
	Call(ctx context.Context, fn func()) error
}

// Pump is an unbounded FIFO that hands posted funcs to deliver, one at a
// time, from its own goroutine. deliver decides where the func runs.
type Pump struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	deliver func(func())
	done    chan struct{}
}

// NewPump starts a pump feeding deliver
func NewPump(deliver func(func())) *Pump {
	p := &Pump{
		deliver: deliver,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// NewSerial returns a loop that runs funcs directly on the pump goroutine.
// Used by the headless CLI and by tests.
func NewSerial() *Pump {
	return NewPump(func(fn func()) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error("loop.panic", "panic", r, "stack", string(debug.Stack()))
			}
		}()
		fn()
	})
}

func (p *Pump) Post(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue = append(p.queue, fn)
	p.cond.Signal()
}

func (p *Pump) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	p.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		select {
		case <-ran:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting funcs, lets queued ones drain and waits for the pump to exit
func (p *Pump) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}

func (p *Pump) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		fn := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.deliver(fn)
	}
}
