// Package dispatch runs long-running operations off the interaction loop,
// guarded by the shared run guard, and hands their result back to the loop.
package dispatch

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"abik/internal/domain"
	"abik/internal/eventbus"
	"abik/internal/logger"
	"abik/internal/loop"
	"abik/internal/runguard"
)

// Operation is an opaque long-running unit of work. Its boolean is the only
// thing the dispatcher looks at; details belong in the console.
type Operation func(ctx context.Context) bool

// Task tracks one accepted dispatch
type Task struct {
	name   string
	done   chan struct{}
	result domain.OperationResult
}

func (t *Task) Name() string { return t.name }

// Done is closed once the guard was released and onDone returned
func (t *Task) Done() <-chan struct{} { return t.done }

// Result is valid after Done is closed
func (t *Task) Result() domain.OperationResult { return t.result }

// Dispatcher schedules operations under a run guard
type Dispatcher struct {
	ctx   context.Context
	guard *runguard.Guard
	loop  loop.Loop
	bus   eventbus.EventBus
	wg    conc.WaitGroup
}

// New creates a dispatcher. ctx is handed to every operation and is only
// cancelled when the process shuts down. bus may be nil.
func New(ctx context.Context, guard *runguard.Guard, l loop.Loop, bus eventbus.EventBus) *Dispatcher {
	return &Dispatcher{
		ctx:   ctx,
		guard: guard,
		loop:  l,
		bus:   bus,
	}
}

// Guard exposes the shared run guard
func (d *Dispatcher) Guard() *runguard.Guard {
	return d.guard
}

// Dispatch starts op on a background goroutine if the guard can be acquired.
// When op returns, the guard is released on the loop and onDone is called
// there. The guard stays busy until that release, so no second dispatch can
// slip in between the end of op and the hand-off.
func (d *Dispatcher) Dispatch(name string, op Operation, onDone func(domain.OperationResult)) (*Task, error) {
	if !d.guard.TryAcquire() {
		logger.L().Info("dispatch.denied", "operation", name)
		return nil, &domain.OpError{Op: name, Kind: domain.KindBusy, Err: domain.ErrBusy}
	}

	task := &Task{name: name, done: make(chan struct{})}
	started := time.Now()
	logger.L().Info("dispatch.started", "operation", name)
	d.publish(domain.OperationStartedEvent{Name: name, At: started})

	d.wg.Go(func() {
		ok := d.run(name, op)
		res := domain.OperationResult{Name: name, OK: ok, Elapsed: time.Since(started)}

		d.loop.Post(func() {
			defer close(task.done)
			d.guard.Release()
			task.result = res
			logger.L().Info("dispatch.finished", "operation", name, "ok", ok, "elapsed", res.Elapsed.String())
			d.publish(domain.OperationFinishedEvent{Result: res})
			if onDone != nil {
				onDone(res)
			}
		})
	})

	return task, nil
}

// Wait blocks until every dispatched operation returned. Hand-offs still
// queued on the loop are not waited for.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// run executes op, turning a panic into a failed result
func (d *Dispatcher) run(name string, op Operation) bool {
	var ok bool
	var pc panics.Catcher
	pc.Try(func() {
		ok = op(d.ctx)
	})
	if r := pc.Recovered(); r != nil {
		logger.L().Error("dispatch.panic", "operation", name, "panic", r.String())
		return false
	}
	return ok
}

func (d *Dispatcher) publish(e domain.DomainEvent) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}
