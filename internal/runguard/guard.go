// Package runguard serializes the long-running workflows (extract, build, clean).
package runguard

import "sync/atomic"

// Guard is a non-blocking busy flag. A denied TryAcquire is an immediate
// failure, never a queued request.
type Guard struct {
	busy atomic.Bool
}

func New() *Guard {
	return &Guard{}
}

// TryAcquire marks the guard busy and reports true only if it was idle
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release marks the guard idle
func (g *Guard) Release() {
	g.busy.Store(false)
}

func (g *Guard) IsBusy() bool {
	return g.busy.Load()
}
