package runguard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquireRelease(t *testing.T) {
	g := New()
	assert.False(t, g.IsBusy())

	assert.True(t, g.TryAcquire())
	assert.True(t, g.IsBusy())

	assert.False(t, g.TryAcquire(), "second acquire must be denied")
	assert.True(t, g.IsBusy(), "denial leaves the guard busy")

	g.Release()
	assert.False(t, g.IsBusy())
	assert.True(t, g.TryAcquire())
}

func TestOnlyOneConcurrentWinner(t *testing.T) {
	g := New()

	var winners atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if g.TryAcquire() {
				winners.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
