package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abik/internal/domain"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	b.Subscribe(EventDeletionProgress, func(e DomainEvent) {
		ev := e.(DeletionProgressEvent)
		mu.Lock()
		got = append(got, ev.Index)
		n := len(got)
		mu.Unlock()
		if n == 5 {
			close(done)
		}
	})

	for i := 0; i < 5; i++ {
		b.Publish(DeletionProgressEvent{Index: i, Total: 5})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	removed := make(chan DomainEvent, 4)
	kept := make(chan DomainEvent, 4)
	unsubscribe := b.Subscribe(EventWorkDirChanged, func(e DomainEvent) { removed <- e })
	b.Subscribe(EventWorkDirChanged, func(e DomainEvent) { kept <- e })
	unsubscribe()

	b.Publish(WorkDirChangedEvent{Path: "/work"})

	select {
	case e := <-kept:
		assert.Equal(t, "/work", e.(WorkDirChangedEvent).Path)
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber did not receive the event")
	}
	assert.Empty(t, removed)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan domain.OperationResult, 1)
	b.Subscribe(EventOperationFinished, func(e DomainEvent) {
		if !e.(OperationFinishedEvent).Result.OK {
			panic("boom")
		}
		got <- e.(OperationFinishedEvent).Result
	})

	b.Publish(OperationFinishedEvent{Result: domain.OperationResult{Name: "build", OK: false}})
	b.Publish(OperationFinishedEvent{Result: domain.OperationResult{Name: "build", OK: true}})

	select {
	case r := <-got:
		require.True(t, r.OK)
	case <-time.After(2 * time.Second):
		t.Fatal("bus stopped after handler panic")
	}
}
