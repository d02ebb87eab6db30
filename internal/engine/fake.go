package engine

import (
	"context"
	"sync"

	"abik/internal/console"
)

// Fake is a scripted Engine. It records requests and returns the configured
// results. When Gate is set, operations block until it is closed.
type Fake struct {
	Console   *console.Bus
	ExtractOK bool
	BuildOK   bool
	Gate      chan struct{}
	Started   chan string
	mu        sync.Mutex
	extracts  []ExtractRequest
	builds    []BuildRequest
}

func (f *Fake) Extract(ctx context.Context, req ExtractRequest) bool {
	f.mu.Lock()
	f.extracts = append(f.extracts, req)
	f.mu.Unlock()
	return f.run(ctx, "extract "+req.Name, f.ExtractOK)
}

func (f *Fake) Build(ctx context.Context, req BuildRequest) bool {
	f.mu.Lock()
	f.builds = append(f.builds, req)
	f.mu.Unlock()
	return f.run(ctx, "build "+req.Dir, f.BuildOK)
}

func (f *Fake) Extracts() []ExtractRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ExtractRequest(nil), f.extracts...)
}

func (f *Fake) Builds() []BuildRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]BuildRequest(nil), f.builds...)
}

func (f *Fake) run(ctx context.Context, what string, ok bool) bool {
	if f.Started != nil {
		f.Started <- what
	}
	if f.Console != nil {
		f.Console.Infof("fake %s", what)
	}
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return false
		}
	}
	return ok
}
