package asset

import (
	"context"
	"errors"
	"sync"
)

// Status is the gate's position in its one-shot lifecycle.
type Status int

const (
	// Pending covers both "not started" and "in flight".
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrNotReady is returned by Resource before the gate is Ready.
	ErrNotReady = errors.New("asset: not ready")
	// ErrNotFailed is returned by Retry unless the gate is Failed.
	ErrNotFailed = errors.New("asset: retry only allowed after a failed load")
)

// Resource is a fully fetched asset available on local disk.
type Resource struct {
	Path string
	Size int64
}

// Fetcher fetches the resource named by path. It runs on its own goroutine.
type Fetcher func(ctx context.Context, path string) (Resource, error)

// Gate wraps a single asynchronous load of one resource. It becomes Ready at most once
// and never leaves Ready. A failed load parks it in Failed until Retry.
// Callbacks run on the loader goroutine; keep them short and publish, don't draw.
type Gate struct {
	fetch Fetcher

	mu       sync.Mutex
	status   Status
	started  bool
	attempts int
	path     string
	res      Resource
	err      error
	onReady  func(Resource)
	onFailed func(error)

	readyOnce sync.Once
	done      chan struct{}
}

// NewGate returns a pending gate that will use fetch.
func NewGate(fetch Fetcher) *Gate {
	return &Gate{fetch: fetch, done: make(chan struct{})}
}

// OnReady sets the readiness callback. Set it before Load.
func (g *Gate) OnReady(fn func(Resource)) {
	g.mu.Lock()
	g.onReady = fn
	g.mu.Unlock()
}

// OnFailed sets the callback invoked once per failed attempt. Set it before Load.
func (g *Gate) OnFailed(fn func(error)) {
	g.mu.Lock()
	g.onFailed = fn
	g.mu.Unlock()
}

// Load starts fetching path. Only the first call starts a fetch; later calls are ignored.
// There is no cancellation once started; ctx is handed to the fetcher.
func (g *Gate) Load(ctx context.Context, path string) {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return
	}
	g.started = true
	g.path = path
	g.attempts++
	g.mu.Unlock()
	go g.run(ctx, path)
}

// Retry starts a new fetch of the same path after a failure.
func (g *Gate) Retry(ctx context.Context) error {
	g.mu.Lock()
	if g.status != Failed {
		g.mu.Unlock()
		return ErrNotFailed
	}
	g.status = Pending
	g.err = nil
	g.attempts++
	path := g.path
	g.mu.Unlock()
	go g.run(ctx, path)
	return nil
}

func (g *Gate) run(ctx context.Context, path string) {
	res, err := g.fetch(ctx, path)

	g.mu.Lock()
	if err != nil {
		g.status = Failed
		g.err = err
		fn := g.onFailed
		g.mu.Unlock()
		if fn != nil {
			fn(err)
		}
		return
	}
	g.mu.Unlock()

	g.readyOnce.Do(func() {
		g.mu.Lock()
		g.status = Ready
		g.res = res
		fn := g.onReady
		g.mu.Unlock()
		close(g.done)
		if fn != nil {
			fn(res)
		}
	})
}

// Status returns the current status.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Ready reports whether the resource is available.
func (g *Gate) Ready() bool {
	return g.Status() == Ready
}

// Err returns the error of the last failed attempt, or nil.
func (g *Gate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Attempts returns how many fetches have been started.
func (g *Gate) Attempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}

// Resource returns the loaded resource, or ErrNotReady.
func (g *Gate) Resource() (Resource, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != Ready {
		return Resource{}, ErrNotReady
	}
	return g.res, nil
}

// Done is closed when the gate becomes Ready.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}
