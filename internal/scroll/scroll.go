package scroll

import (
	"sync"

	"github.com/chewxy/math32"

	"premierepad/internal/signal"
)

const (
	// lockStart and lockEnd bound the locked view as fractions of the first and second
	// panel boundaries. Both ends are exclusive.
	lockStart = 0.65
	lockEnd   = 1.1
	// shrinkSpan is how far past the first boundary, in viewport heights, the model
	// takes to shrink from 1 to 0.
	shrinkSpan = 0.65
)

// State is what the scroll position means for the model: whether the view is locked
// to the top-down orientation and the uniform scale to draw it at.
type State struct {
	Locked bool
	Scale  float32
}

// Initial is the state before any scroll event: free spin at full size.
var Initial = State{Locked: false, Scale: 1}

// Compute derives State from scroll offset y and viewport height h.
// The hero panel ends at h and the about panel at 2h.
func Compute(y, h float32) State {
	firstBoundary := h
	secondBoundary := 2 * h
	st := State{
		Locked: y > lockStart*firstBoundary && y < lockEnd*secondBoundary,
		Scale:  1,
	}
	if y > firstBoundary {
		st.Scale = math32.Max(0, 1-(y-firstBoundary)/(shrinkSpan*h))
	}
	return st
}

// Source fires scroll events and reports the current scroll offset and viewport height.
type Source interface {
	OnScroll(fn func()) (unsubscribe func())
	ScrollY() float32
	ViewportHeight() float32
}

// Sampler samples a Source on every scroll event and publishes the derived State.
// It is the only writer of that State.
type Sampler struct {
	state   signal.Value[State]
	samples int

	mu     sync.Mutex
	detach func()
}

// NewSampler returns a sampler publishing Initial until the first scroll event.
func NewSampler() *Sampler {
	s := &Sampler{}
	s.state.Store(Initial)
	return s
}

// Attach subscribes to src and samples it once immediately so the published state
// matches the current offset. The returned func removes the subscription; Close does too.
func (s *Sampler) Attach(src Source) (detach func()) {
	handle := func() {
		s.samples++
		s.state.Store(Compute(src.ScrollY(), src.ViewportHeight()))
	}
	unsub := src.OnScroll(handle)
	handle()

	s.mu.Lock()
	if s.detach != nil {
		s.detach()
	}
	s.detach = unsub
	s.mu.Unlock()
	return s.Close
}

// Close removes the scroll subscription, if any.
func (s *Sampler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// State returns the latest published State.
func (s *Sampler) State() State {
	return s.state.Load()
}

// Samples returns how many scroll events the sampler has handled.
func (s *Sampler) Samples() int {
	return s.samples
}
