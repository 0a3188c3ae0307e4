package visibility

import (
	"sync"

	"github.com/chewxy/math32"

	"premierepad/internal/signal"
)

// Threshold is the visible fraction of the region at which the flag turns on.
const Threshold = 0.5

// Span is a vertical extent in page pixels.
type Span struct {
	Top    float32
	Height float32
}

// Bottom returns Top+Height.
func (s Span) Bottom() float32 { return s.Top + s.Height }

// Ratio returns the fraction of region inside view, in [0,1]. An empty region has ratio 0.
func Ratio(region, view Span) float32 {
	if region.Height <= 0 {
		return 0
	}
	overlap := math32.Min(region.Bottom(), view.Bottom()) - math32.Max(region.Top, view.Top)
	if overlap <= 0 {
		return 0
	}
	return math32.Min(1, overlap/region.Height)
}

// Band returns which side of threshold ratio is on: true at or above it.
func Band(ratio, threshold float32) bool {
	return ratio >= threshold
}

// Entry is one intersection observation.
type Entry struct {
	Ratio float32
	// Intersecting is true when Ratio is at or above the observer's threshold.
	Intersecting bool
}

// Source delivers intersection entries for a region: once on Observe and then on
// every threshold crossing.
type Source interface {
	Observe(region string, threshold float32, fn func(Entry)) (unobserve func())
}

// Watcher publishes whether one region is at least half visible.
type Watcher struct {
	region  string
	visible signal.Value[bool]
	updates int

	mu     sync.Mutex
	detach func()
}

// NewWatcher returns a watcher for the region with the given id, initially not visible.
func NewWatcher(region string) *Watcher {
	return &Watcher{region: region}
}

// Attach starts observing the region on src. The returned func stops observing; Close does too.
func (w *Watcher) Attach(src Source) (detach func()) {
	unobserve := src.Observe(w.region, Threshold, func(e Entry) {
		w.updates++
		w.visible.Store(e.Intersecting)
	})
	w.mu.Lock()
	if w.detach != nil {
		w.detach()
	}
	w.detach = unobserve
	w.mu.Unlock()
	return w.Close
}

// Close stops observing, if attached.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.detach != nil {
		w.detach()
		w.detach = nil
	}
}

// Visible returns the latest published flag.
func (w *Watcher) Visible() bool {
	return w.visible.Load()
}

// Updates returns how many entries the watcher has received.
func (w *Watcher) Updates() int {
	return w.updates
}

// Region returns the observed region id.
func (w *Watcher) Region() string {
	return w.region
}
