package page

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"premierepad/internal/signal"
	"premierepad/internal/visibility"
)

// ErrUnknownSection is returned when navigating to a section id the layout lacks.
var ErrUnknownSection = errors.New("page: unknown section")

const (
	// springFrequency and springDamping shape smooth scrolling; critically damped
	// so the page never overshoots its target.
	springFrequency = 6.0
	springDamping   = 1.0
	// settleDistance is how close, in pixels, smooth scrolling snaps to its target.
	settleDistance = 0.5
)

// Placed is a section with its geometry for the current viewport.
type Placed struct {
	Section
	Span visibility.Span
}

type observer struct {
	region    string
	threshold float32
	fn        func(visibility.Entry)
	band      bool
}

// Document is the scrollable page the viewer shows. It owns the scroll offset and
// viewport size, fires scroll events and delivers intersection entries. All methods
// are meant to be called from the render loop goroutine.
type Document struct {
	layout Layout
	width  float32
	height float32

	scrollY float32
	target  float32
	vel     float64
	smooth  bool
	spring  harmonica.Spring

	scroll    signal.Hub[struct{}]
	observers map[uint64]*observer
	nextObs   uint64
}

// New returns a document at the top of the page for a w×h viewport. fps is the frame
// rate Tick is called at; smooth enables animated scrolling.
func New(layout Layout, w, h float32, fps int, smooth bool) *Document {
	if fps <= 0 {
		fps = 60
	}
	return &Document{
		layout:    layout,
		width:     w,
		height:    h,
		smooth:    smooth,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		observers: make(map[uint64]*observer),
	}
}

// Layout returns the page layout.
func (d *Document) Layout() Layout { return d.layout }

// ScrollY returns the current vertical scroll offset in pixels.
func (d *Document) ScrollY() float32 { return d.scrollY }

// ViewportHeight returns the viewport height in pixels.
func (d *Document) ViewportHeight() float32 { return d.height }

// ViewportWidth returns the viewport width in pixels.
func (d *Document) ViewportWidth() float32 { return d.width }

// Viewport returns the visible span of the page.
func (d *Document) Viewport() visibility.Span {
	return visibility.Span{Top: d.scrollY, Height: d.height}
}

// OnScroll subscribes fn to scroll events.
func (d *Document) OnScroll(fn func()) (unsubscribe func()) {
	return d.scroll.Subscribe(func(struct{}) { fn() })
}

// ScrollListeners returns the number of scroll subscriptions.
func (d *Document) ScrollListeners() int { return d.scroll.Len() }

// Observers returns the number of live intersection observations.
func (d *Document) Observers() int { return len(d.observers) }

func (d *Document) sectionHeight(s Section) float32 {
	if s.Pixels > 0 {
		return s.Pixels
	}
	return s.Height * d.height
}

// Sections returns every section placed top to bottom for the current viewport.
func (d *Document) Sections() []Placed {
	out := make([]Placed, 0, len(d.layout.Sections))
	var top float32
	for _, s := range d.layout.Sections {
		h := d.sectionHeight(s)
		out = append(out, Placed{Section: s, Span: visibility.Span{Top: top, Height: h}})
		top += h
	}
	return out
}

// Section returns the span of the section with the given id.
func (d *Document) Section(id string) (visibility.Span, bool) {
	for _, p := range d.Sections() {
		if p.ID == id {
			return p.Span, true
		}
	}
	return visibility.Span{}, false
}

// ContentHeight returns the full page height in pixels.
func (d *Document) ContentHeight() float32 {
	var total float32
	for _, s := range d.layout.Sections {
		total += d.sectionHeight(s)
	}
	return total
}

// MaxScroll returns the largest valid scroll offset.
func (d *Document) MaxScroll() float32 {
	return max(0, d.ContentHeight()-d.height)
}

func (d *Document) clamp(y float32) float32 {
	return min(max(y, 0), d.MaxScroll())
}

// ScrollTo moves to offset y, animated when smooth scrolling is on.
func (d *Document) ScrollTo(y float32) {
	d.target = d.clamp(y)
	if !d.smooth {
		d.vel = 0
		d.setScroll(d.target)
	}
}

// ScrollBy moves the scroll target by dy pixels, e.g. from the mouse wheel.
func (d *Document) ScrollBy(dy float32) {
	d.ScrollTo(d.target + dy)
}

// ScrollToSection scrolls so the section's top meets the viewport top.
func (d *Document) ScrollToSection(id string) error {
	span, ok := d.Section(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	d.ScrollTo(span.Top)
	return nil
}

// Target returns where the page is scrolling to.
func (d *Document) Target() float32 { return d.target }

// Settled reports whether no smooth scroll is in progress.
func (d *Document) Settled() bool { return d.scrollY == d.target }

// Tick advances smooth scrolling by one frame.
func (d *Document) Tick() {
	if d.Settled() {
		return
	}
	y, v := d.spring.Update(float64(d.scrollY), d.vel, float64(d.target))
	if math.Abs(y-float64(d.target)) < settleDistance && math.Abs(v) < settleDistance {
		y, v = float64(d.target), 0
	}
	d.vel = v
	d.setScroll(float32(y))
}

// Resize sets a new viewport size. Section geometry follows the height, so the scroll
// offset is re-clamped and listeners are told as if the page scrolled.
func (d *Document) Resize(w, h float32) {
	if w == d.width && h == d.height {
		return
	}
	d.width, d.height = w, h
	d.target = d.clamp(d.target)
	d.scrollY = d.clamp(d.scrollY)
	d.scroll.Emit(struct{}{})
	d.checkObservers()
}

func (d *Document) setScroll(y float32) {
	y = d.clamp(y)
	if y == d.scrollY {
		return
	}
	d.scrollY = y
	d.scroll.Emit(struct{}{})
	d.checkObservers()
}

// Observe starts watching a section against the viewport. fn gets one entry right away
// and then one per threshold crossing. Unknown regions are never delivered.
func (d *Document) Observe(region string, threshold float32, fn func(visibility.Entry)) (unobserve func()) {
	span, ok := d.Section(region)
	if !ok {
		return func() {}
	}
	d.nextObs++
	id := d.nextObs
	ratio := visibility.Ratio(span, d.Viewport())
	o := &observer{region: region, threshold: threshold, fn: fn, band: visibility.Band(ratio, threshold)}
	d.observers[id] = o
	fn(visibility.Entry{Ratio: ratio, Intersecting: o.band})
	return func() { delete(d.observers, id) }
}

func (d *Document) checkObservers() {
	if len(d.observers) == 0 {
		return
	}
	view := d.Viewport()
	for _, o := range d.observers {
		span, ok := d.Section(o.region)
		if !ok {
			continue
		}
		ratio := visibility.Ratio(span, view)
		band := visibility.Band(ratio, o.threshold)
		if band == o.band {
			continue
		}
		o.band = band
		o.fn(visibility.Entry{Ratio: ratio, Intersecting: band})
	}
}
