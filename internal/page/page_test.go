package page

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"premierepad/internal/visibility"
)

func newDoc(smooth bool) *Document {
	return New(Default(), 1200, 1000, 60, smooth)
}

func TestDefaultLayoutValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default layout invalid: %v", err)
	}
}

func TestParseLayoutRejectsDuplicates(t *testing.T) {
	data := []byte(`
sections:
  - {id: a, height: 1}
  - {id: a, height: 1}
`)
	if _, err := ParseLayout(data); err == nil {
		t.Fatal("Expected duplicate id error")
	}
	if _, err := ParseLayout([]byte(`sections: [{id: a}]`)); err == nil {
		t.Fatal("Expected missing height error")
	}
	if _, err := ParseLayout([]byte(`hint_region: x
sections: [{id: a, height: 1}]`)); err == nil {
		t.Fatal("Expected unknown hint region error")
	}
}

func TestLoadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	data := []byte("hint_region: about\nsections:\n  - {id: hero, height: 1}\n  - {id: about, height: 1, title: About}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if len(l.Sections) != 2 || l.Sections[1].Title != "About" || l.HintRegion != "about" {
		t.Errorf("Unexpected layout %+v", l)
	}
}

func TestSectionGeometry(t *testing.T) {
	d := newDoc(false)
	about, ok := d.Section("about")
	if !ok || about.Top != 1000 || about.Height != 1000 {
		t.Errorf("Expected about at 1000+1000, got %+v (ok=%v)", about, ok)
	}
	if d.ContentHeight() != 3056 {
		t.Errorf("Expected content height 3056, got %v", d.ContentHeight())
	}
	if d.MaxScroll() != 2056 {
		t.Errorf("Expected max scroll 2056, got %v", d.MaxScroll())
	}
}

func TestScrollClampsAndEmits(t *testing.T) {
	d := newDoc(false)
	events := 0
	unsub := d.OnScroll(func() { events++ })

	d.ScrollTo(500)
	d.ScrollTo(500)
	d.ScrollBy(-10000)
	d.ScrollBy(100000)
	if d.ScrollY() != d.MaxScroll() {
		t.Errorf("Expected scroll clamped to %v, got %v", d.MaxScroll(), d.ScrollY())
	}
	if events != 3 {
		t.Errorf("Expected 3 scroll events (unchanged offsets are not events), got %d", events)
	}

	unsub()
	d.ScrollTo(0)
	if events != 3 {
		t.Errorf("Expected no events after unsubscribe, got %d", events)
	}
}

func TestSmoothScrollSettles(t *testing.T) {
	d := newDoc(true)
	if err := d.ScrollToSection("about"); err != nil {
		t.Fatal(err)
	}
	if d.ScrollY() != 0 {
		t.Fatalf("Expected no jump before Tick, got %v", d.ScrollY())
	}
	prev := d.ScrollY()
	for i := 0; i < 600 && !d.Settled(); i++ {
		d.Tick()
		if d.ScrollY() < prev {
			t.Fatalf("tick %d: smooth scroll moved backwards %v -> %v", i, prev, d.ScrollY())
		}
		prev = d.ScrollY()
	}
	if !d.Settled() || d.ScrollY() != 1000 {
		t.Errorf("Expected to settle at 1000, got %v (target %v)", d.ScrollY(), d.Target())
	}
}

func TestScrollToUnknownSection(t *testing.T) {
	d := newDoc(false)
	if err := d.ScrollToSection("features"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("Expected ErrUnknownSection, got %v", err)
	}
}

func TestObserveDeliversInitialAndCrossings(t *testing.T) {
	d := newDoc(false)
	var entries []visibility.Entry
	unobserve := d.Observe("about", visibility.Threshold, func(e visibility.Entry) {
		entries = append(entries, e)
	})
	if len(entries) != 1 || entries[0].Intersecting {
		t.Fatalf("Expected one initial non-intersecting entry, got %+v", entries)
	}

	d.ScrollTo(200)
	d.ScrollTo(499)
	if len(entries) != 1 {
		t.Fatalf("Expected no entries below threshold, got %+v", entries)
	}
	d.ScrollTo(500)
	d.ScrollTo(900)
	d.ScrollTo(1400)
	if len(entries) != 2 || !entries[1].Intersecting {
		t.Fatalf("Expected one crossing into view, got %+v", entries)
	}
	d.ScrollTo(1600)
	if len(entries) != 3 || entries[2].Intersecting {
		t.Fatalf("Expected one crossing out of view, got %+v", entries)
	}

	unobserve()
	d.ScrollTo(1000)
	if len(entries) != 3 || d.Observers() != 0 {
		t.Errorf("Expected no entries after unobserve, got %d entries, %d observers", len(entries), d.Observers())
	}
}

func TestObserveUnknownRegion(t *testing.T) {
	d := newDoc(false)
	calls := 0
	unobserve := d.Observe("keybinds", visibility.Threshold, func(visibility.Entry) { calls++ })
	unobserve()
	if calls != 0 || d.Observers() != 0 {
		t.Errorf("Expected unknown region to be ignored, got calls=%d observers=%d", calls, d.Observers())
	}
}

func TestResizeEmitsScroll(t *testing.T) {
	d := newDoc(false)
	d.ScrollTo(2000)
	events := 0
	d.OnScroll(func() { events++ })

	d.Resize(1200, 500)
	if events != 1 {
		t.Errorf("Expected resize to emit one scroll event, got %d", events)
	}
	if d.ScrollY() != d.MaxScroll() {
		t.Errorf("Expected scroll re-clamped to %v, got %v", d.MaxScroll(), d.ScrollY())
	}
	d.Resize(1200, 500)
	if events != 1 {
		t.Errorf("Expected same-size resize to be ignored, got %d events", events)
	}
}
