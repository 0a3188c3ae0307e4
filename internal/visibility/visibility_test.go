package visibility

import (
	"testing"

	"premierepad/internal/signal"
)

func TestRatio(t *testing.T) {
	region := Span{Top: 1000, Height: 1000}
	tests := []struct {
		view Span
		want float32
	}{
		{Span{Top: 0, Height: 800}, 0},
		{Span{Top: 0, Height: 1000}, 0},
		{Span{Top: 500, Height: 1000}, 0.5},
		{Span{Top: 1000, Height: 1000}, 1},
		{Span{Top: 900, Height: 2000}, 1},
		{Span{Top: 1800, Height: 1000}, 0.2},
		{Span{Top: 2000, Height: 1000}, 0},
	}
	for _, tc := range tests {
		if got := Ratio(region, tc.view); got != tc.want {
			t.Errorf("view %+v: expected ratio %v, got %v", tc.view, tc.want, got)
		}
	}
	if got := Ratio(Span{Top: 0, Height: 0}, Span{Top: 0, Height: 10}); got != 0 {
		t.Errorf("Expected 0 for empty region, got %v", got)
	}
}

type fakeObserver struct {
	hub       signal.Hub[Entry]
	region    string
	threshold float32
}

func (f *fakeObserver) Observe(region string, threshold float32, fn func(Entry)) func() {
	f.region, f.threshold = region, threshold
	return f.hub.Subscribe(fn)
}

func (f *fakeObserver) deliver(ratio float32) {
	f.hub.Emit(Entry{Ratio: ratio, Intersecting: Band(ratio, f.threshold)})
}

func TestWatcherFollowsEntries(t *testing.T) {
	obs := &fakeObserver{}
	w := NewWatcher("about")
	w.Attach(obs)

	if obs.region != "about" || obs.threshold != Threshold {
		t.Fatalf("Expected observe(about, %v), got (%s, %v)", Threshold, obs.region, obs.threshold)
	}
	if w.Visible() {
		t.Fatal("Expected not visible before any entry")
	}

	obs.deliver(0.6)
	if !w.Visible() {
		t.Error("Expected visible after crossing above threshold")
	}
	obs.deliver(0.4)
	if w.Visible() {
		t.Error("Expected hidden after dropping below threshold")
	}
	if w.Updates() != 2 {
		t.Errorf("Expected 2 updates, got %d", w.Updates())
	}
}

func TestWatcherDetach(t *testing.T) {
	obs := &fakeObserver{}
	w := NewWatcher("about")
	detach := w.Attach(obs)
	obs.deliver(0.9)

	detach()
	w.Close()
	obs.deliver(0.1)

	if !w.Visible() || w.Updates() != 1 {
		t.Errorf("Expected no updates after detach, got visible=%v updates=%d", w.Visible(), w.Updates())
	}
	if obs.hub.Len() != 0 {
		t.Errorf("Expected 0 observers after detach, got %d", obs.hub.Len())
	}
}
