package pose

import (
	"math"
	"testing"

	"premierepad/internal/scroll"
)

type recorder struct {
	x, y, scale float32
	calls       int
}

func (r *recorder) SetRotation(x, y float32) { r.x, r.y = x, y; r.calls++ }
func (r *recorder) SetScale(s float32)       { r.scale = s }

var (
	free   = scroll.State{Locked: false, Scale: 1}
	locked = scroll.State{Locked: true, Scale: 1}
)

func TestFreeSpinPinsTiltAndAdvancesYaw(t *testing.T) {
	a := New(State{RotationX: 2.5, RotationY: 0})
	r := &recorder{}

	prevY := a.State().RotationY
	for i := 0; i < 100; i++ {
		a.Frame(r, free)
		st := a.State()
		if st.RotationX != Tilt {
			t.Fatalf("frame %d: expected RotationX pinned to %v, got %v", i, Tilt, st.RotationX)
		}
		step := st.RotationY - prevY
		if step <= 0 {
			t.Fatalf("frame %d: expected RotationY to increase, got step %v", i, step)
		}
		if math.Abs(float64(step-SpinStep)) > 1e-5 {
			t.Fatalf("frame %d: expected step %v, got %v", i, SpinStep, step)
		}
		prevY = st.RotationY
	}
	if r.x != Tilt || r.y != prevY {
		t.Errorf("Expected target to receive the pose, got x=%v y=%v", r.x, r.y)
	}
}

func TestLockedEasesTowardTopDown(t *testing.T) {
	a := New(State{RotationX: 1, RotationY: 1})
	r := &recorder{}

	a.Frame(r, locked)
	if got := a.State().RotationX; math.Abs(float64(got)-0.9) > 1e-6 {
		t.Fatalf("Expected RotationX 0.9 after one frame, got %v", got)
	}

	for n := 2; n <= 50; n++ {
		a.Frame(r, locked)
		want := math.Pow(0.9, float64(n))
		got := float64(a.State().RotationX)
		if math.Abs(got-want) > 1e-5 {
			t.Fatalf("frame %d: expected %v, got %v", n, want, got)
		}
		if got == 0 {
			t.Fatalf("frame %d: RotationX reached exactly 0", n)
		}
	}
	if a.State().RotationX >= 0.01 {
		t.Errorf("Expected RotationX below 0.01 after 50 frames, got %v", a.State().RotationX)
	}

	for i := 0; i < 50 && !a.Settled(1e-3); i++ {
		a.Frame(r, locked)
	}
	if !a.Settled(1e-3) {
		t.Errorf("Expected pose settled within 1e-3, got %+v", a.State())
	}
}

func TestScaleAppliedDirectly(t *testing.T) {
	a := New(State{})
	r := &recorder{}
	for _, s := range []float32{1, 0.25, 0, 0.8} {
		a.Frame(r, scroll.State{Locked: true, Scale: s})
		if r.scale != s {
			t.Errorf("Expected scale %v applied without smoothing, got %v", s, r.scale)
		}
	}
}

func TestNilTargetIsNoop(t *testing.T) {
	a := New(State{RotationX: 1})
	a.Frame(nil, free)
	if a.State() != (State{RotationX: 1}) {
		t.Errorf("Expected pose unchanged without a target, got %+v", a.State())
	}
	if a.Frames() != 0 {
		t.Errorf("Expected 0 frames applied, got %d", a.Frames())
	}
}
