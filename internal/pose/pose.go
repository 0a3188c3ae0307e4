package pose

import (
	"github.com/chewxy/math32"

	"premierepad/internal/scroll"
)

const (
	// Tilt is the fixed X rotation in free-spin mode, in radians.
	Tilt = 0.4
	// SpinStep is added to the Y rotation every free-spin frame, in radians.
	SpinStep = 0.01
	// Alpha is the per-frame interpolation factor toward the top-down pose.
	Alpha = 0.1
)

// State is the model's orientation in radians. Only the Animator writes it.
type State struct {
	RotationX float32
	RotationY float32
}

// Target is the drawable the animator poses, e.g. the scene's model pivot.
type Target interface {
	SetRotation(x, y float32)
	SetScale(s float32)
}

// Animator moves the pose one step per rendered frame. Free spin keeps a constant tilt
// and turns around Y; locked view eases both angles toward zero. RotationY is never
// wrapped: only its sine and cosine matter.
type Animator struct {
	state  State
	frames int
}

// New returns an animator starting at initial.
func New(initial State) *Animator {
	return &Animator{state: initial}
}

// Frame advances the pose for one frame using the latest scroll state and applies the
// pose and scale to target. A nil target is a no-op: the model may not be loaded yet.
func (a *Animator) Frame(target Target, st scroll.State) {
	if target == nil {
		return
	}
	a.frames++
	if st.Locked {
		a.state.RotationX = lerp(a.state.RotationX, 0, Alpha)
		a.state.RotationY = lerp(a.state.RotationY, 0, Alpha)
	} else {
		a.state.RotationX = Tilt
		a.state.RotationY += SpinStep
	}
	target.SetRotation(a.state.RotationX, a.state.RotationY)
	target.SetScale(st.Scale)
}

// State returns the current pose.
func (a *Animator) State() State {
	return a.state
}

// Frames returns how many frames have been applied to a target.
func (a *Animator) Frames() int {
	return a.frames
}

// Settled reports whether both angles are within eps of the top-down pose.
func (a *Animator) Settled(eps float32) bool {
	return math32.Abs(a.state.RotationX) < eps && math32.Abs(a.state.RotationY) < eps
}

func lerp(from, to, t float32) float32 {
	return from + (to-from)*t
}
