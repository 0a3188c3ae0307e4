package app

import (
	"context"
	"errors"
	"sync"

	"premierepad/internal/asset"
	"premierepad/internal/logger"
	"premierepad/internal/pose"
	"premierepad/internal/posestream"
	"premierepad/internal/scroll"
	"premierepad/internal/visibility"
)

// ErrModelUnusable is reported when the fetched file could not be turned into a model.
var ErrModelUnusable = errors.New("app: model file could not be loaded")

// Page is the document the viewer scrolls: it fires scroll events and intersection entries.
type Page interface {
	scroll.Source
	visibility.Source
}

// FrameSource runs subscribed callbacks once per rendered frame.
type FrameSource interface {
	OnFrame(fn func()) (unsubscribe func())
}

// Surface is the render surface holding the model.
type Surface interface {
	// Target is nil until the model is drawable.
	Target() pose.Target
	SetModel(path string)
	ModelQueued() bool
	LoadFailed() bool
}

// Publisher receives one snapshot per frame, e.g. the pose stream.
type Publisher interface {
	Publish(posestream.Frame)
}

// Deps are the collaborators the orchestrator wires together.
type Deps struct {
	Page       Page
	Frames     FrameSource
	Surface    Surface
	Fetch      asset.Fetcher
	Log        *logger.Logger
	HintRegion string
	// Stream is optional.
	Stream Publisher
}

// Orchestrator wires the scroll sampler, pose animator, asset gate and visibility
// watcher to the page, the frame loop and the render surface. It holds no state of its
// own beyond the subscriptions it must release.
type Orchestrator struct {
	deps     Deps
	sampler  *scroll.Sampler
	animator *pose.Animator
	gate     *asset.Gate
	watcher  *visibility.Watcher

	frameCalls int

	mu       sync.Mutex
	releases []func()
	started  bool
	closed   bool
}

// New builds the components. Nothing is subscribed until Start.
func New(d Deps) *Orchestrator {
	if d.Log == nil {
		d.Log = logger.New("")
	}
	o := &Orchestrator{
		deps:     d,
		sampler:  scroll.NewSampler(),
		animator: pose.New(pose.State{}),
		gate:     asset.NewGate(d.Fetch),
		watcher:  visibility.NewWatcher(d.HintRegion),
	}
	o.gate.OnReady(func(r asset.Resource) {
		d.Log.Logf("asset ready: %s (%d bytes)", r.Path, r.Size)
	})
	o.gate.OnFailed(func(err error) {
		d.Log.Logf("asset failed: %v", err)
	})
	return o
}

// Start subscribes to scroll, intersection and frame events and starts loading
// modelPath. Calling Start again, or after Close, does nothing.
func (o *Orchestrator) Start(ctx context.Context, modelPath string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started || o.closed {
		return
	}
	o.started = true
	o.releases = append(o.releases,
		o.sampler.Attach(o.deps.Page),
		o.watcher.Attach(o.deps.Page),
		o.deps.Frames.OnFrame(o.frame),
	)
	o.deps.Log.Logf("loading model %s", modelPath)
	o.gate.Load(ctx, modelPath)
}

// frame is the per-frame callback: hand the model to the surface once the gate is
// ready, then step the pose from the latest scroll state.
func (o *Orchestrator) frame() {
	o.frameCalls++
	if o.gate.Ready() && !o.deps.Surface.ModelQueued() {
		if res, err := o.gate.Resource(); err == nil {
			o.deps.Surface.SetModel(res.Path)
		}
	}
	st := o.sampler.State()
	o.animator.Frame(o.deps.Surface.Target(), st)
	if o.deps.Stream != nil {
		o.deps.Stream.Publish(o.Snapshot())
	}
}

// Snapshot returns the published state of every component.
func (o *Orchestrator) Snapshot() posestream.Frame {
	st := o.sampler.State()
	p := o.animator.State()
	failed, _ := o.Failed()
	return posestream.Frame{
		ScrollY:   o.deps.Page.ScrollY(),
		Locked:    st.Locked,
		Scale:     st.Scale,
		RotationX: p.RotationX,
		RotationY: p.RotationY,
		Ready:     o.gate.Ready(),
		Failed:    failed,
		Hint:      o.watcher.Visible(),
	}
}

// Scroll returns the latest scroll state.
func (o *Orchestrator) Scroll() scroll.State { return o.sampler.State() }

// Pose returns the current pose.
func (o *Orchestrator) Pose() pose.State { return o.animator.State() }

// Status returns the asset gate status.
func (o *Orchestrator) Status() asset.Status { return o.gate.Status() }

// ControlsEnabled reports whether camera dragging is allowed: the model is loaded and
// the view is not locked.
func (o *Orchestrator) ControlsEnabled() bool {
	return o.gate.Ready() && !o.sampler.State().Locked
}

// LoadingVisible reports whether the blocking loading overlay is shown.
func (o *Orchestrator) LoadingVisible() bool {
	return o.gate.Status() == asset.Pending
}

// Failed reports whether the model could not be loaded, with the reason.
func (o *Orchestrator) Failed() (bool, error) {
	if o.gate.Status() == asset.Failed {
		return true, o.gate.Err()
	}
	if o.deps.Surface.LoadFailed() {
		return true, ErrModelUnusable
	}
	return false, nil
}

// HintVisible reports whether the keybind hint region is at least half on screen.
func (o *Orchestrator) HintVisible() bool { return o.watcher.Visible() }

// Retry reloads the model after a failed fetch.
func (o *Orchestrator) Retry(ctx context.Context) error {
	if err := o.gate.Retry(ctx); err != nil {
		return err
	}
	o.deps.Log.Logf("retrying model load (attempt %d)", o.gate.Attempts())
	return nil
}

// Ready is closed once the model has been fetched.
func (o *Orchestrator) Ready() <-chan struct{} { return o.gate.Done() }

// Counts returns how many scroll, intersection and frame callbacks have been handled.
func (o *Orchestrator) Counts() (scrolls, intersections, frames int) {
	return o.sampler.Samples(), o.watcher.Updates(), o.frameCalls
}

// Close releases every subscription. Safe to call more than once and before Start.
// The asset load is not cancelled.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for i := len(o.releases) - 1; i >= 0; i-- {
		o.releases[i]()
	}
	o.releases = nil
}
