package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"premierepad/internal/signal"
)

// Window describes the viewer window.
type Window struct {
	Width  int32
	Height int32
	Title  string
	FPS    int32
}

// Hooks are the callbacks Run drives. Any may be nil.
type Hooks struct {
	// Init runs once after the window and OpenGL context exist.
	Init func()
	// Update runs first every frame (input, scroll, resize).
	Update func()
	// Draw runs between BeginDrawing and EndDrawing after the screen is cleared.
	Draw func()
	// After runs after EndDrawing, e.g. to capture the finished frame.
	After func()
	// Teardown runs once before the window closes, on every exit from Run.
	Teardown func()
}

// Loop owns the window and the per-frame callback list. Frame callbacks run every
// frame between Update and Draw, at display refresh cadence.
type Loop struct {
	window Window
	frames signal.Hub[struct{}]
	count  uint64
}

// NewLoop returns a loop for w.
func NewLoop(w Window) *Loop {
	if w.FPS <= 0 {
		w.FPS = 60
	}
	return &Loop{window: w}
}

// OnFrame subscribes fn to run once per frame.
func (l *Loop) OnFrame(fn func()) (unsubscribe func()) {
	return l.frames.Subscribe(func(struct{}) { fn() })
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 { return l.count }

// Run opens a resizable window and runs the main loop until the window is closed.
// ESC is not an exit key; close via the window button.
func (l *Loop) Run(h Hooks) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(l.window.Width, l.window.Height, l.window.Title)
	defer rl.CloseWindow()
	if h.Teardown != nil {
		defer h.Teardown()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(l.window.FPS)
	if h.Init != nil {
		h.Init()
	}

	for !rl.WindowShouldClose() {
		if h.Update != nil {
			h.Update()
		}
		l.count++
		l.frames.Emit(struct{}{})

		rl.BeginDrawing()
		rl.ClearBackground(rl.White)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
		if h.After != nil {
			h.After()
		}
	}
}
