package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"premierepad/internal/app"
	"premierepad/internal/asset"
	"premierepad/internal/debug"
	"premierepad/internal/engineconfig"
	"premierepad/internal/fonts"
	"premierepad/internal/graphics"
	"premierepad/internal/keybinds"
	"premierepad/internal/logger"
	"premierepad/internal/page"
	"premierepad/internal/posestream"
	"premierepad/internal/scene"
	"premierepad/internal/snapshot"
	"premierepad/internal/ui"
)

const (
	uiFont = "Inter"

	// wheelStep is how far one wheel notch scrolls the page, in pixels.
	wheelStep = 120

	// debugLogLines is how many recent log lines the pose overlay shows.
	debugLogLines = 3

	// streamShutdown bounds closing the pose stream on exit.
	streamShutdown = 2 * time.Second
)

// viewer holds the raylib side of the app: input, drawing and teardown.
type viewer struct {
	ctx   context.Context
	prefs engineconfig.EnginePrefs
	log   *logger.Logger

	doc    *page.Document
	loop   *graphics.Loop
	scn    *scene.Scene
	engine *ui.Engine
	view   *ui.View
	dbg    *debug.Debug
	keys   *keybinds.Registry
	orch   *app.Orchestrator

	snapshotQueued bool
}

func run(ctx context.Context, prefs engineconfig.EnginePrefs) error {
	log := logger.New(logger.LogFilePath)

	layout, err := page.LoadLayout(prefs.LayoutPath)
	if err != nil {
		log.Logf("layout %s: %v, using built-in layout", prefs.LayoutPath, err)
		layout = page.Default()
	}
	engine := ui.New()
	if err := engine.LoadCSS(prefs.CSSPath); err != nil {
		log.Logf("stylesheet %s: %v", prefs.CSSPath, err)
	}

	v := &viewer{
		ctx:    ctx,
		prefs:  prefs,
		log:    log,
		doc:    page.New(layout, float32(prefs.Width), float32(prefs.Height), prefs.FPS, prefs.SmoothScroll),
		loop:   graphics.NewLoop(graphics.Window{Width: int32(prefs.Width), Height: int32(prefs.Height), Title: layout.Title, FPS: int32(prefs.FPS)}),
		scn:    scene.New(),
		engine: engine,
		view:   ui.NewView(engine, layout, prefs.FPS),
		dbg:    debug.New(),
		keys:   keybinds.NewRegistry(),
	}
	v.dbg.ShowFPS = prefs.ShowFPS
	v.dbg.ShowMemAlloc = prefs.ShowMemAlloc
	v.dbg.ShowPose = prefs.ShowPose
	v.dbg.Info = v.debugInfo

	deps := app.Deps{
		Page:       v.doc,
		Frames:     v.loop,
		Surface:    v.scn,
		Fetch:      asset.Fetch,
		Log:        log,
		HintRegion: layout.HintRegion,
	}
	if prefs.StreamAddr != "" {
		stream := posestream.New(log)
		stream.Start(prefs.StreamAddr)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), streamShutdown)
			defer cancel()
			if err := stream.Close(sctx); err != nil {
				log.Logf("pose stream close: %v", err)
			}
		}()
		deps.Stream = stream
	}
	v.orch = app.New(deps)
	defer v.orch.Close()
	v.bindKeys()

	v.orch.Start(ctx, prefs.ModelPath)
	v.loop.Run(graphics.Hooks{
		Init:     v.init,
		Update:   v.update,
		Draw:     v.draw,
		After:    v.after,
		Teardown: v.teardown,
	})
	return nil
}

func (v *viewer) bindKeys() {
	for i, s := range v.doc.Layout().Sections {
		if i >= 9 {
			break
		}
		id := s.ID
		name := s.Title
		if name == "" {
			name = id
		}
		v.keys.Register(rl.KeyOne+int32(i), strconv.Itoa(i+1), "go to "+name, func() error {
			return v.doc.ScrollToSection(id)
		})
	}
	v.keys.Register(rl.KeyR, "R", "retry model load", func() error {
		return v.orch.Retry(v.ctx)
	})
	v.keys.Register(rl.KeyHome, "Home", "reset camera", func() error {
		v.scn.ResetCamera()
		return nil
	})
	v.keys.Register(rl.KeyF3, "F3", "toggle FPS overlay", func() error {
		v.dbg.ToggleFPS()
		return nil
	})
	v.keys.Register(rl.KeyF12, "F12", "save snapshot", func() error {
		v.snapshotQueued = true
		return nil
	})
}

func (v *viewer) init() {
	v.doc.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	path, err := fonts.FindFont(fonts.BaseDirs(), uiFont)
	if err != nil {
		v.log.Logf("font %s not found, using raylib default", uiFont)
		return
	}
	if err := v.engine.LoadFont(path); err != nil {
		v.log.Logf("font %s: %v", path, err)
		return
	}
	v.dbg.SetFont(v.engine.Font())
}

func (v *viewer) blocked() bool {
	failed, _ := v.orch.Failed()
	return v.orch.LoadingVisible() || failed
}

func (v *viewer) update() {
	if rl.IsWindowResized() {
		v.doc.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if _, err := v.keys.Execute(key); err != nil {
			v.log.Logf("key: %v", err)
		}
	}
	if !v.blocked() {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			v.doc.ScrollBy(-wheel * wheelStep)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			if target, ok := v.view.LinkAt(m.X, m.Y); ok {
				if err := v.doc.ScrollToSection(target); err != nil {
					v.log.Logf("nav %s: %v", target, err)
				}
			}
		}
	}
	v.doc.Tick()

	v.scn.ControlsEnabled = v.orch.ControlsEnabled()
	v.scn.Update(v.surfaceHeight())
}

func (v *viewer) surfaceHeight() float32 {
	return float32(rl.GetScreenHeight()) - v.doc.Layout().Nav.Height
}

func (v *viewer) draw() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	v.engine.Draw(v.view.PageNodes(v.doc, w), v.doc.ScrollY())

	navH := v.doc.Layout().Nav.Height
	v.scn.Draw(rl.NewRectangle(0, navH, w, h-navH))

	failed, err := v.orch.Failed()
	st := ui.State{
		Loading:   v.orch.LoadingVisible(),
		Failed:    failed,
		Hint:      v.orch.HintVisible(),
		HintLines: v.keys.Hints(),
	}
	if err != nil {
		st.FailMessage = err.Error()
	}
	v.engine.Draw(v.view.FixedNodes(w, h, st), v.doc.ScrollY())
	v.dbg.Draw()
}

// after saves a queued snapshot of the finished frame.
func (v *viewer) after() {
	if !v.snapshotQueued {
		return
	}
	v.snapshotQueued = false
	shot := rl.LoadImageFromScreen()
	defer rl.UnloadImage(shot)
	path, err := snapshot.Save(shot.ToImage(), v.prefs.SnapshotDir, v.prefs.SnapshotScale, time.Now())
	if err != nil {
		v.log.Logf("snapshot: %v", err)
		return
	}
	v.log.Logf("snapshot saved: %s", path)
}

func (v *viewer) teardown() {
	v.scn.Unload()
	v.engine.Unload()
}

func (v *viewer) debugInfo() []string {
	st := v.orch.Scroll()
	p := v.orch.Pose()
	lines := []string{
		fmt.Sprintf("scroll %.0f / %.0f", v.doc.ScrollY(), v.doc.MaxScroll()),
		fmt.Sprintf("locked %v  scale %.2f", st.Locked, st.Scale),
		fmt.Sprintf("rot %.3f, %.3f", p.RotationX, p.RotationY),
		fmt.Sprintf("asset %s", v.orch.Status()),
	}
	return append(lines, v.log.Tail(debugLogLines)...)
}
