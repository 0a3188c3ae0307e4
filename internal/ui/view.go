package ui

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"

	"premierepad/internal/page"
	"premierepad/internal/ui/style"
)

const (
	sectionPadding = 32
	navPadding     = 16
	hintWidth      = 300
	hintMargin     = 24
	// hintFrequency and hintDamping shape the keybind hint fade.
	hintFrequency = 8.0
	hintDamping   = 1.0
)

// State is what the orchestrator publishes for the presentation layer.
type State struct {
	Loading     bool
	Failed      bool
	FailMessage string
	Hint        bool
	HintLines   []string
}

// View builds the node list for one frame: page sections, the fixed nav bar, the
// keybind hint and the loading or failure overlay. Overlays are drawn last.
type View struct {
	engine *Engine
	layout page.Layout

	navLinks []*Node

	hintAlpha float64
	hintVel   float64
	spring    harmonica.Spring
}

// NewView returns a view over layout drawn with engine. fps is the frame rate Nodes
// is called at.
func NewView(engine *Engine, layout page.Layout, fps int) *View {
	if fps <= 0 {
		fps = 60
	}
	return &View{
		engine: engine,
		layout: layout,
		spring: harmonica.NewSpring(harmonica.FPS(fps), hintFrequency, hintDamping),
	}
}

// HintAlpha returns the current keybind hint opacity.
func (v *View) HintAlpha() float32 { return float32(v.hintAlpha) }

func (v *View) stepHint(visible bool) {
	target := 0.0
	if visible {
		target = 1
	}
	v.hintAlpha, v.hintVel = v.spring.Update(v.hintAlpha, v.hintVel, target)
	v.hintAlpha = min(max(v.hintAlpha, 0), 1)
}

// PageNodes returns the scrolling section nodes, in page coordinates.
func (v *View) PageNodes(doc *page.Document, screenW float32) []*Node {
	var nodes []*Node
	for _, p := range doc.Sections() {
		panel := NewNode("panel", strings.TrimSpace("section "+p.Class), p.ID, "")
		panel.Bounds = rl.NewRectangle(0, p.Span.Top, screenW, p.Span.Height)
		nodes = append(nodes, panel)

		st := v.engine.Style(panel)
		colW := screenW * float32(st.ContentPct) / 100
		x := float32(sectionPadding)
		y := p.Span.Top + float32(sectionPadding)
		if p.Span.Height < 2*sectionPadding {
			y = p.Span.Top
		}
		add := func(class, text string) {
			n := NewNode("label", class, "", text)
			size := v.engine.Style(n).FontSize
			lines := style.Wrap(text, colW, func(s string) float32 { return v.engine.MeasureText(s, size) })
			n.Text = strings.Join(lines, "\n")
			h := float32(len(lines))*float32(size+size/4) + 8
			n.Bounds = rl.NewRectangle(x, y, colW, h)
			nodes = append(nodes, n)
			y += h
		}
		if p.Title != "" {
			add("section-title "+p.Class+"-title", p.Title)
		}
		for _, b := range p.Blocks {
			if b.Heading != "" {
				add("block-heading", b.Heading)
			}
			if b.Text != "" {
				add("block-text", b.Text)
			}
			for _, item := range b.Items {
				add("block-item", "- "+item)
			}
			if b.Link != "" {
				add("block-link", b.Link)
			}
		}
	}
	return nodes
}

// FixedNodes returns the nav bar, hint and overlays in screen coordinates, and steps
// the hint fade by one frame.
func (v *View) FixedNodes(screenW, screenH float32, st State) []*Node {
	v.stepHint(st.Hint && !st.Loading && !st.Failed)
	navH := v.layout.Nav.Height

	nodes := []*Node{}
	nav := NewNode("panel", "nav", "nav", "")
	nav.Fixed = true
	nav.Bounds = rl.NewRectangle(0, 0, screenW, navH)
	title := NewNode("label", "nav-title", "", v.layout.Title)
	title.Fixed = true
	title.Bounds = rl.NewRectangle(navPadding, navPadding, 200, navH-2*navPadding)
	nodes = append(nodes, nav, title)

	v.navLinks = v.navLinks[:0]
	x := float32(navPadding + 200)
	for _, l := range v.layout.Nav.Links {
		link := NewNode("link", "nav-link", "", l.Label)
		link.Fixed = true
		link.Target = l.Target
		w := v.engine.MeasureText(l.Label, v.engine.Style(link).FontSize) + 2*navPadding
		link.Bounds = rl.NewRectangle(x, navPadding, w, navH-2*navPadding)
		x += w
		v.navLinks = append(v.navLinks, link)
		nodes = append(nodes, link)
	}

	if v.hintAlpha > 0.01 && len(st.HintLines) > 0 {
		hint := NewNode("panel", "hint", "keybinds", "Keybinds\n"+strings.Join(st.HintLines, "\n"))
		hint.Fixed = true
		hint.Alpha = float32(v.hintAlpha)
		size := v.engine.Style(hint).FontSize
		h := float32(len(st.HintLines)+1)*float32(size+size/4) + 24
		hint.Bounds = rl.NewRectangle(screenW-hintWidth-hintMargin, screenH-h-hintMargin, hintWidth, h)
		nodes = append(nodes, hint)
	}

	switch {
	case st.Failed:
		overlay := NewNode("panel", "overlay failed", "failed", "")
		overlay.Fixed = true
		overlay.Bounds = rl.NewRectangle(0, 0, screenW, screenH)
		msg := NewNode("label", "overlay-text failed-text", "", "Could not load the model.\n"+st.FailMessage+"\nPress R to retry.")
		msg.Fixed = true
		msg.Bounds = rl.NewRectangle(screenW/4, screenH/2-60, screenW/2, 120)
		nodes = append(nodes, overlay, msg)
	case st.Loading:
		overlay := NewNode("panel", "overlay", "loading", "")
		overlay.Fixed = true
		overlay.Bounds = rl.NewRectangle(0, 0, screenW, screenH)
		msg := NewNode("label", "overlay-text", "", "Loading...")
		msg.Fixed = true
		size := v.engine.Style(msg).FontSize
		w := v.engine.MeasureText(msg.Text, size) + 16
		msg.Bounds = rl.NewRectangle((screenW-w)/2, (screenH-float32(size))/2, w, float32(size)+16)
		nodes = append(nodes, overlay, msg)
	}
	return nodes
}

// LinkAt returns the nav link target under a screen point from the last FixedNodes call.
func (v *View) LinkAt(x, y float32) (string, bool) {
	p := rl.NewVector2(x, y)
	for _, l := range v.navLinks {
		if rl.CheckCollisionPointRec(p, l.Bounds) {
			return l.Target, true
		}
	}
	return "", false
}
