package ui

import (
	"image/color"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"premierepad/internal/ui/style"
)

// Engine holds the current stylesheet and draws nodes with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per class/id pair and dropped when the sheet changes.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	sheet  *style.Stylesheet
	styles map[string]style.Computed
	font   rl.Font
}

// New creates an engine with no stylesheet.
func New() *Engine {
	return &Engine{styles: make(map[string]style.Computed)}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	sheet, err := style.LoadCSS(path)
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *style.Stylesheet) {
	e.sheet = sheet
	e.styles = make(map[string]style.Computed)
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// LoadFont loads a TTF font from path. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.font = f
	return nil
}

// Font returns the loaded font; zero texture ID means the default font.
func (e *Engine) Font() rl.Font { return e.font }

// Style returns the resolved style for a node.
func (e *Engine) Style(n *Node) style.Computed {
	key := n.Class + "#" + n.ID
	if c, ok := e.styles[key]; ok {
		return c
	}
	c := style.Resolve(e.sheet.Match(n.Class, n.ID))
	e.styles[key] = c
	return c
}

// MeasureText returns the width of text at size using the engine font.
func (e *Engine) MeasureText(text string, size int32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

func toColor(c color.RGBA, alpha float32) rl.Color {
	return rl.Fade(rl.NewColor(c.R, c.G, c.B, c.A), alpha)
}

// Draw draws nodes in order. Page nodes are shifted up by scrollY and skipped when
// entirely off screen.
func (e *Engine) Draw(nodes []*Node, scrollY float32) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for _, n := range nodes {
		st := e.Style(n)
		alpha := n.Alpha * st.Opacity
		if alpha <= 0 {
			continue
		}
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		if n.Fixed {
			if st.Width > 0 {
				w = st.Width
			}
			if st.Height > 0 {
				h = st.Height
			}
			if st.LeftPct >= 0 {
				x = (screenW - w) * st.LeftPct / 100
			}
			if st.TopPct >= 0 {
				y = (screenH - h) * st.TopPct / 100
			}
		} else {
			y -= int32(scrollY)
			if y > screenH || y+h < 0 {
				continue
			}
		}

		if st.Background.A > 0 {
			if st.HasGradient {
				rl.DrawRectangleGradientV(x, y, w, h, toColor(st.Background, alpha), toColor(st.Gradient, alpha))
			} else {
				rl.DrawRectangle(x, y, w, h, toColor(st.Background, alpha))
			}
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, toColor(st.Border, alpha))
		}
		if n.Text != "" {
			e.drawText(n.Text, x+st.Padding, y+st.Padding, st.FontSize, toColor(st.Color, alpha))
		}
	}
}

func (e *Engine) drawText(text string, x, y, size int32, c rl.Color) {
	lineHeight := size + size/4
	for i, line := range strings.Split(text, "\n") {
		ly := y + int32(i)*lineHeight
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, line, rl.NewVector2(float32(x), float32(ly)), float32(size), 1, c)
		} else {
			rl.DrawText(line, x, ly, size, c)
		}
	}
}

// Unload releases the font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}
