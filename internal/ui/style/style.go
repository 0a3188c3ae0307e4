package style

import (
	"image/color"
	"strconv"
	"strings"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".hero" or "#about"
	Props    map[string]string // e.g. "background" -> "#3b82f6"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Computed holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Computed struct {
	Background color.RGBA
	// Gradient, when HasGradient, fades Background (top) to Gradient (bottom).
	Gradient    color.RGBA
	HasGradient bool
	Color       color.RGBA
	Border      color.RGBA
	HasBorder   bool
	Width       int32
	Height      int32
	Left        int32
	Top         int32
	LeftPct     int32
	TopPct      int32
	Padding     int32
	FontSize    int32
	Opacity     float32
	// ContentPct is the width of a section's text column as a percentage of the screen.
	ContentPct int32
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// Default returns a minimal style (transparent background, white 20px text, no border, zero size).
func Default() Computed {
	return Computed{
		Color:      white,
		Border:     black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   20,
		Opacity:    1,
		ContentPct: 70,
	}
}

// Match returns merged properties of every rule whose selector is ".class" or "#id"
// for the given node; later rules win.
func (s *Stylesheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		matches := false
		switch {
		case len(sel) > 1 && sel[0] == '.':
			matches = class != "" && hasClass(class, sel[1:])
		case len(sel) > 1 && sel[0] == '#':
			matches = id != "" && id == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// hasClass reports whether the space-separated class list contains name.
func hasClass(list, name string) bool {
	for _, c := range strings.Fields(list) {
		if c == name {
			return true
		}
	}
	return false
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return black, false
		}
	}
	nib := func(i int) uint8 { v, _ := hexDigit(hex[i]); return v }
	switch len(hex) {
	case 3:
		return color.RGBA{nib(0) * 17, nib(1) * 17, nib(2) * 17, 255}, true
	case 6:
		return color.RGBA{nib(0)<<4 + nib(1), nib(2)<<4 + nib(3), nib(4)<<4 + nib(5), 255}, true
	case 8:
		return color.RGBA{nib(0)<<4 + nib(1), nib(2)<<4 + nib(3), nib(4)<<4 + nib(5), nib(6)<<4 + nib(7)}, true
	}
	return black, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100).
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// Resolve builds a Computed style from a merged property map.
func Resolve(props map[string]string) Computed {
	out := Default()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "gradient-to":
			if c, ok := ParseHexColor(v); ok {
				out.Gradient = c
				out.HasGradient = true
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseHexColor(lastField(v)); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "content-width":
			if pct, ok := ParsePct(v); ok && pct > 0 {
				out.ContentPct = pct
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 && f <= 1 {
				out.Opacity = float32(f)
			}
		}
	}
	return out
}

func lastField(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return v
	}
	return fields[len(fields)-1]
}
