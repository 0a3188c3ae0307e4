package style

import (
	"image/color"
	"testing"
)

const sample = `
/* page panels */
.hero { background: #3b82f6; gradient-to: #4f46e5; color: #fff; font-size: 40px; }
.about, #about-extra { background: #ffffff; color: #1f2937; padding: 32px; }
.nav a { color: #000; }
@media (max-width: 600px) { .hero { font-size: 20px; } }
#loading { background: #ffffffee; opacity: 0.5; border: 1px solid #333; }
`

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(sample)
	if err != nil {
		t.Fatalf("ParseCSS failed: %v", err)
	}
	sels := map[string]bool{}
	for _, r := range sheet.Rules {
		sels[r.Selector] = true
	}
	for _, want := range []string{".hero", ".about", "#about-extra", "#loading"} {
		if !sels[want] {
			t.Errorf("Expected rule %s, got %v", want, sels)
		}
	}
	if sels[".nav a"] {
		t.Error("Expected compound selector to be skipped")
	}
}

func TestMatchAndResolve(t *testing.T) {
	sheet, err := ParseCSS(sample)
	if err != nil {
		t.Fatal(err)
	}
	hero := Resolve(sheet.Match("section hero", ""))
	if hero.Background != (color.RGBA{0x3b, 0x82, 0xf6, 255}) {
		t.Errorf("Unexpected hero background %v", hero.Background)
	}
	if !hero.HasGradient || hero.Gradient != (color.RGBA{0x4f, 0x46, 0xe5, 255}) {
		t.Errorf("Unexpected hero gradient %v", hero.Gradient)
	}
	if hero.FontSize != 40 {
		t.Errorf("Expected @media rule ignored, got font-size %d", hero.FontSize)
	}
	if hero.Color != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Unexpected hero color %v", hero.Color)
	}

	loading := Resolve(sheet.Match("", "loading"))
	if loading.Background.A != 0xee || loading.Opacity != 0.5 {
		t.Errorf("Unexpected loading style %+v", loading)
	}
	if !loading.HasBorder || loading.Border != (color.RGBA{0x33, 0x33, 0x33, 255}) {
		t.Errorf("Unexpected loading border %+v", loading.Border)
	}

	about := Resolve(sheet.Match("about", ""))
	if about.Padding != 32 {
		t.Errorf("Expected padding 32, got %d", about.Padding)
	}
	if got := Resolve(nil); got != Default() {
		t.Errorf("Expected defaults for no props, got %+v", got)
	}
}

func TestParseHelpers(t *testing.T) {
	if c, ok := ParseHexColor("#abc"); !ok || c != (color.RGBA{0xaa, 0xbb, 0xcc, 255}) {
		t.Errorf("Unexpected #abc: %v %v", c, ok)
	}
	if _, ok := ParseHexColor("#zzzzzz"); ok {
		t.Error("Expected invalid hex to fail")
	}
	if n, ok := ParsePx("16px"); !ok || n != 16 {
		t.Errorf("Unexpected ParsePx: %d %v", n, ok)
	}
	if n, ok := ParsePct("50%"); !ok || n != 50 {
		t.Errorf("Unexpected ParsePct: %d %v", n, ok)
	}
	if _, ok := ParsePct("150%"); ok {
		t.Error("Expected out-of-range percentage to fail")
	}
}
