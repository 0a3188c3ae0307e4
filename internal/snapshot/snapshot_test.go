package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 200, A: 255})
		}
	}
	return img
}

func TestSaveWritesScaledWebP(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	path, err := Save(testImage(64, 32), dir, 0.5, now)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "premierepad-20240501-100000.000.webp" {
		t.Errorf("Unexpected file name %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("Expected 32x16, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSaveRejectsEmptyImage(t *testing.T) {
	if _, err := Save(image.NewNRGBA(image.Rect(0, 0, 0, 0)), t.TempDir(), 1, time.Now()); err == nil {
		t.Error("Expected error for empty image")
	}
	if _, err := Save(nil, t.TempDir(), 1, time.Now()); err == nil {
		t.Error("Expected error for nil image")
	}
}
