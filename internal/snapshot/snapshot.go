package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/transform"
)

// Save writes img as WebP under dir, scaled by scale (values <= 0 or >= 1 keep the
// original size). Returns the path written.
func Save(img image.Image, dir string, scale float32, now time.Time) (string, error) {
	if img == nil {
		return "", fmt.Errorf("snapshot: no image")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("snapshot: empty image")
	}
	if scale > 0 && scale < 1 {
		w := max(1, int(float32(b.Dx())*scale))
		h := max(1, int(float32(b.Dy())*scale))
		img = transform.Resize(img, w, h, transform.Linear)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	path := filepath.Join(dir, "premierepad-"+now.Format("20060102-150405.000")+".webp")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("snapshot: WebP encode: %w", err)
	}
	return path, nil
}
