package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jinzhu/copier"
)

// EngineConfigPath is the default prefs file, relative to the process working directory.
const EngineConfigPath = "config/viewer.json"

// EnginePrefs holds viewer preferences. Persisted across runs.
type EnginePrefs struct {
	ModelPath     string  `json:"model_path"`
	LayoutPath    string  `json:"layout_path"`
	CSSPath       string  `json:"css_path"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	FPS           int     `json:"fps"`
	SmoothScroll  bool    `json:"smooth_scroll"`
	ShowFPS       bool    `json:"show_fps"`
	ShowMemAlloc  bool    `json:"show_memalloc"`
	ShowPose      bool    `json:"show_pose"`
	StreamAddr    string  `json:"stream_addr,omitempty"`
	SnapshotDir   string  `json:"snapshot_dir"`
	SnapshotScale float32 `json:"snapshot_scale"`
}

// Default returns default preferences (overlays off, smooth scrolling on).
func Default() EnginePrefs {
	return EnginePrefs{
		ModelPath:     "assets/models/pad.gltf",
		LayoutPath:    "assets/page.yaml",
		CSSPath:       "assets/page.css",
		Width:         1280,
		Height:        800,
		FPS:           60,
		SmoothScroll:  true,
		SnapshotDir:   "snapshots",
		SnapshotScale: 1,
	}
}

// Load reads prefs from path. If the file is missing or invalid, returns Default()
// and does not create a file. Fields absent from the file keep their defaults.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes prefs to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Merge returns base with every non-zero field of override copied over it.
// Zero values (false, 0, "") in override never replace base values.
func Merge(base, override EnginePrefs) (EnginePrefs, error) {
	out := base
	if err := copier.CopyWithOption(&out, &override, copier.Option{IgnoreEmpty: true}); err != nil {
		return base, fmt.Errorf("engineconfig: merge: %w", err)
	}
	return out, nil
}

// FromEnv reads overrides from PREMIEREPAD_* environment variables.
// Unset or unparsable variables leave the field zero.
func FromEnv() EnginePrefs {
	var p EnginePrefs
	p.ModelPath = os.Getenv("PREMIEREPAD_MODEL")
	p.LayoutPath = os.Getenv("PREMIEREPAD_LAYOUT")
	p.CSSPath = os.Getenv("PREMIEREPAD_CSS")
	p.StreamAddr = os.Getenv("PREMIEREPAD_STREAM")
	p.SnapshotDir = os.Getenv("PREMIEREPAD_SNAPSHOT_DIR")
	if n, err := strconv.Atoi(os.Getenv("PREMIEREPAD_FPS")); err == nil && n > 0 {
		p.FPS = n
	}
	if b, err := strconv.ParseBool(os.Getenv("PREMIEREPAD_SHOW_FPS")); err == nil {
		p.ShowFPS = b
	}
	return p
}
