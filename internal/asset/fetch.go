package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"premierepad/internal/download"
)

// CacheDir is where remote models are saved before raylib loads them from disk.
const CacheDir = "assets/cache"

// ErrInvalidModel is returned when the fetched file is not a usable model.
var ErrInvalidModel = errors.New("asset: invalid model file")

var glbMagic = []byte("glTF")

// Fetch makes path available on local disk: remote URLs are downloaded into CacheDir,
// local paths are read in full. Zipped bundles are unpacked next to the archive and
// the model inside is used. glTF files are checked for a valid header.
func Fetch(ctx context.Context, path string) (Resource, error) {
	var local string
	if download.IsRemote(path) {
		saved, _, err := download.Download(ctx, path, CacheDir)
		if err != nil {
			return Resource{}, err
		}
		local = saved
	} else {
		local = filepath.Clean(strings.TrimPrefix(path, "file://"))
	}
	if strings.EqualFold(filepath.Ext(local), ".zip") {
		model, err := unpack(local)
		if err != nil {
			return Resource{}, err
		}
		local = model
	}
	info, err := os.Stat(local)
	if err != nil {
		return Resource{}, fmt.Errorf("asset: %w", err)
	}
	if info.IsDir() {
		return Resource{}, fmt.Errorf("%w: %s is a directory", ErrInvalidModel, local)
	}
	if err := validate(local); err != nil {
		return Resource{}, err
	}
	return Resource{Path: local, Size: info.Size()}, nil
}

func validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidModel, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		if !bytes.HasPrefix(data, glbMagic) {
			return fmt.Errorf("%w: %s has no glTF header", ErrInvalidModel, path)
		}
	case ".gltf":
		var doc struct {
			Asset *struct {
				Version string `json:"version"`
			} `json:"asset"`
		}
		if err := json.Unmarshal(data, &doc); err != nil || doc.Asset == nil {
			return fmt.Errorf("%w: %s is not glTF JSON", ErrInvalidModel, path)
		}
	}
	return nil
}
