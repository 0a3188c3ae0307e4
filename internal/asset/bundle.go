package asset

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bundleModelExts are the entries unpack will pick as the model, in preference order.
var bundleModelExts = []string{".glb", ".gltf", ".obj", ".iqm", ".vox", ".m3d"}

// unpack extracts a zipped model bundle (model plus textures and buffers) into a
// directory next to it and returns the path of the model inside. Entries that would
// escape the directory are skipped.
func unpack(zipPath string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("asset: unzip: %w", err)
	}
	defer r.Close()

	destDir := strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("asset: unzip: %w", err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("asset: unzip: %w", err)
	}

	var extracted []string
	for _, f := range r.File {
		dest := filepath.Clean(filepath.Join(destDir, f.Name))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return "", fmt.Errorf("asset: unzip: %w", err)
		}
		if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if err := extract(f, dest); err != nil {
			return "", fmt.Errorf("asset: unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}

	for _, ext := range bundleModelExts {
		for _, p := range extracted {
			if strings.ToLower(filepath.Ext(p)) == ext {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s holds no model", ErrInvalidModel, zipPath)
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(out, rc)
	return err
}
