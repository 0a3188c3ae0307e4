package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("font"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindFontPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(dir, "readme.txt"))

	list, err := ScanDir(dir)
	if err != nil || len(list) != 2 {
		t.Fatalf("Expected 2 fonts, got %v (err %v)", list, err)
	}
	got, err := FindFont([]string{filepath.Join(dir, "missing"), dir}, "")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "Inter-Regular.ttf" {
		t.Errorf("Expected Inter-Regular.ttf, got %s", got)
	}
	got, err = FindFont([]string{dir}, "inter bold")
	if err != nil || filepath.Base(got) != "Inter-Bold.ttf" {
		t.Errorf("Expected Inter-Bold.ttf, got %s (err %v)", got, err)
	}
}

func TestFindFontNone(t *testing.T) {
	if _, err := FindFont([]string{t.TempDir()}, ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
