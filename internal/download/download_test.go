package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/pad.gltf": true,
		"HTTP://example.com/pad.glb":   true,
		"assets/models/pad.gltf":       false,
		"/models/pad.gltf":             false,
	}
	for in, want := range tests {
		if got := IsRemote(in); got != want {
			t.Errorf("IsRemote(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestDownloadSavesModel(t *testing.T) {
	body := []byte(`{"asset":{"version":"2.0"}}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf+json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, n, err := Download(context.Background(), srv.URL+"/models/pad?v=2", dir)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(path) != "pad.gltf" {
		t.Errorf("Expected pad.gltf, got %s", filepath.Base(path))
	}
	if n != int64(len(body)) {
		t.Errorf("Expected %d bytes, got %d", len(body), n)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != string(body) {
		t.Errorf("Expected saved body %q, got %q (err %v)", body, data, err)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, _, err := Download(context.Background(), srv.URL+"/pad.glb", t.TempDir()); err == nil {
		t.Fatal("Expected an error for HTTP 404")
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("my pad (v2)"); got != "my_pad_v2_" {
		t.Errorf("Expected my_pad_v2_, got %s", got)
	}
	if got := sanitizeFilename(""); got != "model" {
		t.Errorf("Expected model, got %s", got)
	}
}
