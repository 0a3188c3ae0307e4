package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	googleAPI = "https://api.github.com/repos/google/fonts/contents/ofl"
	// googleRaw is the only host font files are downloaded from.
	googleRaw = "https://raw.githubusercontent.com/google/fonts/"
)

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Catalog installs font families from the google/fonts repository.
type Catalog struct {
	API       string
	RawPrefix string
	Client    *http.Client
}

// NewCatalog returns a catalog pointed at GitHub.
func NewCatalog() *Catalog {
	return &Catalog{
		API:       googleAPI,
		RawPrefix: googleRaw,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeFamily converts a display name to the ofl folder names to try:
// "Inter" -> ["inter"], "Open Sans" -> ["opensans", "open-sans"].
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

func (c *Catalog) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	return c.Client.Do(req)
}

// DownloadURL returns the raw URL of a font file in an ofl folder. Upright files win
// over italics.
func (c *Catalog) DownloadURL(ctx context.Context, folder string) (string, error) {
	resp, err := c.get(ctx, c.API+"/"+url.PathEscape(folder))
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fonts: %q not found on Google Fonts: %w", folder, os.ErrNotExist)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	var fallback string
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if f.Type != "file" || !isFontName(lower) || !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("fonts: no font file for %q: %w", folder, os.ErrNotExist)
}

func isFontName(name string) bool {
	for _, e := range Exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// Install downloads family into destDir/<folder>/ and returns the saved path.
func (c *Catalog) Install(ctx context.Context, family, destDir string) (string, error) {
	candidates := NormalizeFamily(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := c.DownloadURL(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		return c.save(ctx, u, filepath.Join(destDir, folder))
	}
	return "", lastErr
}

func (c *Catalog) save(ctx context.Context, u, dir string) (string, error) {
	resp, err := c.get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: HTTP %d", resp.StatusCode)
	}
	name, err := url.PathUnescape(path.Base(u))
	if err != nil || name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("fonts: bad file name in %s", u)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(name))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("fonts: %w", err)
	}
	return dest, nil
}
