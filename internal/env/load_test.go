package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# viewer\nPREMIEREPAD_TEST_MODEL=\"pad.glb\"\nexport PREMIEREPAD_TEST_FPS=30\nPREMIEREPAD_TEST_KEEP=file\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PREMIEREPAD_TEST_KEEP", "shell")
	t.Setenv("PREMIEREPAD_TEST_MODEL", "")
	os.Unsetenv("PREMIEREPAD_TEST_MODEL")
	t.Setenv("PREMIEREPAD_TEST_FPS", "")
	os.Unsetenv("PREMIEREPAD_TEST_FPS")

	n, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2 variables set, got %d", n)
	}
	if got := os.Getenv("PREMIEREPAD_TEST_MODEL"); got != "pad.glb" {
		t.Errorf("Expected quotes stripped, got %q", got)
	}
	if got := os.Getenv("PREMIEREPAD_TEST_FPS"); got != "30" {
		t.Errorf("Expected export prefix handled, got %q", got)
	}
	if got := os.Getenv("PREMIEREPAD_TEST_KEEP"); got != "shell" {
		t.Errorf("Expected environment to win, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	n, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil || n != 0 {
		t.Errorf("Expected (0, nil) for missing file, got (%d, %v)", n, err)
	}
}
