package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "viewer.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local) }

	l.Log("asset ready")
	l.Logf("scroll y=%d", 120)

	lines := l.Lines()
	if len(lines) != 2 || lines[0] != "[2024-01-01 12:00:00] asset ready" {
		t.Fatalf("Unexpected lines %q", lines)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), "scroll y=120\n") {
		t.Errorf("Expected formatted line in file, got %q", data)
	}
}

func TestTailAndCap(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+10; i++ {
		l.Logf("line %d", i)
	}
	if n := len(l.Lines()); n != maxLines {
		t.Errorf("Expected %d lines kept, got %d", maxLines, n)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || !strings.HasSuffix(tail[1], "line 265") {
		t.Errorf("Unexpected tail %q", tail)
	}
}
