package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_JSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Level:     "debug",
		Formatter: log.JSONFormatter,
		Component: "loader",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("decoded", "frames", 12)

	line := strings.TrimSpace(buf.String())
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	if payload["component"] != "loader" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["msg"] != "decoded" {
		t.Fatalf("expected message, got %v", payload["msg"])
	}
	if fmt.Sprint(payload["frames"]) != "12" {
		t.Fatalf("expected frames=12, got %v", payload["frames"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "WARN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info line written at warn level: %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOpen_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "flightdeck.log")

	file, resolved, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer file.Close()

	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}

func TestOpen_RotatesLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightdeck.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), MaxLogBytes+1), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	file, _, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer file.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("new log size = %d, want 0", info.Size())
	}
	if _, err := os.Stat(path + ".old"); err != nil {
		t.Fatalf("rotated log missing: %v", err)
	}
}
