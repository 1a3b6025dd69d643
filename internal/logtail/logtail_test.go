package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

// markPalette wraps each part in visible markers so tests do not depend on
// terminal color detection.
func markPalette() Palette {
	mark := func(tag string) lipgloss.Style {
		return lipgloss.NewStyle().Transform(func(s string) string {
			return "<" + tag + ">" + s + "</" + tag + ">"
		})
	}
	return Palette{
		Timestamp: mark("ts"),
		Debug:     mark("debug"),
		Info:      mark("info"),
		Warn:      mark("warn"),
		Error:     mark("error"),
		Key:       mark("key"),
	}
}

func TestColorize(t *testing.T) {
	p := markPalette()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty line",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "   ",
		},
		{
			name:     "info with fields",
			input:    "2026-01-02 15:04:05 INFO keychains fetched count=2",
			expected: "<ts>2026-01-02 15:04:05</ts> <info>INFO</info> keychains fetched <key>count=</key>2",
		},
		{
			name:     "error level abbreviation",
			input:    "2026-01-02 15:04:05 ERRO load failed",
			expected: "<ts>2026-01-02 15:04:05</ts> <error>ERRO</error> load failed",
		},
		{
			name:     "debug without message",
			input:    "2026-01-02 15:04:05 DEBU",
			expected: "<ts>2026-01-02 15:04:05</ts> <debug>DEBU</debug>",
		},
		{
			name:     "unrecognized line",
			input:    "panic: something odd",
			expected: "panic: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Colorize(tt.input, p); got != tt.expected {
				t.Errorf("Colorize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestColorizeLines(t *testing.T) {
	p := markPalette()
	input := []string{
		"2026-01-02 15:04:05 WARN slow",
		"plain",
	}
	expected := []string{
		"<ts>2026-01-02 15:04:05</ts> <warn>WARN</warn> slow",
		"plain",
	}

	result := ColorizeLines(input, p)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("ColorizeLines() = %q, want %q", result, expected)
	}
}
