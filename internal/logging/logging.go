// Package logging builds the charmbracelet/log logger shared by flightdeck.
// The TUI owns the terminal, so interactive runs log to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/flightdeck/internal/config"
)

const (
	defaultLogPath = "~/.local/state/flightdeck/flightdeck.log"

	// MaxLogBytes is the size at which Open rotates the log aside.
	MaxLogBytes = 5 << 20
)

// Options configures New.
type Options struct {
	Writer     io.Writer
	Level      string
	TimeFormat string
	Formatter  log.Formatter
	Component  string
}

// DefaultPath returns the default log file path.
func DefaultPath() string {
	return defaultLogPath
}

// New creates a logger with the supplied options.
func New(opts Options) (*log.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05"
	}

	logger := log.NewWithOptions(writer, log.Options{
		Level:           level,
		TimeFormat:      timeFormat,
		ReportTimestamp: true,
		Formatter:       opts.Formatter,
	})
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}
	return logger, nil
}

// Open opens the log file at path for appending, rotating it to path.old
// once it grows past MaxLogBytes. An empty path selects DefaultPath.
func Open(path string) (*os.File, string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultLogPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	rotate(resolved, MaxLogBytes)

	file, err := os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open log: %w", err)
	}
	return file, resolved, nil
}

func rotate(path string, maxBytes int64) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxBytes {
		return
	}
	old := path + ".old"
	_ = os.Remove(old)
	_ = os.Rename(path, old)
}
