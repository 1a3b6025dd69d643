package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Palette styles the parts of a log line.
type Palette struct {
	Timestamp lipgloss.Style
	Debug     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Key       lipgloss.Style
}

// Colorize styles one line written by the text formatter:
//
//	2026-01-02 15:04:05 INFO keychains fetched load=... count=2
//
// Lines that do not match are returned unchanged.
func Colorize(line string, p Palette) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	date, rest, ok := strings.Cut(line, " ")
	if !ok {
		return line
	}
	clock, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return line
	}
	level, msg, _ := strings.Cut(rest, " ")
	levelStyle, ok := levelStyle(level, p)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(p.Timestamp.Render(date + " " + clock))
	b.WriteByte(' ')
	b.WriteString(levelStyle.Render(level))
	if msg != "" {
		b.WriteByte(' ')
		b.WriteString(colorizeFields(msg, p.Key))
	}
	return b.String()
}

// ColorizeLines applies Colorize to every line.
func ColorizeLines(lines []string, p Palette) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(line, p)
	}
	return out
}

func levelStyle(level string, p Palette) (lipgloss.Style, bool) {
	switch level {
	case "DEBU", "DEBUG":
		return p.Debug, true
	case "INFO":
		return p.Info, true
	case "WARN":
		return p.Warn, true
	case "ERRO", "ERROR", "FATA", "FATAL":
		return p.Error, true
	default:
		return lipgloss.Style{}, false
	}
}

func colorizeFields(msg string, key lipgloss.Style) string {
	words := strings.Split(msg, " ")
	for i, word := range words {
		name, value, ok := strings.Cut(word, "=")
		if !ok || name == "" {
			continue
		}
		words[i] = key.Render(name+"=") + value
	}
	return strings.Join(words, " ")
}
