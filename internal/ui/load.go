package ui

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightdeck/internal/loader"
	"github.com/five82/flightdeck/internal/prefs"
)

// programRef lets goroutines outside the event loop reach the running
// program. The send func is set once before the program starts.
type programRef struct {
	send func(tea.Msg)
}

func (r *programRef) Send(msg tea.Msg) {
	if r == nil || r.send == nil {
		return
	}
	r.send(msg)
}

// wakeMsg asks the event loop to run Update, which polls the active load.
type wakeMsg struct{}

// programWaker wakes the event loop from a load goroutine.
type programWaker struct {
	program *programRef
}

func (w programWaker) Wake() {
	w.program.Send(wakeMsg{})
}

// droppedFileMsg carries a file read on behalf of a paste or the command line.
type droppedFileMsg struct {
	path string
	data []byte
	err  error
}

func readDroppedCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return droppedFileMsg{path: path, err: fmt.Errorf("read %s: %w", filepath.Base(path), err)}
		}
		return droppedFileMsg{path: path, data: data}
	}
}

// pastedPath turns pasted text into a local file path. Terminals quote or
// escape dropped paths in different ways.
func pastedPath(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, "\n\r") {
		return "", false
	}
	if len(text) >= 2 && (text[0] == '\'' || text[0] == '"') && text[len(text)-1] == text[0] {
		text = text[1 : len(text)-1]
	}
	if strings.HasPrefix(text, "file://") {
		u, err := url.Parse(text)
		if err != nil {
			return "", false
		}
		text = u.Path
	}
	text = strings.ReplaceAll(text, `\ `, " ")
	info, err := os.Stat(text)
	if err != nil || info.IsDir() {
		return "", false
	}
	return text, true
}

func (m Model) loaderOptions() loader.Options {
	return loader.Options{
		Decoder: m.decoder,
		Settings: loader.Settings{
			Endpoint: m.settings.Endpoint,
			APIKey:   m.settings.APIKey,
		},
		Waker:  programWaker{program: m.program},
		Logger: m.logger,
	}
}

// startBytesLoad replaces the active load with one decoding data.
func (m *Model) startBytesLoad(name string, data []byte) {
	m.cancelPicker()
	m.loadSeq++
	m.load = loader.FromBytes(m.ctx, name, data, m.loaderOptions())
	m.notice = ""
}

// startPickerLoad replaces the active load with one that waits for the file
// prompt.
func (m *Model) startPickerLoad() {
	m.cancelPicker()
	m.loadSeq++
	m.load = loader.FromPicker(m.ctx, filePrompt{program: m.program, seq: m.loadSeq}, m.loaderOptions())
	m.notice = ""
}

// pollLoad adopts the latest status of the active load and acts on the
// terminal ones. It runs on every Update.
func (m *Model) pollLoad() {
	if m.load == nil {
		return
	}
	status := m.load.Poll()
	switch status.Kind {
	case loader.Success:
		if record, ok := m.load.TakeFlightData(); ok {
			m.showFlight(record)
		}
		m.load = nil
	case loader.ClosedAfterError:
		m.load = nil
	}
}

// dismissLoadError acknowledges an Error modal.
func (m *Model) dismissLoadError() {
	if m.load != nil && m.load.Dismiss() {
		m.pollLoad()
	}
}

func (m *Model) rememberDir(path string) {
	dir := filepath.Dir(path)
	if dir == "" || dir == m.prefs.LastDir {
		return
	}
	m.prefs.LastDir = dir
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.prefs)
	}
}
