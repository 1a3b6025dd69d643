package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightdeck/internal/loader"
)

// flightLogTypes are the extensions the file prompt offers.
var flightLogTypes = []string{".txt"}

// filePrompt implements loader.Picker on top of the event loop. Pick runs on
// the load goroutine: it asks the loop to show the picker modal, then blocks
// until the user chooses or cancels.
type filePrompt struct {
	program *programRef
	seq     int
}

type pickResult struct {
	file loader.PickedFile
	ok   bool
}

// pickRequestMsg opens the picker modal. The loop answers on reply exactly
// once. seq identifies the load that asked.
type pickRequestMsg struct {
	seq   int
	reply chan<- pickResult
}

func (p filePrompt) Pick(ctx context.Context) (loader.PickedFile, bool) {
	reply := make(chan pickResult, 1)
	p.program.Send(pickRequestMsg{seq: p.seq, reply: reply})
	select {
	case r := <-reply:
		return r.file, r.ok
	case <-ctx.Done():
		return loader.PickedFile{}, false
	}
}

// pickerModal wraps the bubbles file picker.
type pickerModal struct {
	picker filepicker.Model
	reply  chan<- pickResult
}

func newPickerModal(startDir string, reply chan<- pickResult, width, height int) (pickerModal, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = flightLogTypes
	fp.CurrentDirectory = startDir
	fp.ShowPermissions = false
	fp.ShowSize = true

	pm := pickerModal{picker: fp, reply: reply}
	// Size the list before the first directory read.
	pm.picker, _ = pm.picker.Update(tea.WindowSizeMsg{Width: width, Height: maxInt(height-8, 5)})
	return pm, pm.picker.Init()
}

// answer replies to the waiting Pick call. It is safe to call once.
func (p pickerModal) answer(r pickResult) {
	if p.reply != nil {
		p.reply <- r
	}
}

func (p pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Escape) || msg.String() == "ctrl+c" {
			p.answer(pickResult{})
			return p, nil, true
		}
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)

	if selected, path := p.picker.DidSelectFile(msg); selected {
		file, err := os.Open(path)
		if err != nil {
			p.answer(pickResult{file: loader.PickedFile{Name: filepath.Base(path), Reader: errReader{err: err}}, ok: true})
		} else {
			p.answer(pickResult{file: loader.PickedFile{Name: filepath.Base(path), Reader: file}, ok: true})
		}
		return p, pickedCmd(path), true
	}
	return p, cmd, false
}

func (p pickerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Open FlightLog"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncateMiddle(p.picker.CurrentDirectory, modalWidth)))
	b.WriteString("\n\n")
	b.WriteString(p.picker.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Open  •  Esc: Cancel"))

	return placeModal(theme, width, height, settingsModalWidth, b.String())
}

// pickedMsg reports the chosen path so the directory can be remembered.
type pickedMsg struct {
	path string
}

func pickedCmd(path string) tea.Cmd {
	return func() tea.Msg { return pickedMsg{path: path} }
}

// errReader defers an open failure to the load goroutine's read step.
type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
