package ui

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/flightdeck/internal/config"
	"github.com/five82/flightdeck/internal/flightdata"
	"github.com/five82/flightdeck/internal/loader"
	"github.com/five82/flightdeck/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	Logger          *log.Logger
	Decoder         loader.Decoder
	Settings        config.Settings
	SettingsPath    string
	SettingsUpdates <-chan config.Settings
	Prefs           prefs.Prefs
	PrefsPath       string
	LogPath         string
	InitialFile     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx             context.Context
	logger          *log.Logger
	decoder         loader.Decoder
	program         *programRef
	settings        config.Settings
	settingsPath    string
	settingsUpdates <-chan config.Settings
	prefs           prefs.Prefs
	prefsPath       string
	logPath         string
	initialFile     string
	keys            keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string
	modal    Modal
	spinner  spinner.Model
	spinning bool

	// Load state
	load        *loader.Loader
	loadSeq     int
	pendingPick *pickRequestMsg // waits for another modal to close

	// Flight state
	flight        *flightdata.FlightData
	flightSummary flightdata.Summary
	frameViewport viewport.Model

	// Log overlay
	showLogs    bool
	logLines    []string
	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = config.DefaultPath()
	}

	theme := GetTheme(themeName)
	opts.Prefs.Theme = theme.Name

	return Model{
		ctx:             ctx,
		logger:          logger.With("component", "ui"),
		decoder:         opts.Decoder,
		program:         &programRef{},
		settings:        opts.Settings,
		settingsPath:    settingsPath,
		settingsUpdates: opts.SettingsUpdates,
		prefs:           opts.Prefs,
		prefsPath:       prefsPath,
		logPath:         opts.LogPath,
		initialFile:     opts.InitialFile,
		keys:            DefaultKeyMap(),
		theme:           theme,
		spinner:         newSpinner(theme),
	}
}

func newSpinner(theme Theme) spinner.Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = theme.Styles().AccentText
	return s
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.initialFile != "" {
		cmds = append(cmds, readDroppedCmd(m.initialFile))
	}
	if m.settingsUpdates != nil {
		cmds = append(cmds, waitForSettings(m.settingsUpdates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Every message, the loader's wake included,
// polls the active load before it is handled.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.pollLoad()

	next, cmd := m.handle(msg)
	if spin := next.syncSpinner(); spin != nil {
		cmd = tea.Batch(cmd, spin)
	}
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateFrameViewport()
		m.updateLogViewport()
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case wakeMsg:
		return m, nil

	case pickRequestMsg:
		if m.load == nil || msg.seq != m.loadSeq {
			// The load that asked has been replaced.
			msg.reply <- pickResult{}
			return m, nil
		}
		if m.modal != nil {
			m.pendingPick = &msg
			return m, nil
		}
		return m, m.openPicker(msg)

	case pickedMsg:
		m.rememberDir(msg.path)
		return m, nil

	case droppedFileMsg:
		if msg.err != nil {
			m.logger.Warn("dropped file unreadable", "path", msg.path, "err", msg.err)
			m.notice = msg.err.Error()
			return m, nil
		}
		m.logger.Info("file dropped", "path", msg.path, "size", len(msg.data))
		m.rememberDir(msg.path)
		m.startBytesLoad(filepath.Base(msg.path), msg.data)
		return m, nil

	case settingsSavedMsg:
		m.settings = msg.settings
		m.logger.Info("settings saved", "path", m.settingsPath)
		return m, nil

	case settingsUpdateMsg:
		m.settings = msg.settings
		m.logger.Info("settings reloaded", "path", m.settingsPath)
		return m, waitForSettings(m.settingsUpdates)

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(m.readLogsCmd(), logTickCmd())
	}

	// Anything else (file picker directory reads, cursor blinks) belongs to
	// the open modal.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// syncSpinner starts the spinner tick loop when a busy status appears. The
// loop stops itself once the status moves on.
func (m *Model) syncSpinner() tea.Cmd {
	busy := m.loadBusy()
	if busy && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	if !busy {
		m.spinning = false
	}
	return nil
}

func (m Model) updateModal(msg tea.Msg) (Model, tea.Cmd) {
	modal, cmd, done := m.modal.Update(msg, m.keys)
	if !done {
		m.modal = modal
		return m, cmd
	}
	m.modal = nil
	if req := m.pendingPick; req != nil {
		m.pendingPick = nil
		cmd = tea.Batch(cmd, m.openPicker(*req))
	}
	return m, cmd
}

func (m *Model) openPicker(req pickRequestMsg) tea.Cmd {
	picker, cmd := newPickerModal(m.prefs.StartDir(), req.reply, m.width, m.height)
	m.modal = picker
	return cmd
}

// cancelPicker closes an open or pending file prompt, releasing the goroutine
// that waits on it.
func (m *Model) cancelPicker() {
	if p, ok := m.modal.(pickerModal); ok {
		p.answer(pickResult{})
		m.modal = nil
	}
	if req := m.pendingPick; req != nil {
		req.reply <- pickResult{}
		m.pendingPick = nil
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if overlay := m.renderLoadModal(); overlay != "" {
		return overlay
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	content := m.renderFlight()
	if m.showLogs {
		content = m.renderLogs()
	}
	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + content
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The load overlay is modal: only dismissal and quit get through.
	if m.loadModalOpen() {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case m.loadDismissable() && (key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Escape)):
			m.dismissLoadError()
		}
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.Paste {
		if path, ok := pastedPath(string(msg.Runes)); ok {
			return m, readDroppedCmd(path)
		}
		m.notice = "pasted text is not a file"
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().AccentText
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.startPickerLoad()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.modal = newSettingsModal(m.settingsPath, m.settings)
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tea.Batch(m.readLogsCmd(), logTickCmd())
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.showLogs = false
		m.notice = ""
		return m, nil
	}

	m.scroll(msg)
	return m, nil
}

// scroll moves the visible viewport.
func (m *Model) scroll(msg tea.KeyMsg) {
	vp := &m.frameViewport
	if m.showLogs {
		vp = &m.logViewport
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfPageDown()
	}
}

// settingsUpdateMsg carries settings reloaded after an outside edit.
type settingsUpdateMsg struct {
	settings config.Settings
}

func waitForSettings(updates <-chan config.Settings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return settingsUpdateMsg{settings: s}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.program.send = p.Send
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
