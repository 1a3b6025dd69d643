package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flightdeck/internal/logtail"
)

// logTailMsg carries freshly read log lines.
type logTailMsg struct {
	lines []string
	err   error
}

// logTickMsg schedules the next overlay refresh.
type logTickMsg time.Time

func (m Model) readLogsCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func (m Model) logPalette() logtail.Palette {
	styles := m.theme.Styles()
	return logtail.Palette{
		Timestamp: styles.FaintText,
		Debug:     styles.InfoText.Bold(true),
		Info:      styles.SuccessText,
		Warn:      styles.WarningText.Bold(true),
		Error:     styles.DangerText,
		Key:       styles.MutedText,
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	if msg.err != nil {
		m.logLines = []string{"log unavailable: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	w, h := maxInt(m.width-4, 10), maxInt(m.height-chromeHeight-2, 3)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(strings.Join(logtail.ColorizeLines(m.logLines, m.logPalette()), "\n"))
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log overlay in a bordered box.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Log"
	if m.logPath != "" {
		title += "  " + truncateMiddle(m.logPath, maxInt(m.width-12, 10))
	}
	if len(m.logLines) == 0 {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
			Width(maxInt(m.width-2, 10)).
			Render(styles.AccentText.Render(title) + "\n" + styles.MutedText.Render("No log lines yet."))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(styles.AccentText.Render(title) + "\n" + m.logViewport.View())
}
