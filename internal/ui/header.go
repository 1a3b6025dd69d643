package ui

import (
	"github.com/dustin/go-humanize"

	"github.com/five82/flightdeck/internal/loader"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("flightdeck", styles.Logo)}

	if m.load != nil && m.load.Status().Kind != loader.WaitingForInput {
		kind := m.load.Status().Kind.String()
		parts = append(parts, styles.StatusStyle(kind).Render(kind))
	}

	if m.flight != nil {
		parts = append(parts,
			bg.Render(truncateMiddle(m.flight.FileName, 40), styles.Text),
			bg.Render(humanize.Comma(int64(m.flightSummary.Frames))+" frames", styles.MutedText),
		)
	}

	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, maxInt(m.width/2, 20)), styles.WarningText))
	}

	if m.settings.APIKey == "" {
		parts = append(parts, bg.Render("no API key", styles.FaintText))
	}

	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"o", "Open"},
		{"s", "Settings"},
		{"L", "Log"},
	}
	if m.flight != nil && !m.showLogs {
		commands = append(commands, cmd{"j/k", "Scroll"})
	}
	commands = append(commands, cmd{"?", "Help"}, cmd{"e", "Quit"})

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}
	segments = append(segments, bg.Hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}
