package ui

import (
	"strings"

	"github.com/five82/flightdeck/internal/loader"
)

// renderLoadModal renders the overlay for the active load, or "" when its
// status calls for none.
func (m Model) renderLoadModal() string {
	if m.load == nil {
		return ""
	}
	p := loader.Present(m.load.Status())
	if !p.Modal {
		return ""
	}
	styles := m.theme.Styles()

	var b strings.Builder
	title := styles.Text.Bold(true)
	if p.Dismissable {
		title = styles.DangerText
	}
	b.WriteString(title.Render(p.Title))
	b.WriteString("\n\n")
	if p.Busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(p.Label))
	if p.Dismissable {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Render("[ " + p.Action + " ]"))
		b.WriteString(styles.FaintText.Render("  Enter/Esc"))
	}
	return placeModal(m.theme, m.width, m.height, modalWidth, b.String())
}

// loadBusy reports whether the spinner should run.
func (m Model) loadBusy() bool {
	return m.load != nil && loader.Present(m.load.Status()).Busy
}

// loadModalOpen reports whether the active load shows an overlay.
func (m Model) loadModalOpen() bool {
	return m.load != nil && loader.Present(m.load.Status()).Modal
}

// loadDismissable reports whether the overlay is an error awaiting dismissal.
func (m Model) loadDismissable() bool {
	return m.load != nil && loader.Present(m.load.Status()).Dismissable
}
