package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/flightdeck/internal/flightdata"
)

// summaryHeight is the rows above the frame table: title, two summary
// lines, the map line and a blank separator.
const summaryHeight = 5

// showFlight makes record the displayed flight.
func (m *Model) showFlight(record *flightdata.FlightData) {
	m.flight = record
	m.flightSummary = record.Summary()
	m.logger.Info("flight shown", "file", record.FileName, "frames", m.flightSummary.Frames)
	m.updateFrameViewport()
	m.frameViewport.GotoTop()
}

func (m *Model) frameViewportSize() (int, int) {
	return maxInt(m.width-2, 10), maxInt(m.height-chromeHeight-summaryHeight-1, 3)
}

func (m *Model) updateFrameViewport() {
	w, h := m.frameViewportSize()
	if m.frameViewport.Width == 0 {
		m.frameViewport = viewport.New(w, h)
	}
	m.frameViewport.Width = w
	m.frameViewport.Height = h
	if m.flight != nil {
		m.frameViewport.SetContent(m.renderFrameRows())
	}
}

// renderFlight renders the loaded flight or the empty state.
func (m Model) renderFlight() string {
	styles := m.theme.Styles()
	if m.flight == nil {
		hint := styles.MutedText.Render("Press ") +
			styles.AccentText.Render("o") +
			styles.MutedText.Render(" to open a flight log, or paste its path.")
		return lipgloss.Place(m.width, maxInt(m.height-chromeHeight, 1), lipgloss.Center, lipgloss.Center, hint)
	}

	s := m.flightSummary
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.flight.FileName))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Frames ") + styles.Text.Render(humanize.Comma(int64(s.Frames))))
	b.WriteString(styles.MutedText.Render("   Distance ") + styles.Text.Render(humanize.SIWithDigits(s.Distance, 2, "m")))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Max altitude ") + styles.Text.Render(humanize.FtoaWithDigits(s.MaxAltitude, 1)+" m"))
	b.WriteString(styles.MutedText.Render("   Max speed ") + styles.Text.Render(humanize.FtoaWithDigits(s.MaxSpeed, 1)+" m/s"))
	b.WriteString("\n")
	b.WriteString(m.renderMapLine(styles))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render(m.frameTableHeader()))
	b.WriteString("\n")
	b.WriteString(m.frameViewport.View())
	return b.String()
}

func (m Model) renderMapLine(styles Styles) string {
	if m.settings.MapToken == "" {
		return styles.FaintText.Render("Map: set a map token in settings (s)")
	}
	mapURL := m.flight.StaticMapURL(m.settings.MapToken)
	if mapURL == "" {
		return styles.FaintText.Render("Map: no GPS fix in this flight")
	}
	return styles.MutedText.Render("Map ") + styles.InfoText.Render(truncate(mapURL, maxInt(m.width-6, 20)))
}

type frameColumn struct {
	title string
	width int
	value func(flightdata.Frame) string
}

func (m Model) frameColumns() []frameColumn {
	cols := []frameColumn{
		{"#", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%d", f.Index) }},
		{"Latitude", 12, func(f flightdata.Frame) string { return fmt.Sprintf("%.6f", f.Latitude) }},
		{"Longitude", 12, func(f flightdata.Frame) string { return fmt.Sprintf("%.6f", f.Longitude) }},
		{"Alt m", 8, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.Altitude) }},
		{"Vx", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.SpeedX) }},
		{"Vy", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.SpeedY) }},
		{"Vz", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.SpeedZ) }},
	}
	if m.width >= LayoutAttitudeWidth {
		cols = append(cols,
			frameColumn{"Pitch", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.Pitch) }},
			frameColumn{"Roll", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.Roll) }},
			frameColumn{"Yaw", 7, func(f flightdata.Frame) string { return fmt.Sprintf("%.1f", f.Yaw) }},
		)
	}
	return cols
}

func (m Model) frameTableHeader() string {
	cols := m.frameColumns()
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = padLeft(c.title, c.width)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFrameRows() string {
	cols := m.frameColumns()
	frames := m.flight.Frames()
	lines := make([]string, len(frames))
	parts := make([]string, len(cols))
	for i, f := range frames {
		for j, c := range cols {
			parts[j] = padLeft(c.value(f), c.width)
		}
		lines[i] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}
