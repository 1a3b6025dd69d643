package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightdeck/internal/config"
)

const (
	fieldEndpoint = iota
	fieldAPIKey
	fieldMapToken
	fieldCount
)

var settingsLabels = [fieldCount]string{
	"Endpoint:  ",
	"API key:   ",
	"Map token: ",
}

// settingsSavedMsg carries settings written by the settings modal.
type settingsSavedMsg struct {
	settings config.Settings
}

// settingsModal edits the three service settings.
type settingsModal struct {
	path     string
	inputs   [fieldCount]textinput.Model
	focusIdx int
	err      string
}

func newSettingsModal(path string, current config.Settings) settingsModal {
	endpoint := textinput.New()
	endpoint.Placeholder = "https://dev.dji.com/openapi/v1/flight-records/keychains"
	endpoint.CharLimit = 256
	endpoint.Width = 50
	endpoint.SetValue(current.Endpoint)

	apiKey := textinput.New()
	apiKey.Placeholder = "DJI developer API key"
	apiKey.CharLimit = 128
	apiKey.Width = 50
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.SetValue(current.APIKey)

	mapToken := textinput.New()
	mapToken.Placeholder = "Mapbox access token"
	mapToken.CharLimit = 256
	mapToken.Width = 50
	mapToken.EchoMode = textinput.EchoPassword
	mapToken.SetValue(current.MapToken)

	s := settingsModal{
		path:   path,
		inputs: [fieldCount]textinput.Model{endpoint, apiKey, mapToken},
	}
	s.inputs[0].Focus()
	return s
}

func (s settingsModal) values() config.Settings {
	return config.Settings{
		Endpoint: strings.TrimSpace(s.inputs[fieldEndpoint].Value()),
		APIKey:   strings.TrimSpace(s.inputs[fieldAPIKey].Value()),
		MapToken: strings.TrimSpace(s.inputs[fieldMapToken].Value()),
	}
}

func (s *settingsModal) focus(idx int) {
	s.inputs[s.focusIdx].Blur()
	s.focusIdx = (idx + fieldCount) % fieldCount
	s.inputs[s.focusIdx].Focus()
}

func (s settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Escape):
			return s, nil, true

		case key.Matches(msg, keys.Confirm):
			values := s.values()
			if err := config.Save(s.path, values); err != nil {
				s.err = err.Error()
				return s, nil, false
			}
			return s, func() tea.Msg { return settingsSavedMsg{settings: values} }, true

		case key.Matches(msg, keys.Tab), msg.String() == "down":
			s.focus(s.focusIdx + 1)
			return s, nil, false

		case key.Matches(msg, keys.ShiftTab), msg.String() == "up":
			s.focus(s.focusIdx - 1)
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focusIdx], cmd = s.inputs[s.focusIdx].Update(msg)
	return s, cmd, false
}

func (s settingsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Changes apply to the next load."))
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := settingsLabels[i]
		if i == s.focusIdx {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	if s.err != "" {
		b.WriteString(styles.DangerText.Render(s.err))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next  •  Esc: Cancel"))

	return placeModal(theme, width, height, settingsModalWidth, b.String())
}
