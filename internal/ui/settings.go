package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
)

// settingsField indexes the editable settings inputs.
type settingsField int

const (
	sfWelcome settingsField = iota
	sfPlaceholder
	sfSystemPrompt
	sfModel
	sfTemperature
	sfCount
)

func (f settingsField) label() string {
	switch f {
	case sfWelcome:
		return "Welcome message"
	case sfPlaceholder:
		return "Placeholder"
	case sfSystemPrompt:
		return "System prompt"
	case sfModel:
		return "Model"
	case sfTemperature:
		return "Temperature"
	default:
		return ""
	}
}

// settingsModel edits the selected agent's chatbot settings.
type settingsModel struct {
	styles   *Styles
	inputs   [sfCount]textinput.Model
	focus    settingsField
	editing  bool
	loaded   bool
	settings api.Settings
	confirm  bool // reset confirmation pending
}

func newSettingsModel(styles *Styles) settingsModel {
	m := settingsModel{styles: styles}
	for f := sfWelcome; f < sfCount; f++ {
		in := textinput.New()
		in.CharLimit = 500
		in.Placeholder = f.label()
		m.inputs[f] = in
	}
	return m
}

func (m settingsModel) capturing() bool {
	return m.editing
}

func (m settingsModel) update(msg tea.Msg, d *Dashboard) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		d.busy = false
		m.loaded = true
		if msg.settings != nil {
			m.settings = *msg.settings
			m.fillInputs()
		}
		return m, nil

	case settingsSavedMsg:
		d.busy = false
		if msg.settings != nil {
			m.settings = *msg.settings
			m.fillInputs()
		}
		d.toasts.ShowSuccess("settings saved")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, d)
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m settingsModel) handleKey(msg tea.KeyMsg, d *Dashboard) (settingsModel, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "esc", "enter":
			m.inputs[m.focus].Blur()
			m.editing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
		m.confirm = false
	case "down", "j":
		if m.focus < sfCount-1 {
			m.focus++
		}
		m.confirm = false
	case "enter":
		m.inputs[m.focus].Focus()
		m.editing = true
		m.confirm = false
	case "s":
		if d.current == nil {
			return m, nil
		}
		settings, err := m.collect()
		if err != nil {
			d.toasts.ShowError(err.Error())
			return m, nil
		}
		d.busy = true
		return m, saveSettingsCmd(d.client, d.current.ID, settings)
	case "R":
		if d.current == nil {
			return m, nil
		}
		if m.confirm {
			m.confirm = false
			d.busy = true
			return m, resetSettingsCmd(d.client, d.current.ID)
		}
		m.confirm = true
		d.toasts.ShowWarning("press R again to reset to defaults")
	case "r":
		if d.current != nil {
			d.busy = true
			return m, loadSettingsCmd(d.client, d.current.ID)
		}
	}
	return m, nil
}

func (m *settingsModel) fillInputs() {
	m.inputs[sfWelcome].SetValue(m.settings.WelcomeMessage)
	m.inputs[sfPlaceholder].SetValue(m.settings.PlaceholderMessage)
	m.inputs[sfSystemPrompt].SetValue(m.settings.SystemPrompt)
	m.inputs[sfModel].SetValue(m.settings.ModelName)
	if m.settings.Temperature > 0 {
		m.inputs[sfTemperature].SetValue(strconv.FormatFloat(m.settings.Temperature, 'f', -1, 64))
	}
}

// collect rebuilds a Settings from the inputs, validating numeric fields.
func (m *settingsModel) collect() (api.Settings, error) {
	out := m.settings
	out.WelcomeMessage = strings.TrimSpace(m.inputs[sfWelcome].Value())
	out.PlaceholderMessage = strings.TrimSpace(m.inputs[sfPlaceholder].Value())
	out.SystemPrompt = strings.TrimSpace(m.inputs[sfSystemPrompt].Value())
	out.ModelName = strings.TrimSpace(m.inputs[sfModel].Value())

	raw := strings.TrimSpace(m.inputs[sfTemperature].Value())
	if raw != "" {
		temp, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, fmt.Errorf("temperature must be a number")
		}
		if temp < 0 || temp > 2 {
			return out, fmt.Errorf("temperature must be between 0 and 2")
		}
		out.Temperature = temp
	}
	return out, nil
}

func (m settingsModel) view(width, height int, d *Dashboard) string {
	if !m.loaded {
		return m.styles.Muted.Render("loading settings...")
	}

	var b strings.Builder
	for f := sfWelcome; f < sfCount; f++ {
		label := m.styles.Label.Render(f.label())
		if f == m.focus {
			label = m.styles.Selected.Render(f.label())
		}
		b.WriteString(label + "\n" + m.inputs[f].View() + "\n\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ field · enter edit · s save · R reset · r reload"))
	return b.String()
}
