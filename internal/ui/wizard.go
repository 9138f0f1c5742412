package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"agentdeck/internal/api"
	"agentdeck/internal/commit"
	"agentdeck/internal/config"
	"agentdeck/internal/staging"
	"agentdeck/internal/webmeta"
)

// wizardFocus identifies the active control on the wizard page.
type wizardFocus int

const (
	wfName wizardFocus = iota
	wfModel
	wfSource
	wfCreate
	wfItems
)

// sourceTab selects which staging form is shown.
type sourceTab int

const (
	tabFile sourceTab = iota
	tabText
	tabWebsite
)

func (t sourceTab) label() string {
	switch t {
	case tabFile:
		return "File"
	case tabText:
		return "Text"
	default:
		return "Website"
	}
}

// wizardModel is the create-agent page: the draft form, one staging form per
// source kind, and the side panel listing everything staged so far. Commit
// progress streams in over a channel while uploads run.
type wizardModel struct {
	styles  *Styles
	cfg     *config.Config
	client  *api.Client
	session *staging.Session

	focus  wizardFocus
	tab    sourceTab
	cursor int // selected row in the items panel

	nameInput    textinput.Model
	modelInput   textinput.Model
	patternInput textinput.Model
	textName     textinput.Model
	textBody     textarea.Model
	urlInput     textinput.Model
	textSubfocus int // 0 = name, 1 = body

	committing bool
	commitCh   chan tea.Msg
	state      commit.State
	itemDone   map[string]error
	lastResult *commit.Result
}

func newWizardModel(styles *Styles, cfg *config.Config, client *api.Client, session *staging.Session) wizardModel {
	name := textinput.New()
	name.Placeholder = "agent name"
	name.CharLimit = 120
	name.SetValue(session.Draft().Name)
	name.Focus()

	model := textinput.New()
	model.Placeholder = "model"
	model.CharLimit = 60
	model.SetValue(session.Draft().Model)

	pattern := textinput.New()
	pattern.Placeholder = "docs/**/*.pdf"

	textName := textinput.New()
	textName.Placeholder = "snippet name"
	textName.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "paste text to stage..."
	body.SetHeight(5)

	url := textinput.New()
	url.Placeholder = "https://example.com/docs"

	return wizardModel{
		styles:       styles,
		cfg:          cfg,
		client:       client,
		session:      session,
		nameInput:    name,
		modelInput:   model,
		patternInput: pattern,
		textName:     textName,
		textBody:     body,
		urlInput:     url,
		itemDone:     map[string]error{},
	}
}

// capturing reports whether a text control owns the keyboard.
func (m wizardModel) capturing() bool {
	if m.committing {
		return false
	}
	switch m.focus {
	case wfName, wfModel, wfSource:
		return true
	default:
		return false
	}
}

func (m wizardModel) update(msg tea.Msg, d *Dashboard) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case commitStateMsg:
		m.state = msg.state
		return m, waitMsg(m.commitCh)

	case commitItemMsg:
		m.itemDone[msg.result.ItemID] = msg.result.Err
		return m, waitMsg(m.commitCh)

	case commitFinishedMsg:
		m.committing = false
		m.lastResult = msg.result
		if msg.result != nil && msg.result.Agent != nil {
			d.current = msg.result.Agent
		}
		if msg.err != nil {
			d.toasts.ShowError(msg.err.Error())
			return m, nil
		}
		d.toasts.ShowSuccess("agent created: " + msg.result.Agent.Name)
		m.nameInput.SetValue(m.session.Draft().Name)
		m.modelInput.SetValue(m.session.Draft().Model)
		return m, loadAgentsCmd(d.client)

	case titleFetchedMsg:
		m.session.Add(staging.NewWebsiteItem(uuid.NewString(), msg.title, msg.url))
		d.toasts.ShowSuccess("staged " + msg.title)
		return m, nil

	case tea.KeyMsg:
		if m.committing {
			return m, nil
		}
		return m.handleKey(msg, d)
	}

	// Non-key messages (cursor blinks) flow to every input
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.modelInput, cmd = m.modelInput.Update(msg)
	cmds = append(cmds, cmd)
	m.patternInput, cmd = m.patternInput.Update(msg)
	cmds = append(cmds, cmd)
	m.textName, cmd = m.textName.Update(msg)
	cmds = append(cmds, cmd)
	m.textBody, cmd = m.textBody.Update(msg)
	cmds = append(cmds, cmd)
	m.urlInput, cmd = m.urlInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m wizardModel) handleKey(msg tea.KeyMsg, d *Dashboard) (wizardModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.advanceFocus(true)
		return m, nil
	case "shift+tab":
		m.advanceFocus(false)
		return m, nil
	case "esc":
		m.blurAll()
		m.focus = wfCreate
		return m, nil
	}

	switch m.focus {
	case wfName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.session.SetAgentName(strings.TrimSpace(m.nameInput.Value()))
		return m, cmd

	case wfModel:
		var cmd tea.Cmd
		m.modelInput, cmd = m.modelInput.Update(msg)
		if v := strings.TrimSpace(m.modelInput.Value()); v != "" {
			m.session.SetAgentModel(v)
		}
		return m, cmd

	case wfSource:
		return m.handleSourceKey(msg, d)

	case wfCreate:
		switch msg.String() {
		case "enter":
			return m.startCommit(d)
		case "left", "h":
			m.focus = wfSource
			m.applyFocus()
		case "right", "l", "down", "j":
			m.focus = wfItems
		}
		return m, nil

	case wfItems:
		return m.handleItemsKey(msg, d)
	}

	return m, nil
}

func (m wizardModel) handleSourceKey(msg tea.KeyMsg, d *Dashboard) (wizardModel, tea.Cmd) {
	// Tab switching only from single-line inputs, where arrows are free
	if m.tab != tabText || m.textSubfocus == 0 {
		switch msg.String() {
		case "ctrl+left":
			if m.tab > tabFile {
				m.tab--
				m.applyFocus()
			}
			return m, nil
		case "ctrl+right":
			if m.tab < tabWebsite {
				m.tab++
				m.applyFocus()
			}
			return m, nil
		}
	}

	switch m.tab {
	case tabFile:
		if msg.String() == "enter" {
			return m.stageFiles(d)
		}
		var cmd tea.Cmd
		m.patternInput, cmd = m.patternInput.Update(msg)
		return m, cmd

	case tabText:
		switch msg.String() {
		case "enter":
			if m.textSubfocus == 0 {
				m.textSubfocus = 1
				m.applyFocus()
				return m, nil
			}
		case "ctrl+s":
			return m.stageText(d)
		}
		var cmd tea.Cmd
		if m.textSubfocus == 0 {
			m.textName, cmd = m.textName.Update(msg)
		} else {
			m.textBody, cmd = m.textBody.Update(msg)
		}
		return m, cmd

	default: // tabWebsite
		if msg.String() == "enter" {
			return m.stageWebsite(d)
		}
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}
}

func (m wizardModel) handleItemsKey(msg tea.KeyMsg, d *Dashboard) (wizardModel, tea.Cmd) {
	items := m.session.Items()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "x", "backspace":
		if m.cursor < len(items) {
			removed := items[m.cursor]
			m.session.Remove(removed.ID())
			if m.cursor > 0 && m.cursor >= len(items)-1 {
				m.cursor--
			}
			d.toasts.ShowInfo("unstaged " + removed.Name())
		}
	case "C":
		m.session.ClearAll()
		m.cursor = 0
		m.nameInput.SetValue(m.session.Draft().Name)
		m.modelInput.SetValue(m.session.Draft().Model)
		d.toasts.ShowInfo("staging cleared")
	case "enter":
		return m.startCommit(d)
	case "left":
		m.focus = wfCreate
	}
	return m, nil
}

func (m *wizardModel) stageFiles(d *Dashboard) (wizardModel, tea.Cmd) {
	pattern := strings.TrimSpace(m.patternInput.Value())
	if pattern == "" {
		return *m, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		d.toasts.ShowError("bad pattern: " + err.Error())
		return *m, nil
	}
	if len(matches) == 0 {
		d.toasts.ShowWarning("no files match " + pattern)
		return *m, nil
	}

	staged := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		m.session.Add(staging.NewFileItem(uuid.NewString(), filepath.Base(path), path, info.Size()))
		staged++
	}

	m.patternInput.SetValue("")
	d.toasts.ShowSuccess(fmt.Sprintf("staged %d file(s)", staged))
	return *m, nil
}

func (m *wizardModel) stageText(d *Dashboard) (wizardModel, tea.Cmd) {
	name := strings.TrimSpace(m.textName.Value())
	body := strings.TrimSpace(m.textBody.Value())
	if name == "" || body == "" {
		d.toasts.ShowWarning("text sources need a name and a body")
		return *m, nil
	}

	m.session.Add(staging.NewTextItem(uuid.NewString(), name, body))
	m.textName.SetValue("")
	m.textBody.SetValue("")
	m.textSubfocus = 0
	m.applyFocus()
	d.toasts.ShowSuccess("staged " + name)
	return *m, nil
}

func (m *wizardModel) stageWebsite(d *Dashboard) (wizardModel, tea.Cmd) {
	url := strings.TrimSpace(m.urlInput.Value())
	if err := webmeta.ValidateURL(url); err != nil {
		d.toasts.ShowError(err.Error())
		return *m, nil
	}

	m.urlInput.SetValue("")
	d.toasts.ShowInfo("fetching page title...")
	return *m, fetchTitleCmd(url)
}

func (m *wizardModel) startCommit(d *Dashboard) (wizardModel, tea.Cmd) {
	if m.session.TotalCount() == 0 {
		d.toasts.ShowWarning("stage at least one source before creating")
		return *m, nil
	}

	m.committing = true
	m.state = commit.StateIdle
	m.itemDone = map[string]error{}
	m.lastResult = nil
	m.commitCh = make(chan tea.Msg, 16)
	return *m, startCommitCmd(d.client, m.session, m.cfg.Staging.MaxConcurrentUploads, m.commitCh)
}

func (m *wizardModel) advanceFocus(forward bool) {
	order := []wizardFocus{wfName, wfModel, wfSource, wfCreate, wfItems}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(order)
	} else {
		idx = (idx + len(order) - 1) % len(order)
	}
	m.focus = order[idx]
	m.applyFocus()
}

func (m *wizardModel) blurAll() {
	m.nameInput.Blur()
	m.modelInput.Blur()
	m.patternInput.Blur()
	m.textName.Blur()
	m.textBody.Blur()
	m.urlInput.Blur()
}

func (m *wizardModel) applyFocus() {
	m.blurAll()
	switch m.focus {
	case wfName:
		m.nameInput.Focus()
	case wfModel:
		m.modelInput.Focus()
	case wfSource:
		switch m.tab {
		case tabFile:
			m.patternInput.Focus()
		case tabText:
			if m.textSubfocus == 0 {
				m.textName.Focus()
			} else {
				m.textBody.Focus()
			}
		default:
			m.urlInput.Focus()
		}
	}
}

func (m wizardModel) view(width, height int, d *Dashboard) string {
	panelWidth := width / 3
	if panelWidth < 28 {
		panelWidth = 28
	}
	formWidth := width - panelWidth - 6

	form := m.viewForm(formWidth)
	panel := m.viewPanel(panelWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Width(formWidth).Render(form),
		m.styles.Panel.Width(panelWidth).Render(panel),
	)
}

func (m wizardModel) viewForm(width int) string {
	if m.committing {
		return m.viewProgress()
	}

	var b strings.Builder

	if m.lastResult != nil {
		if failed := m.lastResult.FailedItems(); len(failed) > 0 {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf(
				"%d source(s) failed last time and are still staged", len(failed))) + "\n\n")
		}
	}

	b.WriteString(m.fieldLabel("Name", wfName) + " " + m.nameInput.View() + "\n")
	b.WriteString(m.fieldLabel("Model", wfModel) + " " + m.modelInput.View() + "\n\n")

	var tabs []string
	for t := tabFile; t <= tabWebsite; t++ {
		if t == m.tab {
			tabs = append(tabs, m.styles.TabOn.Render(t.label()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(t.label()))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + m.styles.Muted.Render("  ctrl+←/→ switch") + "\n\n")

	switch m.tab {
	case tabFile:
		b.WriteString(m.styles.Label.Render("Glob pattern") + "\n")
		b.WriteString(m.patternInput.View() + "\n")
		b.WriteString(m.styles.Help.Render("enter stages every match") + "\n")
	case tabText:
		b.WriteString(m.styles.Label.Render("Snippet name") + "\n")
		b.WriteString(m.textName.View() + "\n")
		b.WriteString(m.styles.Label.Render("Body") + "\n")
		b.WriteString(m.textBody.View() + "\n")
		b.WriteString(m.styles.Help.Render("ctrl+s stages the snippet") + "\n")
	case tabWebsite:
		b.WriteString(m.styles.Label.Render("URL") + "\n")
		b.WriteString(m.urlInput.View() + "\n")
		b.WriteString(m.styles.Help.Render("enter fetches the title and stages it") + "\n")
	}

	b.WriteString("\n")
	create := "[ Create Agent ]"
	if m.focus == wfCreate {
		b.WriteString(m.styles.Selected.Render(create))
	} else {
		b.WriteString(m.styles.Muted.Render(create))
	}
	b.WriteString("\n\n" + m.styles.Help.Render("tab next field · esc to buttons"))

	return b.String()
}

func (m wizardModel) viewProgress() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render(m.state.String()) + "\n\n")

	for _, item := range m.session.Items() {
		err, done := m.itemDone[item.ID()]
		switch {
		case !done:
			b.WriteString(m.styles.Muted.Render("… "+item.Name()) + "\n")
		case err != nil:
			b.WriteString(m.styles.Error.Render("✗ "+item.Name()+": "+err.Error()) + "\n")
		default:
			b.WriteString(m.styles.Success.Render("✓ "+item.Name()) + "\n")
		}
	}
	return b.String()
}

func (m wizardModel) viewPanel(width int) string {
	items := m.session.Items()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Staged sources") + "\n")
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%d item(s) · %s",
		len(items), formatBytes(m.session.TotalBytes()))) + "\n\n")

	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing staged yet"))
		return b.String()
	}

	for i, item := range items {
		line := fmt.Sprintf("%-7s %s", item.Kind(), item.Name())
		if width > 6 {
			line = truncate(line, width-4)
		}
		if m.focus == wfItems && i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.Value.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Help.Render("x unstage · C clear all · enter create"))
	return b.String()
}

func (m wizardModel) fieldLabel(label string, f wizardFocus) string {
	if m.focus == f {
		return m.styles.Selected.Render(label + ":")
	}
	return m.styles.Label.Render(label + ":")
}

// formatBytes renders a byte count in a compact human unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
