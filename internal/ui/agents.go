package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
)

// agentsModel is the agents overview page: a table of every agent on the
// platform with open, copy-id, delete and refresh actions.
type agentsModel struct {
	styles  *Styles
	table   table.Model
	agents  []api.Agent
	confirm string // agent id pending delete confirmation
	loaded  bool
}

func newAgentsModel(styles *Styles) agentsModel {
	t := table.New(
		table.WithColumns(agentColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(ColorMuted).Bold(true)
	s.Selected = s.Selected.Foreground(ColorHighlight).Bold(true)
	t.SetStyles(s)

	return agentsModel{styles: styles, table: t}
}

func agentColumns(width int) []table.Column {
	nameWidth := width - 40
	if nameWidth < 16 {
		nameWidth = 16
	}
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Model", Width: 14},
		{Title: "Created", Width: 12},
		{Title: "ID", Width: 10},
	}
}

func (m agentsModel) update(msg tea.Msg, d *Dashboard) (agentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case agentsLoadedMsg:
		m.agents = msg.agents
		m.loaded = true
		d.busy = false
		m.refreshRows()
		return m, nil

	case agentDeletedMsg:
		d.busy = false
		kept := m.agents[:0]
		for _, a := range m.agents {
			if a.ID != msg.id {
				kept = append(kept, a)
			}
		}
		m.agents = kept
		m.refreshRows()
		if d.current != nil && d.current.ID == msg.id {
			d.current = nil
		}
		d.toasts.ShowSuccess("agent deleted")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if a, ok := m.selected(); ok {
				return m, d.openAgent(a)
			}
		case "n":
			d.page = pageWizard
			return m, nil
		case "c":
			if a, ok := m.selected(); ok {
				if err := clipboard.WriteAll(a.ID); err != nil {
					d.toasts.ShowError("clipboard unavailable")
				} else {
					d.toasts.ShowSuccess("agent id copied")
				}
			}
			return m, nil
		case "d":
			if a, ok := m.selected(); ok {
				if m.confirm == a.ID {
					m.confirm = ""
					d.busy = true
					return m, deleteAgentCmd(d.client, a.ID)
				}
				m.confirm = a.ID
				d.toasts.ShowWarning("press d again to delete " + a.Name)
			}
			return m, nil
		case "r":
			d.busy = true
			return m, loadAgentsCmd(d.client)
		default:
			m.confirm = ""
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *agentsModel) selected() (api.Agent, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.agents) {
		return api.Agent{}, false
	}
	return m.agents[idx], true
}

func (m *agentsModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.agents))
	for _, a := range m.agents {
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.Format("2006-01-02")
		}
		id := a.ID
		if len(id) > 10 {
			id = id[:10]
		}
		rows = append(rows, table.Row{a.Name, a.Model, created, id})
	}
	m.table.SetRows(rows)
}

func (m agentsModel) view(width, height int, d *Dashboard) string {
	m.table.SetColumns(agentColumns(width - 4))
	m.table.SetHeight(height - 3)

	header := m.styles.Label.Render(fmt.Sprintf("%d agents", len(m.agents)))
	if !m.loaded {
		header = m.styles.Muted.Render("loading agents...")
	}

	help := m.styles.Help.Render("enter open · n new · c copy id · d delete · r refresh")
	return header + "\n" + m.table.View() + "\n" + help
}
