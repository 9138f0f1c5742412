package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
)

// knowledgeModel lists the selected agent's knowledge bases, grouped by
// category counts, with delete and refresh actions.
type knowledgeModel struct {
	styles  *Styles
	table   table.Model
	items   []api.KnowledgeBase
	confirm string
	loaded  bool
}

func newKnowledgeModel(styles *Styles) knowledgeModel {
	t := table.New(
		table.WithColumns(kbColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(ColorMuted).Bold(true)
	s.Selected = s.Selected.Foreground(ColorHighlight).Bold(true)
	t.SetStyles(s)

	return knowledgeModel{styles: styles, table: t}
}

func kbColumns(width int) []table.Column {
	nameWidth := width - 34
	if nameWidth < 16 {
		nameWidth = 16
	}
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Category", Width: 9},
		{Title: "Size", Width: 9},
		{Title: "Status", Width: 10},
	}
}

func (m knowledgeModel) update(msg tea.Msg, d *Dashboard) (knowledgeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case kbLoadedMsg:
		m.items = msg.items
		m.loaded = true
		d.busy = false
		m.refreshRows()
		return m, nil

	case kbDeletedMsg:
		d.busy = false
		kept := m.items[:0]
		for _, kb := range m.items {
			if kb.ID != msg.id {
				kept = append(kept, kb)
			}
		}
		m.items = kept
		m.refreshRows()
		d.toasts.ShowSuccess("knowledge base deleted")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.items) {
				kb := m.items[idx]
				if m.confirm == kb.ID {
					m.confirm = ""
					d.busy = true
					return m, deleteKnowledgeCmd(d.client, kb.ID)
				}
				m.confirm = kb.ID
				d.toasts.ShowWarning("press d again to delete " + kb.Name)
			}
			return m, nil
		case "r":
			if d.current != nil {
				d.busy = true
				return m, loadKnowledgeCmd(d.client, d.current.ID)
			}
			return m, nil
		default:
			m.confirm = ""
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *knowledgeModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.items))
	for _, kb := range m.items {
		size := ""
		if kb.SizeBytes > 0 {
			size = formatBytes(kb.SizeBytes)
		}
		rows = append(rows, table.Row{kb.Name, kb.Category, size, kb.Status})
	}
	m.table.SetRows(rows)
}

func (m knowledgeModel) view(width, height int, d *Dashboard) string {
	m.table.SetColumns(kbColumns(width - 4))
	m.table.SetHeight(height - 3)

	header := m.styles.Muted.Render("loading knowledge bases...")
	if m.loaded {
		files, texts, sites := 0, 0, 0
		for _, kb := range m.items {
			switch kb.Category {
			case "FILE":
				files++
			case "TEXT":
				texts++
			case "WEBSITE":
				sites++
			}
		}
		header = m.styles.Label.Render(fmt.Sprintf(
			"%d sources · %d files · %d texts · %d websites",
			len(m.items), files, texts, sites))
	}

	help := m.styles.Help.Render("d delete · r refresh")
	return header + "\n" + m.table.View() + "\n" + help
}
