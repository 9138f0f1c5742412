package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
)

// conversationsModel lists chat threads and opens a read-only message view
// for the selected one.
type conversationsModel struct {
	styles        *Styles
	table         table.Model
	conversations []api.Conversation
	confirm       string
	loaded        bool

	// Message viewer, active when viewing != ""
	viewing  string
	messages []api.Message
	viewport viewport.Model
	ready    bool
	dirty    bool
}

func newConversationsModel(styles *Styles) conversationsModel {
	t := table.New(
		table.WithColumns(convColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(ColorMuted).Bold(true)
	s.Selected = s.Selected.Foreground(ColorHighlight).Bold(true)
	t.SetStyles(s)

	return conversationsModel{styles: styles, table: t}
}

func convColumns(width int) []table.Column {
	titleWidth := width - 32
	if titleWidth < 16 {
		titleWidth = 16
	}
	return []table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Messages", Width: 9},
		{Title: "Last activity", Width: 14},
	}
}

func (m conversationsModel) update(msg tea.Msg, d *Dashboard) (conversationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case conversationsLoadedMsg:
		m.conversations = msg.conversations
		m.loaded = true
		d.busy = false
		m.refreshRows()
		return m, nil

	case messagesLoadedMsg:
		d.busy = false
		m.viewing = msg.conversationID
		m.messages = msg.messages
		m.dirty = true
		return m, nil

	case conversationDeletedMsg:
		d.busy = false
		kept := m.conversations[:0]
		for _, c := range m.conversations {
			if c.ID != msg.id {
				kept = append(kept, c)
			}
		}
		m.conversations = kept
		m.refreshRows()
		d.toasts.ShowSuccess("conversation deleted")
		return m, nil

	case tea.KeyMsg:
		if m.viewing != "" {
			if msg.String() == "esc" || msg.String() == "backspace" {
				m.viewing = ""
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.conversations) {
				d.busy = true
				return m, loadMessagesCmd(d.client, m.conversations[idx].ID)
			}
			return m, nil
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.conversations) {
				c := m.conversations[idx]
				if m.confirm == c.ID {
					m.confirm = ""
					d.busy = true
					return m, deleteConversationCmd(d.client, c.ID)
				}
				m.confirm = c.ID
				d.toasts.ShowWarning("press d again to delete this conversation")
			}
			return m, nil
		case "r":
			d.busy = true
			return m, loadConversationsCmd(d.client)
		default:
			m.confirm = ""
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *conversationsModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.conversations))
	for _, c := range m.conversations {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		last := ""
		if !c.LastMessageAt.IsZero() {
			last = c.LastMessageAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{title, fmt.Sprintf("%d", c.MessageCount), last})
	}
	m.table.SetRows(rows)
}

func (m *conversationsModel) refreshMessages() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.messages {
		who := m.styles.Status.Render("assistant")
		if msg.Role == "user" {
			who = m.styles.Selected.Render("user")
		}
		when := ""
		if !msg.CreatedAt.IsZero() {
			when = m.styles.Muted.Render("  " + msg.CreatedAt.Format("15:04"))
		}
		b.WriteString(who + when + "\n" + msg.Content + "\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *conversationsModel) view(width, height int, d *Dashboard) string {
	if !m.ready {
		m.viewport = viewport.New(width-2, height-2)
		m.ready = true
	} else {
		m.viewport.Width = width - 2
		m.viewport.Height = height - 2
	}

	if m.viewing != "" {
		if m.dirty {
			m.refreshMessages()
			m.dirty = false
		}
		help := m.styles.Help.Render("esc back · ↑/↓ scroll")
		return m.viewport.View() + "\n" + help
	}

	m.table.SetColumns(convColumns(width - 4))
	m.table.SetHeight(height - 3)

	header := m.styles.Muted.Render("loading conversations...")
	if m.loaded {
		header = m.styles.Label.Render(fmt.Sprintf("%d conversations", len(m.conversations)))
	}

	help := m.styles.Help.Render("enter open · d delete · r refresh")
	return header + "\n" + m.table.View() + "\n" + help
}
