package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"agentdeck/internal/api"
	"agentdeck/internal/config"
	"agentdeck/internal/logging"
)

// chatTurn is one question/answer pair in the transcript.
type chatTurn struct {
	question string
	answer   string
}

// playgroundModel is the chat page: a scrollable transcript rendered through
// glamour and an input line. Replies stream in chunk by chunk.
type playgroundModel struct {
	styles *Styles
	cfg    *config.Config
	client *api.Client

	agent          api.Agent
	conversationID string
	turns          []chatTurn
	streaming      bool
	ready          bool
	statusNote     string
	streamCh       chan tea.Msg

	viewport viewport.Model
	input    textinput.Model
	renderer *glamour.TermRenderer
	vpReady  bool
}

func newPlaygroundModel(styles *Styles, cfg *config.Config, client *api.Client) playgroundModel {
	input := textinput.New()
	input.Placeholder = "ask the agent..."
	input.CharLimit = 2000
	input.Focus()

	styleOpt := glamour.WithAutoStyle()
	if cfg.UI.Theme != "" {
		styleOpt = glamour.WithStandardStyle(cfg.UI.Theme)
	}
	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(100),
	)
	if err != nil {
		logging.Warn("markdown renderer unavailable", "error", err)
	}

	return playgroundModel{
		styles:   styles,
		cfg:      cfg,
		client:   client,
		input:    input,
		renderer: renderer,
	}
}

// reset points the playground at a different agent and clears the transcript.
// The agent counts as not ready until a status check says otherwise.
func (m *playgroundModel) reset(agent api.Agent) {
	m.agent = agent
	m.conversationID = ""
	m.turns = nil
	m.streaming = false
	m.ready = false
	m.statusNote = "checking agent status..."
	m.input.SetValue("")
	m.input.Focus()
	if m.vpReady {
		m.viewport.SetContent("")
	}
}

func (m playgroundModel) capturing() bool {
	return m.input.Focused()
}

func (m playgroundModel) update(msg tea.Msg, d *Dashboard) (playgroundModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatStatusMsg:
		m.ready = msg.status.Ready
		if m.ready {
			m.statusNote = ""
		} else {
			m.statusNote = msg.status.Message
			if m.statusNote == "" {
				m.statusNote = "agent is still processing its sources"
			}
		}
		return m, nil

	case conversationStartedMsg:
		d.busy = false
		m.conversationID = msg.conversation.ID
		m.turns = nil
		m.refreshTranscript()
		d.toasts.ShowInfo("new conversation")
		return m, nil

	case chatChunkMsg:
		if len(m.turns) > 0 {
			m.turns[len(m.turns)-1].answer += msg.chunk
			m.refreshTranscript()
		}
		return m, waitMsg(m.streamCh)

	case chatDoneMsg:
		m.streaming = false
		d.busy = false
		if msg.conversationID != "" {
			m.conversationID = msg.conversationID
		}
		return m, nil

	case chatErrMsg:
		m.streaming = false
		d.busy = false
		if len(m.turns) > 0 && m.turns[len(m.turns)-1].answer == "" {
			m.turns[len(m.turns)-1].answer = "_no reply_"
			m.refreshTranscript()
		}
		d.toasts.ShowError(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.send(d)
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil
		case "ctrl+n":
			// Fresh server-side conversation with the same agent
			if m.streaming {
				return m, nil
			}
			d.busy = true
			return m, startConversationCmd(m.client, m.agent.ID)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.vpReady {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m playgroundModel) send(d *Dashboard) (playgroundModel, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.streaming {
		return m, nil
	}
	if !m.ready {
		d.toasts.ShowWarning("agent is not ready to answer yet")
		return m, loadChatStatusCmd(m.client, m.agent.ID)
	}

	m.turns = append(m.turns, chatTurn{question: question})
	m.input.SetValue("")
	m.streaming = true
	d.busy = true
	m.streamCh = make(chan tea.Msg, 32)
	m.refreshTranscript()

	return m, startChatStreamCmd(m.client, m.agent.ID, question, m.conversationID, m.streamCh)
}

func (m *playgroundModel) refreshTranscript() {
	if !m.vpReady {
		return
	}

	var b strings.Builder
	for _, turn := range m.turns {
		b.WriteString(m.styles.Selected.Render("You") + "\n")
		b.WriteString(turn.question + "\n\n")
		b.WriteString(m.styles.Status.Render(m.agent.Name) + "\n")
		b.WriteString(m.renderMarkdown(turn.answer) + "\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *playgroundModel) renderMarkdown(text string) string {
	if text == "" {
		return m.styles.Muted.Render("…")
	}
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (m *playgroundModel) view(width, height int, d *Dashboard) string {
	if !m.vpReady {
		m.viewport = viewport.New(width-2, height-3)
		m.vpReady = true
		m.refreshTranscript()
	} else {
		m.viewport.Width = width - 2
		m.viewport.Height = height - 3
	}

	status := m.styles.Label.Render("chatting with " + m.agent.Name)
	if m.streaming {
		status += m.styles.Muted.Render(" (streaming…)")
	} else if !m.ready && m.statusNote != "" {
		status += m.styles.Warning.Render(" · " + m.statusNote)
	}

	help := m.styles.Help.Render("enter send · ctrl+n new conversation · esc toggle scroll")
	return status + "\n" + m.viewport.View() + "\n" + m.input.View() + "  " + help
}
