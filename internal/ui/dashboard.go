// Package ui implements the terminal dashboard: an agents overview, the
// create-agent wizard with its staging side panel, a playground chat, and
// per-agent knowledge, conversation, settings and analytics pages.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentdeck/internal/api"
	"agentdeck/internal/config"
	"agentdeck/internal/logging"
	"agentdeck/internal/staging"
	"agentdeck/internal/watcher"
)

type page int

const (
	pageAgents page = iota
	pageWizard
	pagePlayground
	pageKnowledge
	pageConversations
	pageSettings
	pageAnalytics
)

func (p page) title() string {
	switch p {
	case pageAgents:
		return "Agents"
	case pageWizard:
		return "New Agent"
	case pagePlayground:
		return "Playground"
	case pageKnowledge:
		return "Knowledge"
	case pageConversations:
		return "Conversations"
	case pageSettings:
		return "Settings"
	case pageAnalytics:
		return "Analytics"
	default:
		return "?"
	}
}

// Dashboard is the root TUI model.
type Dashboard struct {
	cfg     *config.Config
	client  *api.Client
	session *staging.Session
	store   *staging.Store

	page    page
	width   int
	height  int
	styles  *Styles
	toasts  *ToastManager
	spinner spinner.Model
	busy    bool

	// Selected agent for the workspace pages
	current *api.Agent

	agents        agentsModel
	wizard        wizardModel
	playground    playgroundModel
	knowledge     knowledgeModel
	conversations conversationsModel
	settings      settingsModel
	analytics     analyticsModel

	// External events (snapshot watcher) arrive over this channel
	external chan tea.Msg
	watch    *watcher.Watcher
}

// NewDashboard creates the root model.
func NewDashboard(cfg *config.Config, client *api.Client, session *staging.Session, store *staging.Store) *Dashboard {
	styles := NewStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	d := &Dashboard{
		cfg:      cfg,
		client:   client,
		session:  session,
		store:    store,
		styles:   styles,
		toasts:   NewToastManager(styles),
		spinner:  sp,
		external: make(chan tea.Msg, 8),
	}

	d.agents = newAgentsModel(styles)
	d.wizard = newWizardModel(styles, cfg, client, session)
	d.playground = newPlaygroundModel(styles, cfg, client)
	d.knowledge = newKnowledgeModel(styles)
	d.conversations = newConversationsModel(styles)
	d.settings = newSettingsModel(styles)
	d.analytics = newAnalyticsModel(styles)

	return d
}

// Run starts the dashboard program.
func Run(cfg *config.Config, client *api.Client, session *staging.Session, store *staging.Store) error {
	d := NewDashboard(cfg, client, session, store)

	if cfg.Staging.WatchSnapshot && store != nil {
		w, err := watcher.New(store.Path(), watcher.Config{
			Enabled:    true,
			DebounceMs: cfg.Staging.WatchDebounceMs,
		}, func() {
			d.external <- snapshotChangedMsg{}
		})
		if err != nil {
			logging.Warn("snapshot watcher unavailable", "error", err)
		} else if err := w.Start(); err != nil {
			logging.Warn("snapshot watcher failed to start", "error", err)
		} else {
			d.watch = w
			defer w.Stop()
		}
	}

	p := tea.NewProgram(d, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(
		d.spinner.Tick,
		tickCmd(),
		waitMsg(d.external),
		loadAgentsCmd(d.client),
	)
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case tickMsg:
		d.toasts.Prune()
		return d, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case snapshotChangedMsg:
		// An outside writer (the CLI) touched the snapshot; reload so the
		// wizard panel reflects it. The session's own write-throughs land
		// here too and reload to identical state.
		if snap, ok := d.store.Load(); ok {
			d.session.ReplaceFrom(snap)
		}
		return d, waitMsg(d.external)

	case errMsg:
		d.busy = false
		d.toasts.ShowError(msg.err.Error())
		return d, nil

	case tea.KeyMsg:
		if cmd, handled := d.handleGlobalKey(msg); handled {
			return d, cmd
		}
	}

	return d, d.updatePage(msg)
}

// handleGlobalKey routes keys that work on every page. Page-local input
// fields get first refusal via their focus state.
func (d *Dashboard) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if d.pageCaptures() {
		// An input is focused: only ctrl+c stays global
		if msg.String() == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "1":
		d.page = pageAgents
		return loadAgentsCmd(d.client), true
	case "2":
		d.page = pageWizard
		return nil, true
	case "3":
		if d.current == nil {
			d.toasts.ShowWarning("select an agent first")
			return nil, true
		}
		if d.playground.agent.ID != d.current.ID {
			d.playground.reset(*d.current)
		}
		d.page = pagePlayground
		return loadChatStatusCmd(d.client, d.current.ID), true
	case "4":
		if d.current == nil {
			d.toasts.ShowWarning("select an agent first")
			return nil, true
		}
		d.page = pageKnowledge
		return loadKnowledgeCmd(d.client, d.current.ID), true
	case "5":
		d.page = pageConversations
		return loadConversationsCmd(d.client), true
	case "6":
		if d.current == nil {
			d.toasts.ShowWarning("select an agent first")
			return nil, true
		}
		d.page = pageSettings
		return loadSettingsCmd(d.client, d.current.ID), true
	case "7":
		if d.current == nil {
			d.toasts.ShowWarning("select an agent first")
			return nil, true
		}
		d.page = pageAnalytics
		return d.analytics.reload(d), true
	}

	return nil, false
}

// pageCaptures reports whether the active page owns the keyboard.
func (d *Dashboard) pageCaptures() bool {
	switch d.page {
	case pageWizard:
		return d.wizard.capturing()
	case pagePlayground:
		return d.playground.capturing()
	case pageSettings:
		return d.settings.capturing()
	default:
		return false
	}
}

func (d *Dashboard) updatePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch d.page {
	case pageAgents:
		d.agents, cmd = d.agents.update(msg, d)
	case pageWizard:
		d.wizard, cmd = d.wizard.update(msg, d)
	case pagePlayground:
		d.playground, cmd = d.playground.update(msg, d)
	case pageKnowledge:
		d.knowledge, cmd = d.knowledge.update(msg, d)
	case pageConversations:
		d.conversations, cmd = d.conversations.update(msg, d)
	case pageSettings:
		d.settings, cmd = d.settings.update(msg, d)
	case pageAnalytics:
		d.analytics, cmd = d.analytics.update(msg, d)
	}

	return cmd
}

// openAgent selects an agent and jumps to its playground. The readiness
// check fires immediately so the chat input unlocks as soon as the platform
// reports the agent ready.
func (d *Dashboard) openAgent(agent api.Agent) tea.Cmd {
	a := agent
	d.current = &a
	d.playground.reset(agent)
	d.page = pagePlayground
	return loadChatStatusCmd(d.client, agent.ID)
}

func (d *Dashboard) View() string {
	if d.width == 0 {
		return "loading..."
	}

	header := d.viewHeader()
	body := d.viewBody()
	footer := d.viewFooter()

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if toast := d.toasts.View(d.width); toast != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, toast)
	}
	return view
}

func (d *Dashboard) viewHeader() string {
	title := d.styles.Title.Render("agentdeck")

	var tabs []string
	for p := pageAgents; p <= pageAnalytics; p++ {
		label := fmt.Sprintf("%d %s", int(p)+1, p.title())
		if p == d.page {
			tabs = append(tabs, d.styles.TabOn.Render(label))
		} else {
			tabs = append(tabs, d.styles.Tab.Render(label))
		}
	}

	agentInfo := ""
	if d.current != nil {
		agentInfo = d.styles.Muted.Render(" · " + d.current.Name)
	}

	return title + agentInfo + "\n" + strings.Join(tabs, " ")
}

func (d *Dashboard) viewBody() string {
	// Header is 2 lines, footer 1, toasts variable
	bodyHeight := d.height - 4
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	switch d.page {
	case pageAgents:
		return d.agents.view(d.width, bodyHeight, d)
	case pageWizard:
		return d.wizard.view(d.width, bodyHeight, d)
	case pagePlayground:
		return d.playground.view(d.width, bodyHeight, d)
	case pageKnowledge:
		return d.knowledge.view(d.width, bodyHeight, d)
	case pageConversations:
		return d.conversations.view(d.width, bodyHeight, d)
	case pageSettings:
		return d.settings.view(d.width, bodyHeight, d)
	case pageAnalytics:
		return d.analytics.view(d.width, bodyHeight, d)
	default:
		return ""
	}
}

func (d *Dashboard) viewFooter() string {
	help := "1-7 pages · q quit"
	if d.busy {
		return d.spinner.View() + " " + d.styles.Help.Render(help)
	}
	return d.styles.Help.Render(help)
}
