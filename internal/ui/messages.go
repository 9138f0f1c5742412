package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
	"agentdeck/internal/commit"
)

// Messages produced by async commands.

type errMsg struct{ err error }

type agentsLoadedMsg struct{ agents []api.Agent }

type agentDeletedMsg struct{ id string }

type kbLoadedMsg struct{ items []api.KnowledgeBase }

type kbDeletedMsg struct{ id string }

type conversationsLoadedMsg struct{ conversations []api.Conversation }

type messagesLoadedMsg struct {
	conversationID string
	messages       []api.Message
}

type conversationDeletedMsg struct{ id string }

type settingsLoadedMsg struct{ settings *api.Settings }

type settingsSavedMsg struct{ settings *api.Settings }

type summaryLoadedMsg struct{ summary *api.AnalyticsSummary }

type analyticsLoadedMsg struct{ points []api.AnalyticsPoint }

type chatStatusMsg struct{ status *api.ChatStatus }

type conversationStartedMsg struct{ conversation *api.Conversation }

// Commit progress flows over a channel so callbacks from upload goroutines
// turn into ordinary tea messages.

type commitStateMsg struct{ state commit.State }

type commitItemMsg struct{ result commit.ItemResult }

type commitFinishedMsg struct {
	result *commit.Result
	err    error
}

// Chat streaming events.

type chatChunkMsg struct{ chunk string }

type chatDoneMsg struct{ conversationID string }

type chatErrMsg struct{ err error }

// titleFetchedMsg carries the page title fetched for a staged website.
type titleFetchedMsg struct {
	url   string
	title string
}

// snapshotChangedMsg signals that the staging snapshot changed on disk.
type snapshotChangedMsg struct{}

// tickMsg drives toast expiry.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitMsg returns a command that blocks on ch and delivers the next message.
// Re-issue it after every receive to keep draining the channel.
func waitMsg(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
