package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agentdeck/internal/api"
	"agentdeck/internal/commit"
	"agentdeck/internal/staging"
	"agentdeck/internal/webmeta"
)

const callTimeout = 30 * time.Second

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func loadAgentsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		agents, err := client.ListAgents(ctx)
		if err != nil {
			return errMsg{err}
		}
		return agentsLoadedMsg{agents}
	}
}

func deleteAgentCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		if err := client.DeleteAgent(ctx, id); err != nil {
			return errMsg{err}
		}
		return agentDeletedMsg{id}
	}
}

func loadKnowledgeCmd(client *api.Client, agentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		items, err := client.ListKnowledgeBases(ctx, agentID)
		if err != nil {
			return errMsg{err}
		}
		return kbLoadedMsg{items}
	}
}

func deleteKnowledgeCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		if err := client.DeleteKnowledgeBase(ctx, id); err != nil {
			return errMsg{err}
		}
		return kbDeletedMsg{id}
	}
}

func loadConversationsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		conversations, err := client.ListConversations(ctx)
		if err != nil {
			return errMsg{err}
		}
		return conversationsLoadedMsg{conversations}
	}
}

func loadMessagesCmd(client *api.Client, conversationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		messages, err := client.ConversationMessages(ctx, conversationID)
		if err != nil {
			return errMsg{err}
		}
		return messagesLoadedMsg{conversationID, messages}
	}
}

func deleteConversationCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		if err := client.DeleteConversation(ctx, id); err != nil {
			return errMsg{err}
		}
		return conversationDeletedMsg{id}
	}
}

func loadSettingsCmd(client *api.Client, agentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		settings, err := client.GetSettings(ctx, agentID)
		if err != nil {
			return errMsg{err}
		}
		return settingsLoadedMsg{settings}
	}
}

func saveSettingsCmd(client *api.Client, agentID string, settings api.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		saved, err := client.UpdateSettings(ctx, agentID, settings)
		if err != nil {
			return errMsg{err}
		}
		return settingsSavedMsg{saved}
	}
}

func resetSettingsCmd(client *api.Client, agentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		settings, err := client.ResetSettings(ctx, agentID)
		if err != nil {
			return errMsg{err}
		}
		return settingsSavedMsg{settings}
	}
}

func loadSummaryCmd(client *api.Client, agentID, startDate, endDate string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		summary, err := client.Summary(ctx, agentID, startDate, endDate)
		if err != nil {
			return errMsg{err}
		}
		return summaryLoadedMsg{summary}
	}
}

func loadAnalyticsCmd(client *api.Client, agentID, startDate, endDate string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		points, err := client.Analytics(ctx, agentID, startDate, endDate)
		if err != nil {
			return errMsg{err}
		}
		return analyticsLoadedMsg{points}
	}
}

// loadChatStatusCmd checks whether the agent has finished processing its
// sources. The playground blocks questions until it has.
func loadChatStatusCmd(client *api.Client, agentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		status, err := client.Status(ctx, agentID)
		if err != nil {
			return errMsg{err}
		}
		return chatStatusMsg{status}
	}
}

func startConversationCmd(client *api.Client, agentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		conversation, err := client.CreateConversation(ctx, agentID)
		if err != nil {
			return errMsg{err}
		}
		return conversationStartedMsg{conversation}
	}
}

func fetchTitleCmd(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return titleFetchedMsg{url: url, title: webmeta.FetchTitle(ctx, url)}
	}
}

// startCommitCmd runs the commit orchestrator in the background, pushing
// state changes, per-item results and the final outcome into ch.
func startCommitCmd(platform commit.PlatformAPI, session *staging.Session, maxConcurrent int, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		orch := commit.New(platform, commit.Options{
			MaxConcurrent: maxConcurrent,
			OnStateChange: func(s commit.State) { ch <- commitStateMsg{s} },
			OnItemDone:    func(r commit.ItemResult) { ch <- commitItemMsg{r} },
		})

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := orch.Commit(ctx, session)
			ch <- commitFinishedMsg{result: result, err: err}
		}()

		return <-ch
	}
}

// startChatStreamCmd streams a playground reply into ch, one chunk per
// message.
func startChatStreamCmd(client *api.Client, agentID, question, conversationID string, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			err := client.StreamQuery(ctx, agentID, question, conversationID, func(ev api.StreamEvent) error {
				if ev.Chunk != "" {
					ch <- chatChunkMsg{ev.Chunk}
				}
				if ev.Done {
					ch <- chatDoneMsg{ev.ConversationID}
				}
				return nil
			})
			if err != nil {
				ch <- chatErrMsg{err}
			}
		}()

		return <-ch
	}
}
