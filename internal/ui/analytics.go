package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentdeck/internal/api"
)

// analyticsWindow is a selectable reporting range.
type analyticsWindow int

const (
	window7d analyticsWindow = iota
	window30d
	window90d
)

func (w analyticsWindow) label() string {
	switch w {
	case window7d:
		return "7 days"
	case window30d:
		return "30 days"
	default:
		return "90 days"
	}
}

func (w analyticsWindow) days() int {
	switch w {
	case window7d:
		return 7
	case window30d:
		return 30
	default:
		return 90
	}
}

// analyticsModel shows the activity summary and per-day buckets for the
// selected agent over a chosen date window.
type analyticsModel struct {
	styles  *Styles
	window  analyticsWindow
	summary *api.AnalyticsSummary
	points  []api.AnalyticsPoint
	loaded  bool
}

func newAnalyticsModel(styles *Styles) analyticsModel {
	return analyticsModel{styles: styles, window: window30d}
}

func (m analyticsModel) update(msg tea.Msg, d *Dashboard) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		d.busy = false
		m.summary = msg.summary
		m.loaded = true
		return m, nil

	case analyticsLoadedMsg:
		m.points = msg.points
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.window > window7d {
				m.window--
				return m, m.reload(d)
			}
		case "right", "l":
			if m.window < window90d {
				m.window++
				return m, m.reload(d)
			}
		case "r":
			return m, m.reload(d)
		}
	}
	return m, nil
}

func (m analyticsModel) reload(d *Dashboard) tea.Cmd {
	if d.current == nil {
		return nil
	}
	d.busy = true
	end := time.Now()
	start := end.AddDate(0, 0, -m.window.days())
	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")
	return tea.Batch(
		loadSummaryCmd(d.client, d.current.ID, startDate, endDate),
		loadAnalyticsCmd(d.client, d.current.ID, startDate, endDate),
	)
}

func (m analyticsModel) view(width, height int, d *Dashboard) string {
	var tabs []string
	for w := window7d; w <= window90d; w++ {
		if w == m.window {
			tabs = append(tabs, m.styles.TabOn.Render(w.label()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(w.label()))
		}
	}
	header := strings.Join(tabs, " ")

	if !m.loaded || m.summary == nil {
		return header + "\n\n" + m.styles.Muted.Render("loading analytics...")
	}

	card := func(label, value string) string {
		return m.styles.Panel.Render(
			m.styles.Label.Render(label) + "\n" +
				m.styles.Title.Render(value))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Conversations", fmt.Sprintf("%d", m.summary.TotalConversations)),
		card("Messages", fmt.Sprintf("%d", m.summary.TotalMessages)),
		card("Avg msgs/conv", fmt.Sprintf("%.1f", m.summary.AvgMessagesPerConv)),
		card("Unique users", fmt.Sprintf("%d", m.summary.UniqueUsers)),
	)

	days := m.viewDays(height - lipgloss.Height(cards) - 6)

	help := m.styles.Help.Render("←/→ window · r refresh")
	return header + "\n\n" + cards + "\n\n" + days + help
}

// viewDays renders the most recent per-day buckets, newest last, with a
// conversation bar scaled to the busiest day.
func (m analyticsModel) viewDays(maxRows int) string {
	if len(m.points) == 0 || maxRows <= 0 {
		return ""
	}

	points := m.points
	if len(points) > maxRows {
		points = points[len(points)-maxRows:]
	}

	busiest := 1
	for _, p := range points {
		if p.Conversations > busiest {
			busiest = p.Conversations
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Daily activity") + "\n")
	for _, p := range points {
		bar := strings.Repeat("▇", p.Conversations*20/busiest)
		b.WriteString(fmt.Sprintf("%s  %4d conv  %5d msgs  %s\n",
			m.styles.Muted.Render(p.Date), p.Conversations, p.Messages,
			m.styles.Status.Render(bar)))
	}
	b.WriteString("\n")
	return b.String()
}
