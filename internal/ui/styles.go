package ui

import "github.com/charmbracelet/lipgloss"

// Colors for the UI theme - Muted Professional Palette
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan
	ColorSuccess   = lipgloss.Color("#059669") // Emerald
	ColorWarning   = lipgloss.Color("#D97706") // Amber
	ColorError     = lipgloss.Color("#DC2626") // Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Neutral Gray
	ColorText      = lipgloss.Color("#F1F5F9") // Soft White
	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate
	ColorHighlight = lipgloss.Color("#E9D5FF") // Soft Purple
	ColorDim       = lipgloss.Color("#6B7280") // Gray
)

// Styles bundles the lipgloss styles used across the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
}

// truncate shortens s to at most max runes, ending in an ellipsis. Slicing
// on runes rather than bytes keeps multibyte text intact.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// NewStyles creates the default style set.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		TabOn: lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Padding(0, 1).
			Underline(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Value: lipgloss.NewStyle().
			Foreground(ColorText),
		Muted: lipgloss.NewStyle().
			Foreground(ColorDim),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Selected: lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorDim),
		Status: lipgloss.NewStyle().
			Foreground(ColorSecondary),
	}
}
