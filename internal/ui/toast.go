package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast represents a single toast notification.
type Toast struct {
	Type      ToastType
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// IsExpired returns true if the toast should be removed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) > t.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts    []Toast
	maxToasts int
	styles    *Styles
}

// NewToastManager creates a new toast manager.
func NewToastManager(styles *Styles) *ToastManager {
	return &ToastManager{
		maxToasts: 3,
		styles:    styles,
	}
}

// Show displays a new toast notification.
func (m *ToastManager) Show(toastType ToastType, message string, duration time.Duration) {
	toast := Toast{
		Type:      toastType,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	// Newest first
	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
}

// ShowSuccess displays a success toast.
func (m *ToastManager) ShowSuccess(message string) {
	m.Show(ToastSuccess, message, 3*time.Second)
}

// ShowError displays an error toast.
func (m *ToastManager) ShowError(message string) {
	m.Show(ToastError, message, 5*time.Second)
}

// ShowInfo displays an info toast.
func (m *ToastManager) ShowInfo(message string) {
	m.Show(ToastInfo, message, 3*time.Second)
}

// ShowWarning displays a warning toast.
func (m *ToastManager) ShowWarning(message string) {
	m.Show(ToastWarning, message, 4*time.Second)
}

// Prune drops expired toasts.
func (m *ToastManager) Prune() {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// View renders the active toasts, newest on top.
func (m *ToastManager) View(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}

	var lines []string
	for _, t := range m.toasts {
		var style lipgloss.Style
		var icon string
		switch t.Type {
		case ToastSuccess:
			style, icon = m.styles.Success, "✓"
		case ToastError:
			style, icon = m.styles.Error, "✗"
		case ToastWarning:
			style, icon = m.styles.Warning, "⚠"
		default:
			style, icon = m.styles.Status, "ℹ"
		}

		msg := t.Message
		if width > 8 {
			msg = truncate(msg, width-4)
		}
		lines = append(lines, style.Render(icon+" "+msg))
	}

	return strings.Join(lines, "\n")
}
