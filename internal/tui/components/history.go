package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/gifly/internal/tui/styles"
)

// HistoryEntry represents a track that was played this session
type HistoryEntry struct {
	Name     string
	PlayedAt time.Time
	Skipped  bool
}

// History displays tracks played this session, newest first
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []HistoryEntry, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(entries, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(entries []HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	// icon (2) + padding (2)
	const overhead = 4

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(entry.PlayedAt)
		timeWidth := len(timeAgo)

		icon := "✓"
		if entry.Skipped {
			icon = "⏭"
		}

		name := truncate(entry.Name, width-overhead-timeWidth)

		padding := width - 2 - len([]rune(name)) - timeWidth
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render(icon),
			name,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
