package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/gifly/internal/core"
	"github.com/tessro/gifly/internal/tui/styles"
)

// Playlist displays the loaded tracks with the current one highlighted and
// a cursor for picking another.
type Playlist struct {
	offset   int
	selected int
}

// NewPlaylist creates a new Playlist component
func NewPlaylist() *Playlist {
	return &Playlist{}
}

// SelectNext moves the cursor down
func (p *Playlist) SelectNext(count int) {
	if p.selected < count-1 {
		p.selected++
	}
}

// SelectPrev moves the cursor up
func (p *Playlist) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Selected returns the selected index
func (p *Playlist) Selected() int {
	return p.selected
}

// SetSelected moves the cursor to index
func (p *Playlist) SetSelected(index int) {
	if index < 0 {
		index = 0
	}
	p.selected = index
}

// Render renders the playlist panel. current is the 0-based playing index.
func (p *Playlist) Render(tracks []core.Track, current, width, height int, focused bool) string {
	title := styles.PanelTitle(fmt.Sprintf("Playlist (%d)", len(tracks)), focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("Playlist is empty")
	} else {
		content = p.renderTracks(tracks, current, width-4, height-4, focused)
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

func (p *Playlist) renderTracks(tracks []core.Track, current, width, maxLines int, focused bool) string {
	if p.selected >= len(tracks) {
		p.selected = len(tracks) - 1
	}

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor on screen
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+visibleCount {
		p.offset = p.selected - visibleCount + 1
	}

	start := p.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+2)

	if start > 0 {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... %d above", start)))
	}

	// "XX. " (4) + "▶ " (2) + cursor (2)
	const overhead = 8

	for i := start; i < end; i++ {
		num := fmt.Sprintf("%2d.", i+1)
		name := truncate(tracks[i].Name, width-overhead)

		cursor := "  "
		if focused && i == p.selected {
			cursor = styles.Highlight.Render("> ")
		}

		var line string
		if i == current {
			line = cursor + styles.Playing.Render(fmt.Sprintf("%s ▶ %s", num, name))
		} else {
			line = fmt.Sprintf("%s%s   %s", cursor, styles.Dim.Render(num), name)
		}
		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
