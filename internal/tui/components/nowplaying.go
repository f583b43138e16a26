package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/gifly/internal/core"
	"github.com/tessro/gifly/internal/gallery"
	"github.com/tessro/gifly/internal/tui/styles"
)

// NowPlaying displays the player widget: decoration, title, seek gauge,
// transport controls and volume gauge.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(d core.Display, deco gallery.Decoration, width, height int, focused bool) string {
	title := styles.PanelTitle("gifly", focused)

	art := styles.Highlight.Render(deco.Art)

	var content string
	if !d.HasTrack() {
		content = lipgloss.JoinVertical(lipgloss.Center,
			art,
			"",
			styles.Muted.Render("No tracks loaded"),
		)
	} else {
		content = n.renderTrack(d, art, width-4)
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

func (n *NowPlaying) renderTrack(d core.Display, art string, width int) string {
	icon := styles.StatusIcon(d.Playing)
	name := styles.Title.Render(truncate(d.TrackName, width-4))
	position := styles.Dim.Render(fmt.Sprintf("%d/%d", d.Index, d.Count))

	seek := fmt.Sprintf("%s %s %s",
		styles.Muted.Render(d.Elapsed),
		styles.Hearts(d.SeekFilled, d.SeekUnits),
		styles.Muted.Render(d.Total))

	volume := fmt.Sprintf("🔊 %s %s",
		styles.Hearts(d.VolumeFilled, d.VolumeUnits),
		styles.Dim.Render(fmt.Sprintf("%d%%", d.VolumePercent())))

	return lipgloss.JoinVertical(lipgloss.Left,
		art,
		"",
		icon+" "+name,
		"  "+position,
		"",
		seek,
		"",
		n.renderControls(d),
		"",
		volume,
	)
}

// renderControls draws ⏮ ⏯ ⏭. Previous and next are dimmed at the ends of
// the playlist, where pressing them does nothing.
func (n *NowPlaying) renderControls(d core.Display) string {
	toggle := styles.Paused.Render("▶")
	if d.Playing {
		toggle = styles.Playing.Render("⏸")
	}

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(styles.Control("⏮", !d.AtStart) + "  " + toggle + "  " + styles.Control("⏭", !d.AtEnd))
}
