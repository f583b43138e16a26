package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors, filled in by Apply from a catppuccin flavour.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	HeartRed  lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	TextMuted lipgloss.TerminalColor
	TextDim   lipgloss.TerminalColor
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Heart     lipgloss.Style
	ErrorText lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
	NoBorder      lipgloss.Style
)

// Heart glyphs used by the gauges.
const (
	HeartFull  = "♥"
	HeartEmpty = "♡"
)

func init() {
	Apply("auto")
}

// Flavor returns the catppuccin flavour for a theme name, or nil for "auto".
func Flavor(theme string) catppuccin.Flavor {
	switch theme {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return nil
	}
}

// Apply rebuilds every style from the named theme. "auto" follows the
// terminal background, latte on light and mocha on dark.
func Apply(theme string) {
	pick := func(f func(catppuccin.Flavor) catppuccin.Color) lipgloss.TerminalColor {
		if fl := Flavor(theme); fl != nil {
			return lipgloss.Color(f(fl).Hex)
		}
		return lipgloss.AdaptiveColor{
			Light: f(catppuccin.Latte).Hex,
			Dark:  f(catppuccin.Mocha).Hex,
		}
	}

	Primary = pick(catppuccin.Flavor.Mauve)
	Secondary = pick(catppuccin.Flavor.Green)
	Accent = pick(catppuccin.Flavor.Peach)
	HeartRed = pick(catppuccin.Flavor.Red)
	Error = pick(catppuccin.Flavor.Maroon)
	Border = pick(catppuccin.Flavor.Surface2)
	Text = pick(catppuccin.Flavor.Text)
	TextMuted = pick(catppuccin.Flavor.Subtext0)
	TextDim = pick(catppuccin.Flavor.Overlay0)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Secondary)
	Paused = lipgloss.NewStyle().Foreground(Accent)
	Heart = lipgloss.NewStyle().Foreground(HeartRed)
	ErrorText = lipgloss.NewStyle().Foreground(Error)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
	NoBorder = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder())
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// Hearts renders a gauge of units hearts with filled of them lit.
func Hearts(filled, units int) string {
	if units < 0 {
		units = 0
	}
	if filled < 0 {
		filled = 0
	}
	if filled > units {
		filled = units
	}
	return Heart.Render(Repeat(HeartFull, filled)) +
		Dim.Render(Repeat(HeartEmpty, units-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// Control renders a transport glyph, dimmed when it would do nothing.
func Control(glyph string, enabled bool) string {
	if enabled {
		return Title.Render(glyph)
	}
	return Dim.Render(glyph)
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
