package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/core"
	"github.com/tessro/gifly/internal/session"
	"github.com/tessro/gifly/internal/tail"
	"github.com/tessro/gifly/internal/tui/components"
	"github.com/tessro/gifly/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelPlaylist
	PanelHistory
)

const (
	errorDuration  = 5 * time.Second
	noticeDuration = 2 * time.Second
	maxHistory     = 50
)

// Options configures the TUI.
type Options struct {
	SeekStep     float64 // seconds
	VolumeStep   float64 // level in [0,1]
	ShowPlaylist bool
	Theme        string
	Logger       *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.SeekStep <= 0 {
		o.SeekStep = 5
	}
	if o.VolumeStep <= 0 {
		o.VolumeStep = 0.1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Model is the main TUI model
type Model struct {
	ctrl    *session.Controller
	watcher *tail.Watcher
	opts    Options

	width        int
	height       int
	focusedPanel Panel

	// State
	display core.Display
	history []components.HistoryEntry

	// Components
	nowPlaying   *components.NowPlaying
	playlistView *components.Playlist
	historyView  *components.History

	// Overlays
	showHelp     bool
	showPlaylist bool
	showJump     bool
	jumpInput    textinput.Model

	// Messages
	lastError    error
	errorExpiry  time.Time
	notice       string
	noticeExpiry time.Time

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model around a controller.
func NewModel(ctrl *session.Controller, opts Options) Model {
	opts.applyDefaults()

	ti := textinput.New()
	ti.Placeholder = "Jump to track..."
	ti.CharLimit = 100
	ti.Width = 40

	m := Model{
		ctrl:         ctrl,
		watcher:      tail.NewWatcher(),
		opts:         opts,
		focusedPanel: PanelNowPlaying,
		nowPlaying:   components.NewNowPlaying(),
		playlistView: components.NewPlaylist(),
		historyView:  components.NewHistory(),
		showPlaylist: opts.ShowPlaylist,
		jumpInput:    ti,
	}
	m.observe()
	return m
}

// Messages
type surfaceMsg core.SurfaceEvent
type errMsg error
type noticeMsg string

// waitForEvent blocks on the surface channel and delivers one event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.ctrl.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return surfaceMsg(ev)
	}
}

func (m Model) copyTrackName() tea.Cmd {
	name := m.display.TrackName
	return func() tea.Msg {
		if name == "" {
			return nil
		}
		if err := clipboard.WriteAll(name); err != nil {
			return errMsg(fmt.Errorf("copy to clipboard: %w", err))
		}
		return noticeMsg("Copied: " + name)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case surfaceMsg:
		_, err := m.ctrl.Dispatch(core.SurfaceEvent(msg))
		m.setError(err)
		m.observe()
		return m, m.waitForEvent()

	case errMsg:
		m.setError(msg)
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		m.noticeExpiry = time.Now().Add(noticeDuration)
		return m, nil
	}

	// Forward other messages to textinput when jump is active
	if m.showJump {
		var inputCmd tea.Cmd
		m.jumpInput, inputCmd = m.jumpInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Jump overlay
	if m.showJump {
		return m.handleJumpKeyPress(msg)
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return m.quit()

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.showJump = true
		m.jumpInput.SetValue("")
		m.jumpInput.Focus()
		return m, textinput.Blink

	case "l":
		m.showPlaylist = !m.showPlaylist
		if m.showPlaylist {
			m.playlistView.SetSelected(m.ctrl.State().CurrentIndex)
		} else if m.focusedPanel == PanelPlaylist {
			m.focusedPanel = PanelNowPlaying
		}
		return m, nil

	case "tab":
		m.focusedPanel = m.nextPanel(1)
		return m, nil

	case "shift+tab":
		m.focusedPanel = m.nextPanel(-1)
		return m, nil

	case "y":
		return m, m.copyTrackName()
	}

	// Playlist panel keys
	if m.focusedPanel == PanelPlaylist && m.showPlaylist {
		switch msg.String() {
		case "j", "down":
			m.playlistView.SelectNext(m.ctrl.Playlist().Size())
			return m, nil
		case "k", "up":
			m.playlistView.SelectPrev()
			return m, nil
		case "enter":
			m.act(m.ctrl.LoadTrack(m.playlistView.Selected()))
			return m, nil
		}
	}

	// Playback controls
	switch key := msg.String(); key {
	case " ":
		m.act(m.ctrl.TogglePlayPause())
	case "n":
		m.act(m.ctrl.Next())
	case "p":
		m.act(m.ctrl.Previous())
	case "right":
		_, err := m.ctrl.SeekBy(m.opts.SeekStep)
		m.act(err)
	case "left":
		_, err := m.ctrl.SeekBy(-m.opts.SeekStep)
		m.act(err)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		_, err := m.ctrl.SeekTo(float64(key[0]-'0') * 10)
		m.act(err)
	case "r":
		_, err := m.ctrl.Restart()
		m.act(err)
	case "+", "=":
		m.ctrl.SetVolume(m.ctrl.State().Volume + m.opts.VolumeStep)
		m.act(nil)
	case "-":
		m.ctrl.SetVolume(m.ctrl.State().Volume - m.opts.VolumeStep)
		m.act(nil)
	}

	return m, nil
}

func (m Model) handleJumpKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showJump = false
		m.jumpInput.Blur()
		return m, nil

	case "enter":
		m.showJump = false
		m.jumpInput.Blur()
		i, err := m.ctrl.Playlist().Find(m.jumpInput.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.act(m.ctrl.LoadTrack(i))
		m.playlistView.SetSelected(i)
		return m, nil
	}

	var inputCmd tea.Cmd
	m.jumpInput, inputCmd = m.jumpInput.Update(msg)
	return m, inputCmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) nextPanel(step int) Panel {
	panels := []Panel{PanelNowPlaying}
	if m.showPlaylist {
		panels = append(panels, PanelPlaylist)
	}
	panels = append(panels, PanelHistory)

	for i, p := range panels {
		if p == m.focusedPanel {
			return panels[(i+step+len(panels))%len(panels)]
		}
	}
	return PanelNowPlaying
}

// act records the outcome of a controller command and refreshes the display.
func (m *Model) act(err error) {
	m.setError(err)
	m.observe()
}

func (m *Model) setError(err error) {
	if err == nil {
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		return
	}
	m.opts.Logger.Warn("command failed", zap.Error(err))
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorDuration)
}

// observe refreshes the cached display and records history from the
// resulting tail events.
func (m *Model) observe() {
	m.display = m.ctrl.Display()
	for _, e := range m.watcher.Observe(m.display) {
		switch e.Type {
		case tail.EventTrackComplete, tail.EventTrackSkip, tail.EventPlaylistEnd:
			src := e.Previous
			if e.Type == tail.EventPlaylistEnd {
				src = e.Current
			}
			if src == nil || !src.HasTrack() {
				continue
			}
			m.addToHistory(src.TrackName, e.Type == tail.EventTrackSkip, e.Timestamp)
		case tail.EventTrackChange:
			if m.showPlaylist && e.Current != nil {
				m.playlistView.SetSelected(e.Current.Index - 1)
			}
		}
	}
}

func (m *Model) addToHistory(name string, skipped bool, at time.Time) {
	entry := components.HistoryEntry{
		Name:     name,
		PlayedAt: at,
		Skipped:  skipped,
	}

	// Add to front, keep max entries
	m.history = append([]components.HistoryEntry{entry}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showJump {
		return m.renderJump()
	}

	// Left: widget. Right: playlist (when shown) over history.
	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 2
	mainHeight := m.height - 2

	widget := m.nowPlaying.Render(m.display, m.ctrl.Decoration(), leftWidth-2, mainHeight-2, m.focusedPanel == PanelNowPlaying)

	var right string
	if m.showPlaylist {
		topHeight := mainHeight * 60 / 100
		bottomHeight := mainHeight - topHeight
		playlist := m.playlistView.Render(m.ctrl.Playlist().Tracks(), m.display.Index-1, rightWidth-2, topHeight-2, m.focusedPanel == PanelPlaylist)
		history := m.historyView.Render(m.history, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelHistory)
		right = lipgloss.JoinVertical(lipgloss.Left, playlist, history)
	} else {
		right = m.historyView.Render(m.history, rightWidth-2, mainHeight-2, m.focusedPanel == PanelHistory)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, widget, right)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:close  ?:help  space:play/pause  n/p:next/prev  ←/→:seek  +/-:volume  l:playlist  /:jump")

	if m.notice != "" && time.Now().Before(m.noticeExpiry) {
		status = styles.Playing.Render(m.notice)
	}
	if m.lastError != nil {
		status = styles.ErrorText.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "gifly - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Close
  ?            Toggle help
  /            Jump to track by name
  l            Show/hide playlist
  Tab          Next panel
  Shift+Tab    Previous panel
  y            Copy track name

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  ←/→          Seek back/forward
  0-9          Seek to 0%-90%
  r            Restart track
  +/=          Volume up
  -            Volume down

  Playlist Panel
  ──────────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Play selected

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

func (m Model) renderJump() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render("Jump to track"))
	b.WriteString("\n\n")
	b.WriteString(m.jumpInput.View())
	b.WriteString("\n\n")

	if q := m.jumpInput.Value(); q != "" {
		if i, err := m.ctrl.Playlist().Find(q); err == nil {
			t, _ := m.ctrl.Playlist().Get(i)
			b.WriteString(styles.Muted.Render(fmt.Sprintf("→ %d. %s", i+1, t.Name)))
		} else {
			b.WriteString(styles.Dim.Render("No match"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Dim.Render("Enter:play  Esc:close"))

	content := lipgloss.NewStyle().
		Width(60).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

// Run starts the TUI for ctrl and blocks until the user closes it.
func Run(ctrl *session.Controller, opts Options) error {
	if opts.Theme != "" {
		styles.Apply(opts.Theme)
	}

	model := NewModel(ctrl, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
