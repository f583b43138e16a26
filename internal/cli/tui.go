package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/gifly/internal/tui"
)

var (
	tuiTheme    string
	tuiPlaylist bool
)

var tuiCmd = &cobra.Command{
	Use:     "ui [files or directories...]",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive player",
	Long: `Launch the interactive terminal player.

Without arguments a picker lists the audio files under library.dir.

The player shows:
  • Now Playing - decoration, progress hearts, controls, volume hearts
  • Playlist - loaded tracks (toggle with l)
  • History - tracks finished or skipped this session

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Jump to a track by name
  Space        Play/Pause
  n            Next track
  p            Previous track
  ←/→          Seek backward/forward
  0-9          Seek to 0%-90%
  r            Restart track
  +/-          Volume up/down
  y            Copy track name
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme (auto, latte, frappe, macchiato, mocha)")
	tuiCmd.Flags().BoolVarP(&tuiPlaylist, "playlist", "l", false, "show the playlist panel on start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	tracks, err := selectTracks(args)
	if err != nil {
		return err
	}

	log, err := newLogger(false)
	if err != nil {
		return err
	}

	p, err := openPlayer(tracks, log)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	theme := cfg.TUI.Theme
	if tuiTheme != "" {
		theme = tuiTheme
	}

	return tui.Run(p.ctrl, tui.Options{
		SeekStep:     float64(cfg.Playback.SeekStep),
		VolumeStep:   float64(cfg.Playback.VolumeStep) / 100,
		ShowPlaylist: cfg.TUI.ShowPlaylist || tuiPlaylist,
		Theme:        theme,
		Logger:       log,
	})
}
