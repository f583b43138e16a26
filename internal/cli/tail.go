package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/gifly/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
)

var tailCmd = &cobra.Command{
	Use:   "tail [files or directories...]",
	Short: "Play tracks without a UI and print events",
	Long: `Play the playlist from start to finish, printing playback events
as they happen. Exits when the last track ends or on Ctrl+C.

Events printed:
  - Playlist loaded
  - Track changes (new song started)
  - Track completions (song finished)
  - Playlist finished

Format templates can use {{.Type}}, {{.Emoji}}, {{.Time}}, {{.Title}},
{{.PreviousTitle}}, {{.Index}}, {{.Count}}, {{.Elapsed}}, {{.Total}} and
{{.Volume}}.`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	tracks, err := selectTracks(args)
	if err != nil {
		return err
	}

	log, err := newLogger(true)
	if err != nil {
		return err
	}

	p, err := openPlayer(tracks, log)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	format := cfg.Tail.Format
	if tailFormat != "" {
		format = tailFormat
	}
	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp || cfg.Tail.Timestamps),
		tail.WithTemplate(format),
	)
	sh := newShell(p.ctrl, formatter, os.Stdout, float64(cfg.Playback.SeekStep))

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sh.observe() {
		return nil
	}
	return follow(ctx, sh)
}

// follow dispatches surface events until the playlist finishes or ctx ends.
func follow(ctx context.Context, sh *shell) error {
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case ev := <-sh.ctrl.Events():
			if sh.dispatch(ev) {
				return nil
			}
		}
	}
}
