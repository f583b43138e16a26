package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/tail"
)

var playNoEmoji bool

var playCmd = &cobra.Command{
	Use:   "play [files or directories...]",
	Short: "Play tracks from a command shell",
	Long: `Load the given files and control playback by typing commands.
Without arguments a picker lists the audio files under library.dir.

Playback events (track changes, skips, pauses) are printed as they happen.
Type help in the shell for the command list.

Examples:
  gifly play ~/Music/album
  gifly play intro.mp3 song.flac outro.ogg`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output")
	rootCmd.AddCommand(playCmd)
}

func shellCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("toggle"),
		readline.PcItem("play"),
		readline.PcItem("pause"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("seek"),
		readline.PcItem("fwd"),
		readline.PcItem("back"),
		readline.PcItem("restart"),
		readline.PcItem("vol"),
		readline.PcItem("goto"),
		readline.PcItem("find"),
		readline.PcItem("list"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gifly> ",
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("start shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	formatter := tail.NewFormatter(
		tail.WithEmoji(!playNoEmoji),
		tail.WithTimestamp(cfg.Tail.Timestamps),
		tail.WithTemplate(cfg.Tail.Format),
	)
	sh := newShell(p.ctrl, formatter, rl.Stdout(), float64(cfg.Playback.SeekStep))
	sh.observe()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(rl, done, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Commands and surface events are handled on this goroutine only.
	for {
		select {
		case line, ok := <-lines:
			if !ok || sh.exec(line) {
				return nil
			}
		case ev := <-p.ctrl.Events():
			sh.dispatch(ev)
		case <-sigCh:
			return nil
		}
	}
}

// readLines feeds shell input into a channel until EOF, Ctrl+C on an empty
// line, or done closing.
func readLines(rl *readline.Instance, done <-chan struct{}, log *zap.Logger) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return
				}
				continue
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Debug("shell input closed", zap.Error(err))
				}
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()
	return lines
}
