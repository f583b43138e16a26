package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/session"
	"github.com/tessro/gifly/internal/tail"
)

// shellHelp lists the commands the play shell understands.
const shellHelp = `Commands:
  toggle, t          play or pause
  play, pause        resume or pause
  next, n            next track
  prev, p            previous track
  seek <percent>     jump to a position, e.g. seek 50
  fwd [seconds]      skip forward (default: seek_step)
  back [seconds]     skip backward (default: seek_step)
  restart, r         back to the start of the track
  vol <0-100>        set volume
  goto <n>           play track n
  find <text>        play the next track whose name contains text
  list, ls           show the playlist
  status, s          show what is playing
  help, ?            show this help
  quit, q            stop and exit`

// shell executes play-shell commands against a controller and prints the
// resulting playback events.
type shell struct {
	ctrl      *session.Controller
	watcher   *tail.Watcher
	formatter *tail.Formatter
	out       io.Writer
	seekStep  float64
}

func newShell(ctrl *session.Controller, formatter *tail.Formatter, out io.Writer, seekStep float64) *shell {
	return &shell{
		ctrl:      ctrl,
		watcher:   tail.NewWatcher(),
		formatter: formatter,
		out:       out,
		seekStep:  seekStep,
	}
}

// observe prints the events since the last call. It reports whether the
// playlist just finished.
func (s *shell) observe() bool {
	finished := false
	for _, ev := range s.watcher.Observe(s.ctrl.Display()) {
		fmt.Fprintln(s.out, s.formatter.Format(ev))
		if ev.Type == tail.EventPlaylistEnd {
			finished = true
		}
	}
	return finished
}

// dispatch feeds a surface event into the controller.
func (s *shell) dispatch(ev core.SurfaceEvent) bool {
	if _, err := s.ctrl.Dispatch(ev); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return s.observe()
}

// exec runs one command line. It returns true when the shell should exit.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return false
	case "list", "ls":
		s.printList()
		return false
	case "status", "s":
		s.printStatus()
		return false

	case "toggle", "t":
		err = s.ctrl.TogglePlayPause()
	case "play":
		if !s.ctrl.State().IsPlaying {
			err = s.ctrl.TogglePlayPause()
		}
	case "pause":
		if s.ctrl.State().IsPlaying {
			err = s.ctrl.TogglePlayPause()
		}
	case "next", "n":
		err = s.ctrl.Next()
	case "prev", "p":
		err = s.ctrl.Previous()
	case "restart", "r":
		_, err = s.ctrl.Restart()
	case "seek":
		var pct float64
		if pct, err = numberArg(args, 0, 100); err == nil {
			_, err = s.ctrl.SeekTo(pct)
		}
	case "fwd", "back":
		step := s.seekStep
		if len(args) > 0 {
			step, err = numberArg(args, 0, 3600)
		}
		if err == nil {
			if cmd == "back" {
				step = -step
			}
			_, err = s.ctrl.SeekBy(step)
		}
	case "vol", "volume":
		var pct float64
		if pct, err = numberArg(args, 0, 100); err == nil {
			s.ctrl.SetVolume(pct / 100)
		}
	case "goto":
		var n int
		if n, err = indexArg(args, 1, s.ctrl.Playlist().Size()); err == nil {
			err = s.ctrl.LoadTrack(n - 1)
		}
	case "find":
		var idx int
		if idx, err = s.ctrl.Playlist().Find(strings.Join(args, " ")); err == nil {
			err = s.ctrl.LoadTrack(idx)
		}
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help for a list\n", cmd)
		return false
	}

	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	s.observe()
	return false
}

func (s *shell) printList() {
	tracks := s.ctrl.Playlist().Tracks()
	if len(tracks) == 0 {
		fmt.Fprintln(s.out, "Playlist is empty")
		return
	}
	current := s.ctrl.State().CurrentIndex
	for i, t := range tracks {
		prefix := "  "
		if i == current {
			prefix = "▶ "
		}
		fmt.Fprintf(s.out, "%s%d. %s\n", prefix, i+1, t.Name)
	}
}

func (s *shell) printStatus() {
	d := s.ctrl.Display()
	if !d.HasTrack() {
		fmt.Fprintln(s.out, "Nothing loaded")
		return
	}
	fmt.Fprintf(s.out, "%s %s (%d/%d)\n", StatusIcon(d.Playing), d.TrackName, d.Index, d.Count)
	fmt.Fprintf(s.out, "  %s %s %s\n", d.Elapsed, FormatHearts(d.SeekFilled, d.SeekUnits), d.Total)
	fmt.Fprintf(s.out, "  vol %s %d%%\n", FormatHearts(d.VolumeFilled, d.VolumeUnits), d.VolumePercent())
}

// numberArg parses the first argument and checks it against [lo, hi].
func numberArg(args []string, lo, hi float64) (float64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing number")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%g: %w (want %g-%g)", v, apperr.ErrOutOfRange, lo, hi)
	}
	return v, nil
}

// indexArg parses the first argument as a whole number in [lo, hi].
func indexArg(args []string, lo, hi int) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid track number %q", args[0])
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d: %w (want %d-%d)", n, apperr.ErrOutOfRange, lo, hi)
	}
	return n, nil
}
