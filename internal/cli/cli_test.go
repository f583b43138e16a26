package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tessro/gifly/internal/audio"
	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/session"
	"github.com/tessro/gifly/internal/tail"
)

type nopSource struct{}

func (nopSource) Open() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("")), nil }
func (nopSource) Format() string               { return "mp3" }
func (nopSource) Release() error               { return nil }

func newTestShell(t *testing.T, names ...string) (*shell, *audio.Mock, *bytes.Buffer) {
	t.Helper()
	mock := audio.NewMock()
	mock.SetDuration(200)
	ctrl := session.New(mock)

	tracks := make([]core.Track, len(names))
	for i, n := range names {
		tracks[i] = core.Track{Name: n, Source: nopSource{}}
	}
	if err := ctrl.Load(tracks); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var out bytes.Buffer
	sh := newShell(ctrl, tail.NewFormatter(tail.WithEmoji(false)), &out, 5)
	sh.observe()
	return sh, mock, &out
}

func TestShellNavigation(t *testing.T) {
	sh, _, out := newTestShell(t, "intro.mp3", "song.mp3", "outro.mp3")

	if !strings.Contains(out.String(), "Now playing: intro.mp3 (1/3)") {
		t.Errorf("initial output = %q", out.String())
	}

	out.Reset()
	sh.exec("next")
	if got := sh.ctrl.Display().Index; got != 2 {
		t.Errorf("after next: Index = %d, want 2", got)
	}
	if !strings.Contains(out.String(), "Skipped: intro.mp3") {
		t.Errorf("next output = %q, want skip line", out.String())
	}

	sh.exec("goto 3")
	if got := sh.ctrl.Display().Index; got != 3 {
		t.Errorf("after goto 3: Index = %d, want 3", got)
	}

	// next at the last track does nothing
	sh.exec("next")
	if got := sh.ctrl.Display().Index; got != 3 {
		t.Errorf("next at end: Index = %d, want 3", got)
	}

	sh.exec("find song")
	if got := sh.ctrl.Display().Index; got != 2 {
		t.Errorf("after find song: Index = %d, want 2", got)
	}
}

func TestShellPlaybackCommands(t *testing.T) {
	sh, mock, out := newTestShell(t, "a.mp3")

	sh.exec("pause")
	if !mock.Paused() {
		t.Error("pause should pause the surface")
	}
	sh.exec("pause")
	if !mock.Paused() {
		t.Error("pause while paused should stay paused")
	}
	sh.exec("play")
	if mock.Paused() {
		t.Error("play should resume")
	}

	sh.exec("seek 50")
	if mock.CurrentTime() != 100 {
		t.Errorf("seek 50: time = %v, want 100", mock.CurrentTime())
	}
	sh.exec("fwd")
	if mock.CurrentTime() != 105 {
		t.Errorf("fwd: time = %v, want 105", mock.CurrentTime())
	}
	sh.exec("back 20")
	if mock.CurrentTime() != 85 {
		t.Errorf("back 20: time = %v, want 85", mock.CurrentTime())
	}
	sh.exec("restart")
	if mock.CurrentTime() != 0 {
		t.Errorf("restart: time = %v, want 0", mock.CurrentTime())
	}

	out.Reset()
	sh.exec("vol 40")
	if got := sh.ctrl.Display().VolumePercent(); got != 40 {
		t.Errorf("vol 40: VolumePercent = %d", got)
	}
	if !strings.Contains(out.String(), "Volume") {
		t.Errorf("vol output = %q, want volume event", out.String())
	}
}

func TestShellBadInput(t *testing.T) {
	sh, _, out := newTestShell(t, "a.mp3", "b.mp3")

	tests := []struct {
		line string
		want string
	}{
		{"seek", "missing number"},
		{"seek abc", "invalid number"},
		{"vol 150", "out of range"},
		{"goto 9", "out of range"},
		{"goto 1.9", "invalid track number"},
		{"goto", "missing number"},
		{"seek NaN", "invalid number"},
		{"vol nan", "invalid number"},
		{"fwd +Inf", "invalid number"},
		{"dance", "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			if sh.exec(tt.line) {
				t.Fatal("exec() requested exit")
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}

	if got := sh.ctrl.Display().Index; got != 1 {
		t.Errorf("bad input moved the playlist to %d", got)
	}
}

func TestShellQuitAndInfo(t *testing.T) {
	sh, _, out := newTestShell(t, "a.mp3", "b.mp3")

	if sh.exec("") {
		t.Error("empty line should not exit")
	}

	out.Reset()
	sh.exec("list")
	if !strings.Contains(out.String(), "▶ 1. a.mp3") || !strings.Contains(out.String(), "2. b.mp3") {
		t.Errorf("list output = %q", out.String())
	}

	out.Reset()
	sh.exec("status")
	if !strings.Contains(out.String(), "a.mp3 (1/2)") || !strings.Contains(out.String(), "♥") {
		t.Errorf("status output = %q", out.String())
	}

	for _, q := range []string{"quit", "exit", "q", "QUIT"} {
		if !sh.exec(q) {
			t.Errorf("exec(%q) should exit", q)
		}
	}
}

func TestShellDispatchFinishes(t *testing.T) {
	sh, mock, out := newTestShell(t, "a.mp3", "b.mp3")

	sh.dispatch(mock.Advance(199))
	if sh.dispatch(mock.End()) {
		t.Error("first track ending should not finish the playlist")
	}
	if got := sh.ctrl.Display().Index; got != 2 {
		t.Fatalf("Index = %d, want 2", got)
	}

	out.Reset()
	sh.dispatch(mock.Advance(199))
	if !sh.dispatch(mock.End()) {
		t.Error("last track ending should finish the playlist")
	}
	if !strings.Contains(out.String(), "Playlist finished") {
		t.Errorf("output = %q", out.String())
	}
}

func TestNumberArg(t *testing.T) {
	if v, err := numberArg([]string{"42.5"}, 0, 100); err != nil || v != 42.5 {
		t.Errorf("numberArg(42.5) = %v, %v", v, err)
	}
	if _, err := numberArg([]string{"-1"}, 0, 100); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("numberArg(-1) error = %v, want ErrOutOfRange", err)
	}
	for _, arg := range []string{"NaN", "Inf", "-inf"} {
		if _, err := numberArg([]string{arg}, 0, 100); err == nil {
			t.Errorf("numberArg(%s) accepted", arg)
		}
	}
}

func TestIndexArg(t *testing.T) {
	if n, err := indexArg([]string{"2"}, 1, 3); err != nil || n != 2 {
		t.Errorf("indexArg(2) = %d, %v", n, err)
	}
	if _, err := indexArg([]string{"4"}, 1, 3); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("indexArg(4) error = %v, want ErrOutOfRange", err)
	}
	for _, arg := range []string{"1.9", "2.0", "two", "NaN"} {
		if _, err := indexArg([]string{arg}, 1, 3); err == nil {
			t.Errorf("indexArg(%s) accepted", arg)
		}
	}
}

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    interface{}
		wantErr bool
	}{
		{"playback.volume", "60", 60, false},
		{"playback.volume", "loud", nil, true},
		{"tui.show_playlist", "yes", true, false},
		{"tail.timestamps", "no", false, false},
		{"library.dir", "~/Music", "~/Music", false},
		{"defaults.device", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := parseConfigValue(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHearts(2, 5); got != "♥♥♡♡♡" {
		t.Errorf("FormatHearts(2, 5) = %q", got)
	}
	if got := FormatHearts(9, 3); got != "♥♥♥" {
		t.Errorf("FormatHearts(9, 3) = %q", got)
	}
	if got := FormatDuration(3725); got != "1:02:05" {
		t.Errorf("FormatDuration(3725) = %q", got)
	}
	if got := FormatDuration(65); got != "1:05" {
		t.Errorf("FormatDuration(65) = %q", got)
	}
	if got := TruncateString("héllo wörld", 8); got != "héllo..." {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableWriter(&buf, "NAME", "SIZE")
	tbl.Row("a.mp3", "1.2 MB")
	tbl.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "a.mp3") {
		t.Errorf("table = %q", buf.String())
	}
}
