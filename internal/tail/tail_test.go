package tail

import (
	"strings"
	"testing"
	"time"

	"github.com/tessro/gifly/internal/core"
)

func display(name string, index, count int, playing bool, progress, volume float64) core.Display {
	return core.Display{
		TrackName: name,
		Index:     index,
		Count:     count,
		Playing:   playing,
		Progress:  progress,
		Volume:    volume,
		Elapsed:   "00:10",
		Total:     "02:00",
		AtStart:   index == 1,
		AtEnd:     index == count,
	}
}

func loaded(playlist uint64, d core.Display) core.Display {
	d.Playlist = playlist
	return d
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func equalTypes(a, b []EventType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fixedWatcher() *Watcher {
	w := NewWatcher()
	w.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC) }
	return w
}

func TestWatcherFirstObservation(t *testing.T) {
	w := fixedWatcher()
	got := types(w.Observe(display("a.mp3", 1, 3, true, 0, 1)))
	want := []EventType{EventPlaylistLoaded, EventTrackChange}
	if !equalTypes(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	w.Reset()
	if got := w.Observe(core.Display{}); len(got) != 0 {
		t.Errorf("empty display produced %v", types(got))
	}
}

func TestWatcherTransitions(t *testing.T) {
	tests := []struct {
		name string
		prev core.Display
		curr core.Display
		want []EventType
	}{
		{
			name: "unchanged",
			prev: display("a", 1, 3, true, 0.1, 1),
			curr: display("a", 1, 3, true, 0.2, 1),
			want: nil,
		},
		{
			name: "skip",
			prev: display("a", 1, 3, true, 0.3, 1),
			curr: display("b", 2, 3, true, 0, 1),
			want: []EventType{EventTrackSkip, EventTrackChange},
		},
		{
			name: "complete",
			prev: display("a", 1, 3, true, 0.97, 1),
			curr: display("b", 2, 3, true, 0, 1),
			want: []EventType{EventTrackComplete, EventTrackChange},
		},
		{
			name: "pause",
			prev: display("a", 1, 3, true, 0.3, 1),
			curr: display("a", 1, 3, false, 0.3, 1),
			want: []EventType{EventPause},
		},
		{
			name: "resume",
			prev: display("a", 1, 3, false, 0.3, 1),
			curr: display("a", 1, 3, true, 0.3, 1),
			want: []EventType{EventResume},
		},
		{
			name: "volume",
			prev: display("a", 1, 3, true, 0.3, 1),
			curr: display("a", 1, 3, true, 0.3, 0.6),
			want: []EventType{EventVolumeChange},
		},
		{
			name: "playlist end",
			prev: display("c", 3, 3, true, 0.99, 1),
			curr: display("c", 3, 3, false, 1, 1),
			want: []EventType{EventPlaylistEnd},
		},
		{
			name: "reload",
			prev: loaded(1, display("c", 3, 3, true, 0.5, 1)),
			curr: loaded(2, display("x", 1, 5, true, 0, 1)),
			want: []EventType{EventPlaylistLoaded, EventTrackChange},
		},
		{
			name: "reload same size",
			prev: loaded(1, display("c", 3, 3, true, 0.5, 1)),
			curr: loaded(2, display("x", 1, 3, true, 0, 1)),
			want: []EventType{EventPlaylistLoaded, EventTrackChange},
		},
		{
			name: "reload same tracks",
			prev: loaded(1, display("a", 1, 3, true, 0.5, 1)),
			curr: loaded(2, display("a", 1, 3, true, 0, 1)),
			want: []EventType{EventPlaylistLoaded, EventTrackChange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fixedWatcher()
			w.Observe(tt.prev)
			got := types(w.Observe(tt.curr))
			if !equalTypes(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatcherTracksProgressBetweenChanges(t *testing.T) {
	w := fixedWatcher()
	w.Observe(display("a", 1, 2, true, 0.1, 1))
	w.Observe(display("a", 1, 2, true, 0.5, 1))
	w.Observe(display("a", 1, 2, true, 0.98, 1))

	got := w.Observe(display("b", 2, 2, true, 0, 1))
	if len(got) == 0 || got[0].Type != EventTrackComplete {
		t.Fatalf("events = %v, want track_complete first", types(got))
	}
	if got[0].Previous.Progress != 0.98 {
		t.Errorf("Previous.Progress = %v, want 0.98", got[0].Previous.Progress)
	}
}

func TestFormatterLine(t *testing.T) {
	curr := display("b.mp3", 2, 3, true, 0, 0.6)
	prev := display("a.mp3", 1, 3, true, 0.4, 0.6)
	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: EventTrackChange, Current: &curr}, "🎵 Now playing: b.mp3 (2/3)"},
		{Event{Type: EventTrackSkip, Previous: &prev, Current: &curr}, "⏭️ Skipped: a.mp3 at 00:10"},
		{Event{Type: EventTrackComplete, Previous: &prev}, "✅ Finished: a.mp3"},
		{Event{Type: EventVolumeChange, Current: &curr}, "🔊 Volume: 60%"},
		{Event{Type: EventPlaylistLoaded, Current: &curr}, "📂 Loaded 3 tracks"},
		{Event{Type: EventPlaylistEnd}, "🏁 Playlist finished"},
		{Event{Type: EventResume}, "▶️ Resumed"},
	}

	f := NewFormatter()
	for _, tt := range tests {
		tt.event.Timestamp = ts
		if got := f.Format(tt.event); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.event.Type, got, tt.want)
		}
	}
}

func TestFormatterOptions(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	e := Event{Type: EventPause, Timestamp: ts}

	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	if got := f.Format(e); got != "12:30:45 Paused" {
		t.Errorf("Format() = %q, want %q", got, "12:30:45 Paused")
	}
}

func TestFormatterTemplate(t *testing.T) {
	curr := display("b.mp3", 2, 3, true, 0, 0.6)
	e := Event{Type: EventTrackChange, Timestamp: time.Now(), Current: &curr}

	f := NewFormatter(WithTemplate("{{.Type}}|{{.Title}}|{{.Index}}/{{.Count}}|{{.Volume}}"))
	if got := f.Format(e); got != "track_change|b.mp3|2/3|60" {
		t.Errorf("Format() = %q", got)
	}

	bad := NewFormatter(WithTemplate("{{.Nope"))
	if got := bad.Format(e); !strings.Contains(got, "Now playing") {
		t.Errorf("invalid template should fall back to line format, got %q", got)
	}
}
