package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	apperr "github.com/tessro/gifly/internal/errors"
)

type stubSource struct {
	released int
	err      error
}

func (s *stubSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (s *stubSource) Format() string { return "wav" }

func (s *stubSource) Release() error {
	s.released++
	return s.err
}

func stubTracks(names ...string) []Track {
	tracks := make([]Track, len(names))
	for i, n := range names {
		tracks[i] = Track{Name: n, Source: &stubSource{}}
	}
	return tracks
}

func TestPlaylistLoad(t *testing.T) {
	p := NewPlaylist()
	if p.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", p.CurrentIndex())
	}

	if err := p.Load(stubTracks("a", "b")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Size() != 2 {
		t.Errorf("Size() = %d, want 2", p.Size())
	}
	if p.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", p.CurrentIndex())
	}
	if cur := p.Current(); cur == nil || cur.Name != "a" {
		t.Errorf("Current() = %v, want a", cur)
	}
}

func TestPlaylistLoadEmpty(t *testing.T) {
	p := NewPlaylist()
	if err := p.Load(nil); err != nil {
		t.Fatalf("Load(nil) error = %v", err)
	}
	if p.Size() != 0 {
		t.Errorf("Size() = %d, want 0", p.Size())
	}
	if !p.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if p.Current() != nil {
		t.Error("Current() should be nil for empty playlist")
	}
}

func TestPlaylistLoadReleasesPrevious(t *testing.T) {
	p := NewPlaylist()
	old := stubTracks("a", "b", "c")
	_ = p.Load(old)

	if err := p.Load(stubTracks("d")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, tr := range old {
		if n := tr.Source.(*stubSource).released; n != 1 {
			t.Errorf("%s released %d times, want 1", tr.Name, n)
		}
	}
}

func TestPlaylistLoadReportsReleaseErrors(t *testing.T) {
	p := NewPlaylist()
	boom := errors.New("boom")
	_ = p.Load([]Track{{Name: "bad", Source: &stubSource{err: boom}}})

	err := p.Load(stubTracks("x"))
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
	if p.Size() != 1 {
		t.Errorf("Size() = %d, want 1 even after release failure", p.Size())
	}
}

func TestPlaylistGet(t *testing.T) {
	p := NewPlaylist()
	_ = p.Load(stubTracks("a", "b"))

	tr, err := p.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if tr.Name != "b" {
		t.Errorf("Get(1).Name = %q, want b", tr.Name)
	}

	for _, i := range []int{-1, 2, 100} {
		if _, err := p.Get(i); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Get(%d) error = %v, want ErrNotFound", i, err)
		}
	}
}

func TestPlaylistClampIndex(t *testing.T) {
	p := NewPlaylist()

	if _, err := p.ClampIndex(0); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("ClampIndex(0) on empty error = %v, want ErrOutOfRange", err)
	}
	if _, err := p.ClampIndex(0); !errors.Is(err, apperr.ErrEmptyPlaylist) {
		t.Errorf("ClampIndex(0) on empty error = %v, want ErrEmptyPlaylist", err)
	}

	_ = p.Load(stubTracks("a", "b", "c"))

	tests := []struct {
		requested int
		want      int
		wantErr   bool
	}{
		{0, 0, false},
		{2, 2, false},
		{-1, 0, true},
		{3, 0, true},
	}
	for _, tt := range tests {
		got, err := p.ClampIndex(tt.requested)
		if (err != nil) != tt.wantErr {
			t.Errorf("ClampIndex(%d) error = %v, wantErr %v", tt.requested, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, apperr.ErrOutOfRange) {
			t.Errorf("ClampIndex(%d) error = %v, want ErrOutOfRange", tt.requested, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ClampIndex(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestPlaylistJump(t *testing.T) {
	p := NewPlaylist()
	_ = p.Load(stubTracks("a", "b", "c"))

	if err := p.Jump(1); err != nil {
		t.Fatalf("Jump(1) error = %v", err)
	}
	if cur := p.Current(); cur == nil || cur.Name != "b" {
		t.Errorf("Current() = %v, want b", cur)
	}

	if err := p.Jump(3); err == nil {
		t.Error("Jump(3) should fail")
	}
	if p.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d after failed jump, want 1", p.CurrentIndex())
	}
}

func TestPlaylistGeneration(t *testing.T) {
	p := NewPlaylist()
	if p.Generation() != 0 {
		t.Errorf("Generation() = %d before Load, want 0", p.Generation())
	}
	_ = p.Load(stubTracks("a", "b"))
	first := p.Generation()
	_ = p.Jump(1)
	if p.Generation() != first {
		t.Error("Jump changed Generation()")
	}
	_ = p.Load(stubTracks("c", "d"))
	if p.Generation() == first {
		t.Error("same-size Load kept Generation()")
	}
}

func TestPlaylistTracksIsCopy(t *testing.T) {
	p := NewPlaylist()
	_ = p.Load(stubTracks("a"))

	tracks := p.Tracks()
	tracks[0].Name = "changed"

	if tr, _ := p.Get(0); tr.Name != "a" {
		t.Errorf("playlist mutated through Tracks(): %q", tr.Name)
	}
}

func TestPlaylistFind(t *testing.T) {
	p := NewPlaylist()
	_ = p.Load(stubTracks("Intro.mp3", "Song A.mp3", "song b.wav"))

	tests := []struct {
		query string
		want  int
	}{
		{"song", 1},
		{"B.WAV", 2},
		{"intro", 0},
	}
	for _, tt := range tests {
		got, err := p.Find(tt.query)
		if err != nil {
			t.Errorf("Find(%q) error = %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Find(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}

	_ = p.Jump(1)
	if got, _ := p.Find("song"); got != 2 {
		t.Errorf("Find(song) after Jump(1) = %d, want 2", got)
	}

	for _, q := range []string{"", "  ", "missing"} {
		if _, err := p.Find(q); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrNotFound", q, err)
		}
	}
}
