package core

import (
	"errors"
	"fmt"
	"strings"

	apperr "github.com/tessro/gifly/internal/errors"
)

// Playlist is the ordered set of tracks for the current session together with
// the current index. The index is -1 while the playlist is empty.
type Playlist struct {
	tracks       []Track
	currentIndex int
	generation   uint64
}

// NewPlaylist returns an empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{currentIndex: -1}
}

// Load replaces the playlist wholesale and resets the current index to 0.
// Sources of the replaced tracks are released; the returned error joins any
// release failures, the new tracks are installed regardless.
func (p *Playlist) Load(tracks []Track) error {
	err := p.Release()

	p.generation++
	p.tracks = make([]Track, len(tracks))
	copy(p.tracks, tracks)
	if len(p.tracks) == 0 {
		p.currentIndex = -1
	} else {
		p.currentIndex = 0
	}
	return err
}

// Generation counts calls to Load. Two playlists with the same tracks
// loaded at different times have different generations.
func (p *Playlist) Generation() uint64 {
	return p.generation
}

// Get returns the track at index.
func (p *Playlist) Get(index int) (Track, error) {
	if p == nil || index < 0 || index >= len(p.tracks) {
		return Track{}, fmt.Errorf("%w: index %d", apperr.ErrNotFound, index)
	}
	return p.tracks[index], nil
}

// Size returns the number of tracks.
func (p *Playlist) Size() int {
	if p == nil {
		return 0
	}
	return len(p.tracks)
}

// Len is an alias for Size.
func (p *Playlist) Len() int {
	return p.Size()
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return p.Size() == 0
}

// ClampIndex validates a navigation request. Requests outside [0, Size-1]
// fail with ErrOutOfRange; they are never wrapped or clamped.
func (p *Playlist) ClampIndex(requested int) (int, error) {
	if p.IsEmpty() {
		return 0, fmt.Errorf("%w: %w", apperr.ErrOutOfRange, apperr.ErrEmptyPlaylist)
	}
	if requested < 0 || requested >= len(p.tracks) {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", apperr.ErrOutOfRange, requested, len(p.tracks)-1)
	}
	return requested, nil
}

// Jump moves the current index.
func (p *Playlist) Jump(index int) error {
	i, err := p.ClampIndex(index)
	if err != nil {
		return err
	}
	p.currentIndex = i
	return nil
}

// CurrentIndex returns the current index, or -1 if the playlist is empty.
func (p *Playlist) CurrentIndex() int {
	if p.IsEmpty() {
		return -1
	}
	return p.currentIndex
}

// Current returns the current track, or nil if the playlist is empty.
func (p *Playlist) Current() *Track {
	if p.IsEmpty() || p.currentIndex < 0 || p.currentIndex >= len(p.tracks) {
		return nil
	}
	return &p.tracks[p.currentIndex]
}

// Find returns the index of the first track whose name contains query,
// ignoring case. The search starts after the current track and wraps.
func (p *Playlist) Find(query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || p.IsEmpty() {
		return 0, fmt.Errorf("%w: %q", apperr.ErrNotFound, query)
	}
	n := len(p.tracks)
	for k := 1; k <= n; k++ {
		i := (p.currentIndex + k) % n
		if strings.Contains(strings.ToLower(p.tracks[i].Name), q) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", apperr.ErrNotFound, query)
}

// Tracks returns a copy of the tracks in playlist order.
func (p *Playlist) Tracks() []Track {
	if p == nil {
		return nil
	}
	out := make([]Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Release frees every track source. The tracks stay in the playlist.
func (p *Playlist) Release() error {
	if p == nil {
		return nil
	}
	var errs []error
	for _, t := range p.tracks {
		if t.Source == nil {
			continue
		}
		if err := t.Source.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}
