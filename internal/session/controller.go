// Package session implements the playback session controller. A Controller
// owns one playlist and one playback surface binding for the lifetime of a UI.
//
// Controllers are not safe for concurrent use. Every method, including
// Dispatch for surface events, must be called from the same event loop.
package session

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/gallery"
)

// Controller binds a playlist to a playback surface.
type Controller struct {
	id       string
	surface  core.Surface
	playlist *core.Playlist
	state    core.SessionState
	gauges   core.Gauges

	gallery    *gallery.Gallery
	decoration gallery.Decoration

	// binding is the surface binding of the current track. Events tagged
	// with any other binding are stale.
	binding uint64

	log    *zap.Logger
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithGallery sets the decorations picked on each track change.
func WithGallery(g *gallery.Gallery) Option {
	return func(c *Controller) {
		c.gallery = g
	}
}

// WithGauges sets the gauge sizes.
func WithGauges(g core.Gauges) Option {
	return func(c *Controller) {
		c.gauges = g
	}
}

// WithVolume sets the starting volume.
func WithVolume(level float64) Option {
	return func(c *Controller) {
		c.state.Volume = clamp01(level)
	}
}

// New creates a controller for surface.
func New(surface core.Surface, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		surface:  surface,
		playlist: core.NewPlaylist(),
		state:    core.NewSessionState(),
		gauges:   core.DefaultGauges(),
		gallery:  gallery.Builtin(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("session", c.id))

	surface.SetVolume(c.state.Volume)
	c.decoration = c.gallery.Pick()

	c.log.Debug("session opened", zap.Float64("volume", c.state.Volume))
	return c
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Load replaces the playlist and starts the first track. An empty selection
// leaves the session untouched. The first track is bound before the playlist
// is replaced: if it cannot be bound the previous playlist, its sources and
// the session state are kept, and the new tracks stay with the caller.
func (c *Controller) Load(tracks []core.Track) error {
	if len(tracks) == 0 {
		c.log.Debug("empty selection ignored")
		return nil
	}

	if err := c.bind(tracks[0]); err != nil {
		return err
	}

	if err := c.playlist.Load(tracks); err != nil {
		c.log.Warn("release previous playlist", zap.Error(err))
	}

	volume := c.state.Volume
	c.state = core.NewSessionState()
	c.state.Volume = volume

	c.log.Info("playlist loaded", zap.Int("tracks", len(tracks)))
	return c.start(0, tracks[0])
}

// LoadTrack binds the track at index and starts playing it. An index outside
// the playlist is ignored.
func (c *Controller) LoadTrack(index int) error {
	i, err := c.playlist.ClampIndex(index)
	if err == nil {
		var track core.Track
		if track, err = c.playlist.Get(i); err == nil {
			if err := c.bind(track); err != nil {
				return err
			}
			return c.start(i, track)
		}
	}
	if apperr.IsNavigation(err) {
		c.log.Debug("navigation ignored", zap.Int("index", index), zap.Error(err))
		return nil
	}
	return err
}

// bind hands track to the surface and records the new binding. On failure
// the surface keeps its previous source.
func (c *Controller) bind(track core.Track) error {
	if err := c.surface.SetSource(track.Source); err != nil {
		c.log.Error("bind source", zap.String("track", track.Name), zap.Error(err))
		return fmt.Errorf("load %s: %w", track.Name, err)
	}
	c.binding = c.surface.Binding()
	return nil
}

// start makes the bound track at index current and plays it.
func (c *Controller) start(i int, track core.Track) error {
	_ = c.playlist.Jump(i)
	c.state.CurrentIndex = i
	c.state.Elapsed = 0
	c.state.Total = finite(c.surface.Duration())
	c.decoration = c.gallery.Pick()

	if err := c.surface.Play(); err != nil {
		c.state.IsPlaying = false
		c.log.Error("play", zap.String("track", track.Name), zap.Error(err))
		return fmt.Errorf("play %s: %w", track.Name, err)
	}
	c.state.IsPlaying = true

	c.log.Info("track loaded",
		zap.Int("index", i),
		zap.String("track", track.Name),
		zap.String("decoration", c.decoration.Name))
	return nil
}

// TogglePlayPause plays a paused surface and pauses a playing one.
func (c *Controller) TogglePlayPause() error {
	if !c.state.HasTrack() {
		return nil
	}

	if c.surface.Paused() {
		if err := c.surface.Play(); err != nil {
			return fmt.Errorf("play: %w", err)
		}
		c.state.IsPlaying = true
	} else {
		c.surface.Pause()
		c.state.IsPlaying = false
	}

	c.log.Debug("toggled", zap.Bool("playing", c.state.IsPlaying))
	return nil
}

// Next loads the following track. It does nothing on the last track.
func (c *Controller) Next() error {
	if !c.state.HasTrack() {
		return nil
	}
	return c.LoadTrack(c.state.CurrentIndex + 1)
}

// Previous loads the preceding track. It does nothing on the first track.
func (c *Controller) Previous() error {
	if !c.state.HasTrack() {
		return nil
	}
	return c.LoadTrack(c.state.CurrentIndex - 1)
}

// OnPlaybackEnded advances to the next track, or stops on the last one.
func (c *Controller) OnPlaybackEnded() error {
	if !c.state.HasTrack() {
		return nil
	}
	if !c.HasNext() {
		c.state.IsPlaying = false
		if c.state.Total > 0 {
			c.state.Elapsed = c.state.Total
		}
		c.log.Info("playlist finished")
		return nil
	}
	return c.Next()
}

// OnTimeUpdate records the playback position.
func (c *Controller) OnTimeUpdate(elapsed, total float64) core.Display {
	c.state.Elapsed = finite(elapsed)
	c.state.Total = finite(total)
	return c.Display()
}

// OnMetadataLoaded records the track duration.
func (c *Controller) OnMetadataLoaded(total float64) core.Display {
	c.state.Total = finite(total)
	return c.Display()
}

// SeekTo jumps to percent of the track, clamped to [0,100]. The position is
// updated immediately without waiting for the surface. With an unknown
// duration nothing is commanded.
func (c *Controller) SeekTo(percent float64) (core.Display, error) {
	if !c.state.HasTrack() || math.IsNaN(percent) {
		return c.Display(), nil
	}

	total := c.state.Total
	if total <= 0 {
		total = finite(c.surface.Duration())
		c.state.Total = total
	}
	if total <= 0 {
		c.log.Debug("seek ignored", zap.Error(apperr.ErrUnknownDuration))
		return c.Display(), nil
	}

	target := clamp01(percent/100) * total
	if err := c.surface.SetCurrentTime(target); err != nil {
		return c.Display(), fmt.Errorf("seek: %w", err)
	}
	c.state.Elapsed = target
	return c.Display(), nil
}

// SeekBy moves the position by delta seconds.
func (c *Controller) SeekBy(delta float64) (core.Display, error) {
	if c.state.Total <= 0 || math.IsNaN(delta) {
		return c.Display(), nil
	}
	return c.SeekTo((c.state.Elapsed + delta) / c.state.Total * 100)
}

// Restart seeks back to the start of the current track.
func (c *Controller) Restart() (core.Display, error) {
	return c.SeekTo(0)
}

// SetVolume sets the volume, clamped to [0,1]. NaN is ignored.
func (c *Controller) SetVolume(level float64) core.Display {
	if math.IsNaN(level) {
		return c.Display()
	}
	level = clamp01(level)
	c.surface.SetVolume(level)
	c.state.Volume = level
	return c.Display()
}

// Display derives the current display state.
func (c *Controller) Display() core.Display {
	return core.Derive(c.state, c.playlist, c.gauges)
}

// State returns a copy of the session state.
func (c *Controller) State() core.SessionState {
	return c.state
}

// Playlist returns the playlist. Callers must not modify it.
func (c *Controller) Playlist() *core.Playlist {
	return c.playlist
}

// Decoration returns the current decorative picture.
func (c *Controller) Decoration() gallery.Decoration {
	return c.decoration
}

// HasNext reports whether Next would change track.
func (c *Controller) HasNext() bool {
	return c.state.HasTrack() && c.state.CurrentIndex < c.playlist.Size()-1
}

// HasPrevious reports whether Previous would change track.
func (c *Controller) HasPrevious() bool {
	return c.state.HasTrack() && c.state.CurrentIndex > 0
}

// Close pauses the surface and releases every track source. The surface
// itself belongs to the caller.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.surface.Pause()
	err := c.playlist.Load(nil)

	volume := c.state.Volume
	c.state = core.NewSessionState()
	c.state.Volume = volume

	c.log.Debug("session closed")
	return err
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
