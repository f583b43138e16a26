// Package audio provides playback surfaces: a speaker backed by beep and an
// in-memory mock for tests.
package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
)

const (
	DefaultSampleRate   = beep.SampleRate(44100)
	DefaultTickInterval = 250 * time.Millisecond

	bufferDuration  = 100 * time.Millisecond
	resampleQuality = 4
	eventBuffer     = 16
)

// The beep speaker is process-global and may only be initialized once.
var (
	initOnce sync.Once
	initErr  error
	initRate beep.SampleRate
)

func initSpeaker(sr beep.SampleRate) (beep.SampleRate, error) {
	initOnce.Do(func() {
		initRate = sr
		if err := speaker.Init(sr, sr.N(bufferDuration)); err != nil {
			initErr = fmt.Errorf("init speaker: %w", err)
		}
	})
	return initRate, initErr
}

// trackState bundles the beep chain for one bound source.
type trackState struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	ctrl     *beep.Ctrl
}

func (t *trackState) close() error {
	return t.streamer.Close()
}

func (t *trackState) total() float64 {
	return t.format.SampleRate.D(t.streamer.Len()).Seconds()
}

// Speaker is a core.Surface that plays through the system audio device.
//
// Lock order is s.mu then the speaker lock. The end-of-stream callback runs
// under the speaker lock, so it only touches atomics and the event channel.
type Speaker struct {
	sampleRate beep.SampleRate
	interval   time.Duration
	log        *zap.Logger

	mu      sync.Mutex
	track   *trackState
	level   float64
	binding uint64

	generation atomic.Uint64
	ended      atomic.Bool

	events    chan core.SurfaceEvent
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Speaker.
type Option func(*Speaker)

// WithTickInterval sets how often time-update events fire while playing.
func WithTickInterval(d time.Duration) Option {
	return func(s *Speaker) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSampleRate sets the output sample rate.
func WithSampleRate(sr beep.SampleRate) Option {
	return func(s *Speaker) {
		if sr > 0 {
			s.sampleRate = sr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Speaker) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSpeaker opens the audio device and starts the time-update ticker.
func NewSpeaker(opts ...Option) (*Speaker, error) {
	s := &Speaker{
		sampleRate: DefaultSampleRate,
		interval:   DefaultTickInterval,
		log:        zap.NewNop(),
		level:      1,
		events:     make(chan core.SurfaceEvent, eventBuffer),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	sr, err := initSpeaker(s.sampleRate)
	if err != nil {
		return nil, err
	}
	s.sampleRate = sr

	go s.tickLoop()
	return s, nil
}

// Events returns the surface event channel.
func (s *Speaker) Events() <-chan core.SurfaceEvent {
	return s.events
}

// SetSource decodes src and binds it, paused at the start.
func (s *Speaker) SetSource(src core.Source) error {
	if src == nil {
		return apperr.ErrNoSource
	}

	rc, err := src.Open()
	if err != nil {
		return err
	}
	streamer, format, err := decode(src.Format(), rc)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Clear()
	if s.track != nil {
		if err := s.track.close(); err != nil {
			s.log.Warn("close previous track", zap.Error(err))
		}
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		stream = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}
	vol := &effects.Volume{Streamer: stream, Base: volumeBase}
	vol.Volume, vol.Silent = volumeFor(s.level)
	ctrl := &beep.Ctrl{Streamer: vol, Paused: true}

	s.binding++
	s.track = &trackState{
		streamer: streamer,
		format:   format,
		volume:   vol,
		ctrl:     ctrl,
	}
	total := s.track.total()
	s.queueLocked(total)

	s.log.Debug("source bound",
		zap.String("format", src.Format()),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Float64("duration", total))

	s.emit(core.SurfaceEvent{Type: core.EventMetadataLoaded, Total: total, Binding: s.binding})
	return nil
}

// Binding returns the id of the bound source.
func (s *Speaker) Binding() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding
}

// queueLocked hands the current track to the speaker under a new generation.
// Callers hold s.mu but not the speaker lock.
func (s *Speaker) queueLocked(total float64) {
	gen := s.generation.Add(1)
	binding := s.binding
	s.ended.Store(false)
	speaker.Play(beep.Seq(s.track.ctrl, beep.Callback(func() {
		s.finished(gen, binding, total)
	})))
}

// finished runs on the speaker goroutine with the speaker lock held.
func (s *Speaker) finished(gen, binding uint64, total float64) {
	if gen != s.generation.Load() {
		return
	}
	s.ended.Store(true)
	ev := core.SurfaceEvent{Type: core.EventEnded, Elapsed: total, Total: total, Binding: binding}
	go func() {
		select {
		case s.events <- ev:
		case <-s.done:
		}
	}()
}

// Play resumes playback. A track that already ended restarts from the top.
func (s *Speaker) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		return apperr.ErrNoSource
	}

	if s.ended.Load() {
		speaker.Lock()
		err := s.track.streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		s.queueLocked(s.track.total())
	}

	speaker.Lock()
	s.track.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause pauses playback.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		return
	}
	speaker.Lock()
	s.track.ctrl.Paused = true
	speaker.Unlock()
}

// Paused reports whether playback is halted. An ended or empty surface is
// paused.
func (s *Speaker) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pausedLocked()
}

func (s *Speaker) pausedLocked() bool {
	if s.track == nil || s.ended.Load() {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.track.ctrl.Paused
}

// CurrentTime returns the playback position in seconds.
func (s *Speaker) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		return 0
	}
	return s.positionLocked()
}

func (s *Speaker) positionLocked() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return s.track.format.SampleRate.D(s.track.streamer.Position()).Seconds()
}

// SetCurrentTime seeks to seconds, clamped to the track length.
func (s *Speaker) SetCurrentTime(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		return apperr.ErrNoSource
	}
	if math.IsNaN(seconds) {
		return apperr.ErrUnknownDuration
	}

	n := s.track.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if l := s.track.streamer.Len(); n > l {
		n = l
	}

	speaker.Lock()
	err := s.track.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	if s.ended.Load() {
		speaker.Lock()
		s.track.ctrl.Paused = true
		speaker.Unlock()
		s.queueLocked(s.track.total())
	}
	return nil
}

// Duration returns the track length in seconds, NaN when nothing is bound.
func (s *Speaker) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		return math.NaN()
	}
	return s.track.total()
}

// Volume returns the linear volume level.
func (s *Speaker) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetVolume sets the linear volume level, clamped to [0,1].
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = clampLevel(level)
	if s.track == nil {
		return
	}
	speaker.Lock()
	s.track.volume.Volume, s.track.volume.Silent = volumeFor(s.level)
	speaker.Unlock()
}

// Close stops playback and releases the decoder. The audio device stays
// initialized for the life of the process.
func (s *Speaker) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()

		s.generation.Add(1)
		speaker.Clear()
		if s.track != nil {
			err = s.track.close()
			s.track = nil
		}
	})
	return err
}

func (s *Speaker) tickLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.track == nil || s.pausedLocked() {
				s.mu.Unlock()
				continue
			}
			ev := core.SurfaceEvent{
				Type:    core.EventTimeUpdate,
				Elapsed: s.positionLocked(),
				Total:   s.track.total(),
				Binding: s.binding,
			}
			s.mu.Unlock()
			s.emit(ev)
		}
	}
}

// emit sends ev without blocking. Events are dropped while the buffer is
// full.
func (s *Speaker) emit(ev core.SurfaceEvent) {
	select {
	case s.events <- ev:
	default:
		s.log.Debug("surface event dropped", zap.Stringer("type", ev.Type))
	}
}

var _ core.Surface = (*Speaker)(nil)
