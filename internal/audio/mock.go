package audio

import (
	"math"
	"sync"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
)

// Calls counts the operations a Mock has received.
type Calls struct {
	SetSource int
	Play      int
	Pause     int
	Seek      int
}

// Mock is an in-memory core.Surface. Nothing advances on its own; tests drive
// time and end-of-track explicitly.
type Mock struct {
	mu sync.Mutex

	source   core.Source
	paused   bool
	current  float64
	duration float64
	volume   float64
	next     float64
	binding  uint64

	calls   Calls
	failSet error
	failRun error

	events chan core.SurfaceEvent
}

// NewMock returns a paused mock with no source.
func NewMock() *Mock {
	return &Mock{
		paused:   true,
		duration: math.NaN(),
		next:     math.NaN(),
		volume:   1,
		events:   make(chan core.SurfaceEvent, 64),
	}
}

func (m *Mock) SetSource(src core.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.SetSource++
	if m.failSet != nil {
		return m.failSet
	}
	if src == nil {
		return apperr.ErrNoSource
	}
	m.source = src
	m.binding++
	m.paused = true
	m.current = 0
	m.duration = m.next
	return nil
}

func (m *Mock) Binding() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.binding
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.Play++
	if m.failRun != nil {
		return m.failRun
	}
	if m.source == nil {
		return apperr.ErrNoSource
	}
	m.paused = false
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Pause++
	m.paused = true
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Mock) SetCurrentTime(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.Seek++
	if m.source == nil {
		return apperr.ErrNoSource
	}
	m.current = seconds
	return nil
}

func (m *Mock) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampLevel(level)
}

func (m *Mock) Events() <-chan core.SurfaceEvent {
	return m.events
}

// SetDuration sets the duration reported for the bound source and for every
// source bound afterwards.
func (m *Mock) SetDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next = seconds
	if m.source != nil {
		m.duration = seconds
	}
}

// Advance moves the playhead and returns the matching time-update event. The
// event is not queued; pass it to the consumer directly or via Emit.
func (m *Mock) Advance(seconds float64) core.SurfaceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = seconds
	return core.SurfaceEvent{Type: core.EventTimeUpdate, Elapsed: m.current, Total: m.duration, Binding: m.binding}
}

// End pauses at the end of the track and returns the ended event.
func (m *Mock) End() core.SurfaceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
	if !math.IsNaN(m.duration) {
		m.current = m.duration
	}
	return core.SurfaceEvent{Type: core.EventEnded, Elapsed: m.current, Total: m.duration, Binding: m.binding}
}

// Emit queues ev on the event channel.
func (m *Mock) Emit(ev core.SurfaceEvent) {
	m.events <- ev
}

// FailSetSource makes every later SetSource return err. Pass nil to clear.
func (m *Mock) FailSetSource(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

// FailPlay makes every later Play return err. Pass nil to clear.
func (m *Mock) FailPlay(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRun = err
}

// Source returns the bound source.
func (m *Mock) Source() core.Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// Calls returns a snapshot of the call counters.
func (m *Mock) Calls() Calls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ core.Surface = (*Mock)(nil)
