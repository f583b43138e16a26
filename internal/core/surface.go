package core

// SurfaceEventType identifies an event emitted by a playback surface.
type SurfaceEventType int

const (
	EventTimeUpdate SurfaceEventType = iota
	EventMetadataLoaded
	EventEnded
)

// String returns the event name.
func (t SurfaceEventType) String() string {
	switch t {
	case EventTimeUpdate:
		return "timeupdate"
	case EventMetadataLoaded:
		return "loadedmetadata"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SurfaceEvent is one notification from a playback surface. Times are in
// seconds; Total is NaN while the duration is unknown. Binding is the
// surface's binding id for the source the event belongs to.
type SurfaceEvent struct {
	Type    SurfaceEventType
	Elapsed float64
	Total   float64
	Binding uint64
}

// Surface is the media element that actually decodes and plays audio.
// Only the session controller commands it.
type Surface interface {
	// SetSource binds a new source. The surface is paused afterwards.
	SetSource(src Source) error
	// Binding identifies the bound source. It changes on every successful
	// SetSource and tags every event emitted for that source.
	Binding() uint64
	Play() error
	Pause()
	Paused() bool

	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	// Duration returns the length in seconds, NaN before metadata loads.
	Duration() float64

	// Volume is a linear level in [0,1].
	Volume() float64
	SetVolume(level float64)

	// Events delivers time-update, metadata-loaded and ended events.
	Events() <-chan SurfaceEvent
}
