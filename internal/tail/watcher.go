package tail

import (
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/tessro/gifly/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventVolumeChange
	EventPlaylistLoaded
	EventPlaylistEnd
)

// completeThreshold is the progress above which a track that changed counts
// as finished rather than skipped.
const completeThreshold = 0.95

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Display
	Current   *core.Display
}

// fingerprint is the part of a display the watcher diffs on. Elapsed time and
// progress are not part of it.
type fingerprint struct {
	Playlist  uint64
	TrackName string
	Index     int
	Count     int
	Playing   bool
	Volume    int
}

// Watcher turns successive displays into playback events. It is fed from the
// session event loop and keeps no goroutines of its own.
type Watcher struct {
	prev     *core.Display
	lastHash uint64
	now      func() time.Time
}

// NewWatcher creates a new state watcher.
func NewWatcher() *Watcher {
	return &Watcher{now: time.Now}
}

// Observe records d and returns the events since the previous observation.
func (w *Watcher) Observe(d core.Display) []Event {
	curr := d
	hash, err := hashstructure.Hash(fingerprint{
		Playlist:  d.Playlist,
		TrackName: d.TrackName,
		Index:     d.Index,
		Count:     d.Count,
		Playing:   d.Playing,
		Volume:    d.VolumePercent(),
	}, hashstructure.FormatV2, nil)

	if err == nil && w.prev != nil && hash == w.lastHash {
		// Nothing we report on changed; keep progress fresh for the
		// complete/skip decision.
		w.prev = &curr
		return nil
	}

	events := diffDisplays(w.prev, &curr, w.now())
	w.prev = &curr
	w.lastHash = hash
	return events
}

// Reset forgets the previous observation.
func (w *Watcher) Reset() {
	w.prev = nil
	w.lastHash = 0
}

// diffDisplays compares two displays and returns detected events.
func diffDisplays(prev, curr *core.Display, now time.Time) []Event {
	if curr == nil {
		return nil
	}

	var events []Event
	emit := func(t EventType) {
		events = append(events, Event{
			Type:      t,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// First observation - no previous display
	if prev == nil {
		if curr.HasTrack() {
			emit(EventPlaylistLoaded)
			emit(EventTrackChange)
		}
		return events
	}

	reloaded := curr.Playlist != prev.Playlist && curr.HasTrack()
	if reloaded {
		emit(EventPlaylistLoaded)
	}

	if reloaded || trackChanged(prev, curr) {
		if prev.HasTrack() && !reloaded {
			if wasCompleted(prev) {
				emit(EventTrackComplete)
			} else {
				emit(EventTrackSkip)
			}
		}
		if curr.HasTrack() {
			emit(EventTrackChange)
		}
	} else if prev.Playing && !curr.Playing {
		if curr.AtEnd && wasCompleted(curr) {
			emit(EventPlaylistEnd)
		} else {
			emit(EventPause)
		}
	} else if !prev.Playing && curr.Playing {
		emit(EventResume)
	}

	if prev.VolumePercent() != curr.VolumePercent() {
		emit(EventVolumeChange)
	}

	return events
}

// trackChanged returns true if the track changed.
func trackChanged(prev, curr *core.Display) bool {
	return prev.Index != curr.Index || prev.TrackName != curr.TrackName
}

// wasCompleted returns true if the track likely completed naturally.
func wasCompleted(d *core.Display) bool {
	return d.Progress >= completeThreshold
}
