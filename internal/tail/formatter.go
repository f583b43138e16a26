package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. An invalid template is
// ignored.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}

	if d := e.Current; d != nil {
		data.Title = d.TrackName
		data.Index = d.Index
		data.Count = d.Count
		data.Elapsed = d.Elapsed
		data.Total = d.Total
		data.Volume = d.VolumePercent()
	}
	if e.Previous != nil {
		data.PreviousTitle = e.Previous.TrackName
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type          string
	Emoji         string
	Timestamp     time.Time
	Time          string
	Title         string
	PreviousTitle string
	Index         int
	Count         int
	Elapsed       string
	Total         string
	Volume        int
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventTrackChange:
		if e.Current != nil && e.Current.HasTrack() {
			return fmt.Sprintf("Now playing: %s (%d/%d)",
				e.Current.TrackName, e.Current.Index, e.Current.Count)
		}
		return "Track changed"

	case EventTrackComplete:
		if e.Previous != nil && e.Previous.HasTrack() {
			return fmt.Sprintf("Finished: %s", e.Previous.TrackName)
		}
		return "Track completed"

	case EventTrackSkip:
		if e.Previous != nil && e.Previous.HasTrack() {
			return fmt.Sprintf("Skipped: %s at %s", e.Previous.TrackName, e.Previous.Elapsed)
		}
		return "Track skipped"

	case EventPause:
		if e.Current != nil {
			return fmt.Sprintf("Paused at %s", e.Current.Elapsed)
		}
		return "Paused"

	case EventResume:
		return "Resumed"

	case EventVolumeChange:
		if e.Current != nil {
			return fmt.Sprintf("Volume: %d%%", e.Current.VolumePercent())
		}
		return "Volume changed"

	case EventPlaylistLoaded:
		if e.Current != nil {
			if e.Current.Count == 1 {
				return "Loaded 1 track"
			}
			return fmt.Sprintf("Loaded %d tracks", e.Current.Count)
		}
		return "Playlist loaded"

	case EventPlaylistEnd:
		return "Playlist finished"

	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventTrackComplete:
		return "✅"
	case EventTrackSkip:
		return "⏭️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventVolumeChange:
		return "🔊"
	case EventPlaylistLoaded:
		return "📂"
	case EventPlaylistEnd:
		return "🏁"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventTrackComplete:
		return "track_complete"
	case EventTrackSkip:
		return "track_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventVolumeChange:
		return "volume_change"
	case EventPlaylistLoaded:
		return "playlist_loaded"
	case EventPlaylistEnd:
		return "playlist_end"
	default:
		return "unknown"
	}
}

// String returns the event type name.
func (t EventType) String() string {
	return eventTypeName(t)
}
