package core

import (
	"fmt"
	"math"
)

// Default gauge sizes.
const (
	DefaultSeekUnits   = 7
	DefaultVolumeUnits = 5
)

// Gauge is a discrete-unit indicator for a continuous ratio.
type Gauge struct {
	Units int
}

// Filled returns how many units are lit for ratio.
func (g Gauge) Filled(ratio float64) int {
	return FilledUnits(ratio, g.Units)
}

// Gauges holds the two widget gauges.
type Gauges struct {
	Seek   Gauge
	Volume Gauge
}

// DefaultGauges returns the 7-unit seek gauge and the 5-unit volume gauge.
func DefaultGauges() Gauges {
	return Gauges{
		Seek:   Gauge{Units: DefaultSeekUnits},
		Volume: Gauge{Units: DefaultVolumeUnits},
	}
}

// FilledUnits quantizes ratio onto units using round half up.
func FilledUnits(ratio float64, units int) int {
	if units <= 0 || math.IsNaN(ratio) {
		return 0
	}
	n := int(math.Floor(ratio*float64(units) + 0.5))
	if n < 0 {
		return 0
	}
	if n > units {
		return units
	}
	return n
}

// ProgressRatio returns elapsed/total in [0,1]. An unknown total (zero,
// negative, NaN or infinite) yields 0.
func ProgressRatio(elapsed, total float64) float64 {
	if !isFinite(total) || total <= 0 || !isFinite(elapsed) {
		return 0
	}
	r := elapsed / total
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// TimePlaceholder is shown for times that are not known.
const TimePlaceholder = "00:00"

// maxFormatSeconds is the largest time FormatTime renders. Floats past it
// have no fractional part and overflow int64 once divided into minutes.
const maxFormatSeconds = 1 << 53

// FormatTime formats seconds as zero-padded mm:ss.
func FormatTime(seconds float64) string {
	if !isFinite(seconds) || seconds < 0 || seconds >= maxFormatSeconds {
		return TimePlaceholder
	}
	m := int64(math.Floor(seconds / 60))
	s := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Display is the derived state handed to renderers. It is recomputed on
// demand and never stored by the session.
type Display struct {
	TrackName    string  `json:"track_name"`
	Playlist     uint64  `json:"playlist"` // changes on every playlist load
	Index        int     `json:"index"` // 1-based, 0 when nothing is loaded
	Count        int     `json:"count"`
	Playing      bool    `json:"playing"`
	Progress     float64 `json:"progress"`
	SeekFilled   int     `json:"seek_filled"`
	SeekUnits    int     `json:"seek_units"`
	Volume       float64 `json:"volume"`
	VolumeFilled int     `json:"volume_filled"`
	VolumeUnits  int     `json:"volume_units"`
	Elapsed      string  `json:"elapsed"`
	Total        string  `json:"total"`
	AtStart      bool    `json:"at_start"`
	AtEnd        bool    `json:"at_end"`
}

// HasTrack returns true if the display describes a loaded track.
func (d Display) HasTrack() bool {
	return d.Index > 0
}

// VolumePercent returns the volume as an integer percentage.
func (d Display) VolumePercent() int {
	return int(math.Round(d.Volume * 100))
}

// Derive computes the display for a session state and playlist.
func Derive(s SessionState, p *Playlist, g Gauges) Display {
	progress := ProgressRatio(s.Elapsed, s.Total)
	d := Display{
		Playlist:     p.Generation(),
		Count:        p.Size(),
		Playing:      s.IsPlaying,
		Progress:     progress,
		SeekFilled:   g.Seek.Filled(progress),
		SeekUnits:    g.Seek.Units,
		Volume:       s.Volume,
		VolumeFilled: g.Volume.Filled(s.Volume),
		VolumeUnits:  g.Volume.Units,
		Elapsed:      FormatTime(s.Elapsed),
		Total:        FormatTime(s.Total),
	}

	if t, err := p.Get(s.CurrentIndex); err == nil {
		d.TrackName = t.Name
		d.Index = s.CurrentIndex + 1
		d.AtStart = s.CurrentIndex == 0
		d.AtEnd = s.CurrentIndex == p.Size()-1
	}
	return d
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
