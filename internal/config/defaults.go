package config

import (
	"time"

	"github.com/tessro/gifly/internal/core"
	"github.com/tessro/gifly/internal/library"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Volume:     100,
			SeekStep:   5,
			VolumeStep: 10,
		},
		Gauges: GaugesConfig{
			SeekUnits:   core.DefaultSeekUnits,
			VolumeUnits: core.DefaultVolumeUnits,
		},
		Library: LibraryConfig{
			Dir:        ".",
			Extensions: append([]string(nil), library.DefaultExtensions...),
		},
		Audio: AudioConfig{
			TickInterval: 250,
			SampleRate:   44100,
		},
		TUI: TUIConfig{
			Theme:        "auto",
			ShowPlaylist: false,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Playback
	if c.Playback.Volume == 0 && !c.volumeSet {
		c.Playback.Volume = d.Playback.Volume
	}
	if c.Playback.SeekStep == 0 {
		c.Playback.SeekStep = d.Playback.SeekStep
	}
	if c.Playback.VolumeStep == 0 {
		c.Playback.VolumeStep = d.Playback.VolumeStep
	}

	// Gauges
	if c.Gauges.SeekUnits == 0 {
		c.Gauges.SeekUnits = d.Gauges.SeekUnits
	}
	if c.Gauges.VolumeUnits == 0 {
		c.Gauges.VolumeUnits = d.Gauges.VolumeUnits
	}

	// Library
	if c.Library.Dir == "" {
		c.Library.Dir = d.Library.Dir
	}
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = d.Library.Extensions
	}

	// Audio
	if c.Audio.TickInterval == 0 {
		c.Audio.TickInterval = d.Audio.TickInterval
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = d.Log.MaxSize
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = d.Log.MaxAge
	}
}

// StartVolume returns the starting volume as a level in [0,1].
func (c *Config) StartVolume() float64 {
	return float64(c.Playback.Volume) / 100
}

// GaugeSizes returns the configured gauges.
func (c *Config) GaugeSizes() core.Gauges {
	return core.Gauges{
		Seek:   core.Gauge{Units: c.Gauges.SeekUnits},
		Volume: core.Gauge{Units: c.Gauges.VolumeUnits},
	}
}

// Tick returns the time-update interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Audio.TickInterval) * time.Millisecond
}
