package config

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.Gauges.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("gauges: %w", err))
	}
	if err := c.Library.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("library: %w", err))
	}
	if err := c.Audio.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}
	if err := c.Tail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tail: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return errors.New("volume must be between 0 and 100")
	}
	if c.SeekStep < 0 {
		return errors.New("seek_step must be non-negative")
	}
	if c.VolumeStep < 0 || c.VolumeStep > 100 {
		return errors.New("volume_step must be between 0 and 100")
	}
	return nil
}

// Validate checks GaugesConfig for errors.
func (c *GaugesConfig) Validate() error {
	if c.SeekUnits < 1 || c.SeekUnits > 20 {
		return errors.New("seek_units must be between 1 and 20")
	}
	if c.VolumeUnits < 1 || c.VolumeUnits > 20 {
		return errors.New("volume_units must be between 1 and 20")
	}
	return nil
}

// Validate checks LibraryConfig for errors.
func (c *LibraryConfig) Validate() error {
	for _, ext := range c.Extensions {
		switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
		case "mp3", "wav", "flac", "ogg", "oga":
			// valid
		default:
			return fmt.Errorf("unsupported extension: %s (must be mp3, wav, flac, ogg, or oga)", ext)
		}
	}
	return nil
}

// Validate checks AudioConfig for errors.
func (c *AudioConfig) Validate() error {
	if c.TickInterval < 0 {
		return errors.New("tick_interval must be non-negative")
	}
	if c.SampleRate < 0 {
		return errors.New("sample_rate must be non-negative")
	}
	return nil
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	if c.Format != "" {
		if _, err := template.New("format").Parse(c.Format); err != nil {
			return fmt.Errorf("invalid format: %w", err)
		}
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "latte", "frappe", "macchiato", "mocha":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, latte, frappe, macchiato, or mocha)", c.Theme)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.MaxSize < 0 || c.MaxBackups < 0 || c.MaxAge < 0 {
		return errors.New("rotation limits must be non-negative")
	}
	return nil
}
