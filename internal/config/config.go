package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.giflyrc, $XDG_CONFIG_HOME/gifly/config.toml, ~/.config/gifly/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file that Load would read, or "" if none exists.
func Path() string {
	return findConfigFile()
}

// DefaultPath returns where a new config file is created.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".giflyrc"
	}
	return filepath.Join(home, ".giflyrc")
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.volumeSet = md.IsDefined("playback", "volume")
	return nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".giflyrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "gifly", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Playback
	if v := os.Getenv("GIFLY_PLAYBACK_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.Volume = i
			cfg.volumeSet = true
		}
	}
	if v := os.Getenv("GIFLY_PLAYBACK_SEEK_STEP"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.SeekStep = i
		}
	}

	// Library
	if v := os.Getenv("GIFLY_LIBRARY_DIR"); v != "" {
		cfg.Library.Dir = v
	}
	if v := os.Getenv("GIFLY_LIBRARY_EXTENSIONS"); v != "" {
		var exts []string
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				exts = append(exts, e)
			}
		}
		if len(exts) > 0 {
			cfg.Library.Extensions = exts
		}
	}

	// Gallery
	if v := os.Getenv("GIFLY_GALLERY_DIR"); v != "" {
		cfg.Gallery.Dir = v
	}

	// Audio
	if v := os.Getenv("GIFLY_AUDIO_TICK_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Audio.TickInterval = i
		}
	}

	// TUI
	if v := os.Getenv("GIFLY_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("GIFLY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GIFLY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
