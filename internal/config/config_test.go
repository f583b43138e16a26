package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[gauges]
seek_units = 10

[tui]
theme = "mocha"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Gauges.SeekUnits != 10 {
		t.Errorf("SeekUnits = %d, want 10", cfg.Gauges.SeekUnits)
	}
	if cfg.Gauges.VolumeUnits != 5 {
		t.Errorf("VolumeUnits = %d, want 5", cfg.Gauges.VolumeUnits)
	}
	if cfg.Playback.Volume != 100 {
		t.Errorf("Volume = %d, want 100", cfg.Playback.Volume)
	}
	if cfg.TUI.Theme != "mocha" {
		t.Errorf("Theme = %q, want mocha", cfg.TUI.Theme)
	}
	if len(cfg.Library.Extensions) != 5 {
		t.Errorf("Extensions = %v", cfg.Library.Extensions)
	}
	if cfg.Tick() != 250*time.Millisecond {
		t.Errorf("Tick() = %v, want 250ms", cfg.Tick())
	}
}

func TestExplicitZeroVolumeSurvives(t *testing.T) {
	path := writeConfig(t, "[playback]\nvolume = 0\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Playback.Volume != 0 {
		t.Errorf("Volume = %d, want 0", cfg.Playback.Volume)
	}
	if cfg.StartVolume() != 0 {
		t.Errorf("StartVolume() = %v, want 0", cfg.StartVolume())
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[playback\nvolume = ")
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GIFLY_PLAYBACK_VOLUME", "40")
	t.Setenv("GIFLY_TUI_THEME", "latte")
	t.Setenv("GIFLY_LIBRARY_EXTENSIONS", "mp3, flac")
	t.Setenv("GIFLY_LOG_FILE", "/tmp/gifly.log")

	cfg, err := LoadFrom(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Playback.Volume != 40 {
		t.Errorf("Volume = %d, want 40", cfg.Playback.Volume)
	}
	if cfg.TUI.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.TUI.Theme)
	}
	if strings.Join(cfg.Library.Extensions, ",") != "mp3,flac" {
		t.Errorf("Extensions = %v, want [mp3 flac]", cfg.Library.Extensions)
	}
	if cfg.Log.File != "/tmp/gifly.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
}

func TestLoadSearchesXDG(t *testing.T) {
	home := t.TempDir()
	xdg := filepath.Join(home, "xdg")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if err := os.MkdirAll(filepath.Join(xdg, "gifly"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(xdg, "gifly", "config.toml")
	if err := os.WriteFile(path, []byte("[playback]\nseek_step = 15\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Playback.SeekStep != 15 {
		t.Errorf("SeekStep = %d, want 15", cfg.Playback.SeekStep)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"volume", func(c *Config) { c.Playback.Volume = 120 }, "playback: volume"},
		{"gauge", func(c *Config) { c.Gauges.SeekUnits = 0 }, "gauges: seek_units"},
		{"extension", func(c *Config) { c.Library.Extensions = []string{"aiff"} }, "library: unsupported extension"},
		{"theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui: invalid theme"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log: invalid log level"},
		{"template", func(c *Config) { c.Tail.Format = "{{.Title" }, "tail: invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Playback.Volume = -1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "playback") || !strings.Contains(err.Error(), "log") {
		t.Errorf("Validate() = %q, want both sections", err)
	}
}

func TestGaugeSizes(t *testing.T) {
	cfg := Default()
	cfg.Gauges.SeekUnits = 9
	g := cfg.GaugeSizes()
	if g.Seek.Units != 9 || g.Volume.Units != 5 {
		t.Errorf("GaugeSizes() = %+v", g)
	}
}
