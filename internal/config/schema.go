package config

// Config is the root configuration structure.
type Config struct {
	Playback PlaybackConfig `toml:"playback" json:"playback"`
	Gauges   GaugesConfig   `toml:"gauges" json:"gauges"`
	Library  LibraryConfig  `toml:"library" json:"library"`
	Gallery  GalleryConfig  `toml:"gallery" json:"gallery"`
	Audio    AudioConfig    `toml:"audio" json:"audio"`
	Tail     TailConfig     `toml:"tail" json:"tail"`
	TUI      TUIConfig      `toml:"tui" json:"tui"`
	Log      LogConfig      `toml:"log" json:"log"`

	// volumeSet records an explicit playback.volume so 0 survives defaults.
	volumeSet bool
}

// PlaybackConfig holds default playback settings.
type PlaybackConfig struct {
	Volume     int `toml:"volume" json:"volume"`           // percent, 0-100
	SeekStep   int `toml:"seek_step" json:"seek_step"`     // seconds
	VolumeStep int `toml:"volume_step" json:"volume_step"` // percent
}

// GaugesConfig holds the number of hearts in each gauge.
type GaugesConfig struct {
	SeekUnits   int `toml:"seek_units" json:"seek_units"`
	VolumeUnits int `toml:"volume_units" json:"volume_units"`
}

// LibraryConfig holds file selection settings.
type LibraryConfig struct {
	Dir        string   `toml:"dir" json:"dir"`
	Extensions []string `toml:"extensions" json:"extensions"`
}

// GalleryConfig holds decoration settings. An empty dir uses the built-in
// pictures.
type GalleryConfig struct {
	Dir string `toml:"dir" json:"dir"`
}

// AudioConfig holds output settings.
type AudioConfig struct {
	TickInterval int `toml:"tick_interval" json:"tick_interval"` // milliseconds
	SampleRate   int `toml:"sample_rate" json:"sample_rate"`
}

// TailConfig holds settings for the event lines printed by the shell.
type TailConfig struct {
	Timestamps bool   `toml:"timestamps" json:"timestamps"`
	Format     string `toml:"format" json:"format"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme        string `toml:"theme" json:"theme"`
	ShowPlaylist bool   `toml:"show_playlist" json:"show_playlist"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level" json:"level"`
	File       string `toml:"file" json:"file"`
	MaxSize    int    `toml:"max_size" json:"max_size"` // megabytes
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAge     int    `toml:"max_age" json:"max_age"` // days
	Compress   bool   `toml:"compress" json:"compress"`
}
