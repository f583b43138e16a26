package core

// Mode is the coarse state of a session.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeLoadedPaused
	ModeLoadedPlaying
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "Empty"
	case ModeLoadedPaused:
		return "Paused"
	case ModeLoadedPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// SessionState is the mutable, non-persisted playback state of a session.
// CurrentIndex is -1 while nothing is loaded.
type SessionState struct {
	CurrentIndex int     `json:"current_index"`
	IsPlaying    bool    `json:"is_playing"`
	Volume       float64 `json:"volume"`
	Elapsed      float64 `json:"elapsed"`
	Total        float64 `json:"total"`
}

// NewSessionState returns the state of a fresh session.
func NewSessionState() SessionState {
	return SessionState{
		CurrentIndex: -1,
		Volume:       1,
	}
}

// HasTrack returns true if a track is loaded.
func (s SessionState) HasTrack() bool {
	return s.CurrentIndex >= 0
}

// Mode returns the session mode.
func (s SessionState) Mode() Mode {
	switch {
	case !s.HasTrack():
		return ModeEmpty
	case s.IsPlaying:
		return ModeLoadedPlaying
	default:
		return ModeLoadedPaused
	}
}
