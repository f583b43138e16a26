package core

import "io"

// Source is an opaque handle to a playable byte source.
//
// A source stays usable until Release is called. Releasing frees whatever the
// handle holds (open files, buffers); opening afterwards fails.
type Source interface {
	// Open returns a fresh reader positioned at the start of the audio data.
	Open() (io.ReadCloser, error)
	// Format is the lowercase container extension without a dot, e.g. "mp3".
	Format() string
	// Release frees the handle. It is safe to call more than once.
	Release() error
}

// Track represents one playable unit. Tracks are immutable once created.
type Track struct {
	Name   string `json:"name"`
	Source Source `json:"-"`
}

// Format returns the track's container format, or "" if it has no source.
func (t Track) Format() string {
	if t.Source == nil {
		return ""
	}
	return t.Source.Format()
}
