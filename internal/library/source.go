package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
)

// FileSource is a core.Source backed by a file on disk. It keeps track of the
// readers it hands out so Release can close any the decoder still holds.
type FileSource struct {
	path string

	mu       sync.Mutex
	open     map[*fileReader]struct{}
	released bool
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path: path,
		open: make(map[*fileReader]struct{}),
	}
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Format returns the lowercase extension without the dot.
func (s *FileSource) Format() string {
	return FormatOf(s.path)
}

// Open opens the file for reading.
func (s *FileSource) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, fmt.Errorf("%s: %w", s.path, apperr.ErrSourceReleased)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	r := &fileReader{File: f, owner: s}
	s.open[r] = struct{}{}
	return r, nil
}

// Release closes every reader still open and marks the source unusable.
func (s *FileSource) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.released = true

	var errs []error
	for r := range s.open {
		if err := r.File.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
		delete(s.open, r)
	}
	return errors.Join(errs...)
}

// OpenCount returns how many readers are currently open.
func (s *FileSource) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

func (s *FileSource) forget(r *fileReader) {
	s.mu.Lock()
	delete(s.open, r)
	s.mu.Unlock()
}

type fileReader struct {
	*os.File
	owner *FileSource
	once  sync.Once
}

func (r *fileReader) Close() error {
	var err error
	r.once.Do(func() {
		r.owner.forget(r)
		err = r.File.Close()
		if errors.Is(err, os.ErrClosed) {
			err = nil
		}
	})
	return err
}

// MemorySource is a core.Source over an in-memory buffer.
type MemorySource struct {
	format string

	mu       sync.Mutex
	data     []byte
	released bool
}

// NewMemorySource creates a source over data in the given format.
func NewMemorySource(format string, data []byte) *MemorySource {
	return &MemorySource{format: strings.ToLower(format), data: data}
}

// Format returns the container format.
func (s *MemorySource) Format() string {
	return s.format
}

// Open returns a reader over the buffer.
func (s *MemorySource) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, apperr.ErrSourceReleased
	}
	return nopSeekCloser{bytes.NewReader(s.data)}, nil
}

// Release drops the buffer.
func (s *MemorySource) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	s.data = nil
	return nil
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

// FormatOf returns the lowercase extension of path without the dot.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// TrackFor builds a track for a file path. The name is the base file name.
func TrackFor(path string) core.Track {
	return core.Track{
		Name:   filepath.Base(path),
		Source: NewFileSource(path),
	}
}
