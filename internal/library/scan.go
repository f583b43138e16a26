package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
)

// DefaultExtensions are the formats the speaker can decode.
var DefaultExtensions = []string{"mp3", "wav", "flac", "ogg", "oga"}

// Supported reports whether path has one of exts. An empty exts means
// DefaultExtensions.
func Supported(path string, exts []string) bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	format := FormatOf(path)
	for _, e := range exts {
		if strings.TrimPrefix(strings.ToLower(e), ".") == format {
			return true
		}
	}
	return false
}

// Scan walks dir and returns supported files sorted lexically by path.
// Hidden directories are skipped.
func Scan(dir string, exts []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if Supported(path, exts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Expand resolves paths into a flat list of supported files. Directories are
// scanned; explicit files must have a supported extension. Order follows the
// arguments.
func Expand(paths []string, exts []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := Scan(p, exts)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
			continue
		}
		if !Supported(p, exts) {
			return nil, fmt.Errorf("%s: %w", p, apperr.ErrUnsupportedFormat)
		}
		out = append(out, p)
	}
	return out, nil
}

// Select turns a file selection into tracks, one per supported file.
func Select(paths []string, exts []string) ([]core.Track, error) {
	files, err := Expand(paths, exts)
	if err != nil {
		return nil, err
	}
	tracks := make([]core.Track, 0, len(files))
	for _, f := range files {
		tracks = append(tracks, TrackFor(f))
	}
	return tracks, nil
}
