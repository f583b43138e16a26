package wizard

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/library"
)

// Options builds picker options for the files in paths, labelled relative
// to dir.
func Options(dir string, paths []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(paths))
	for _, p := range paths {
		label := p
		if rel, err := filepath.Rel(dir, p); err == nil {
			label = rel
		}
		options = append(options, huh.NewOption(label, p))
	}
	return options
}

// Ordered returns the members of chosen in the order they appear in all.
// The multi-select reports picks in click order; playlists follow the
// directory listing.
func Ordered(all, chosen []string) []string {
	picked := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		picked[c] = true
	}
	out := make([]string, 0, len(chosen))
	for _, p := range all {
		if picked[p] {
			out = append(out, p)
		}
	}
	return out
}

// RunFilePicker lists the supported audio files under dir and lets the user
// pick several. An aborted form returns nil with no error.
func RunFilePicker(dir string, exts []string) ([]string, error) {
	paths, err := library.Scan(dir, exts)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, apperr.WithSuggestion(
			fmt.Errorf("%w in %s", apperr.ErrNoFiles, dir),
			"Pass files on the command line or set library.dir in ~/.giflyrc",
		)
	}

	var chosen []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select tracks").
				Description("space to toggle, enter to start playing").
				Options(Options(dir, paths)...).
				Height(15).
				Value(&chosen),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return Ordered(paths, chosen), nil
}
