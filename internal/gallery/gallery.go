// Package gallery picks the decorative picture shown next to the player.
// The pick is purely cosmetic and independent of playback state.
package gallery

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Decoration is one picture the widget can show.
type Decoration struct {
	Name string
	Art  string
}

// IsZero returns true for the empty decoration.
func (d Decoration) IsZero() bool {
	return d.Name == "" && d.Art == ""
}

// Gallery holds a fixed set of decorations.
type Gallery struct {
	items []Decoration
	rnd   *rand.Rand
}

// New creates a gallery over items. A nil src seeds from the clock.
func New(items []Decoration, src rand.Source) *Gallery {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Gallery{
		items: append([]Decoration(nil), items...),
		rnd:   rand.New(src),
	}
}

// Builtin returns a gallery over the built-in pictures.
func Builtin() *Gallery {
	return New(builtin, nil)
}

// FromDir returns a gallery over the *.gif files in dir. The art of each
// decoration is its file name.
func FromDir(dir string) (*Gallery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery: %w", err)
	}

	var items []Decoration
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".gif") {
			continue
		}
		items = append(items, Decoration{
			Name: filepath.Join(dir, e.Name()),
			Art:  e.Name(),
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no gif files in %s", dir)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return New(items, nil), nil
}

// Len returns the number of decorations.
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.items)
}

// Pick returns a uniformly random decoration, or the zero value if the
// gallery is empty.
func (g *Gallery) Pick() Decoration {
	if g.Len() == 0 {
		return Decoration{}
	}
	return g.items[g.rnd.Intn(len(g.items))]
}
