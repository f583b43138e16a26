package wizard

import (
	"os"

	"golang.org/x/term"
)

// Interactive provides interactive fallbacks for commands that were run
// without the arguments they need.
type Interactive struct {
	enabled bool
	dir     string
	exts    []string
}

// NewInteractive creates a new interactive handler that browses dir for
// files with one of exts.
func NewInteractive(dir string, exts []string) *Interactive {
	return &Interactive{
		enabled: true,
		dir:     dir,
		exts:    exts,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptFiles launches the file picker if interactive mode is available.
// Returns nil if cancelled or not interactive.
func (i *Interactive) PromptFiles() ([]string, error) {
	if !i.CanInteract() {
		return nil, nil
	}
	return RunFilePicker(i.dir, i.exts)
}

// NeedsFiles returns true if file arguments are required but missing.
func NeedsFiles(args []string) bool {
	return len(args) == 0
}
