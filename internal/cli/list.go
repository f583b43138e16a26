package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/library"
)

var listCmd = &cobra.Command{
	Use:     "list [files or directories...]",
	Aliases: []string{"ls"},
	Short:   "List playable audio files",
	Long: `List the audio files a playlist would contain, with format, duration
and size. Without arguments lists library.dir.

Examples:
  gifly list
  gifly list ~/Music/album --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Library.Dir}
	}

	files, err := library.Expand(paths, cfg.Library.Extensions)
	if err != nil {
		return err
	}

	result := probeAll(files)

	if JSONOutput() {
		out := map[string]interface{}{
			"tracks": result.Data,
			"total":  len(result.Data),
		}
		if result.HasErrors() {
			out["errors"] = result.ErrorSummary()
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if len(result.Data) == 0 && !result.HasErrors() {
		fmt.Println("No audio files found")
		return nil
	}

	var total time.Duration
	t := NewTable("#", "NAME", "FORMAT", "DURATION", "SIZE")
	for i, info := range result.Data {
		total += info.Duration
		t.Row(
			fmt.Sprintf("%d", i+1),
			TruncateString(info.Name, 48),
			info.Format,
			FormatDuration(int(info.Duration.Seconds())),
			humanize.Bytes(uint64(info.Size)),
		)
	}
	t.Flush()

	fmt.Printf("\n%d tracks, %s\n", len(result.Data), FormatDuration(int(total.Seconds())))

	if result.HasErrors() {
		fmt.Fprintf(os.Stderr, "\nWarning: %s\n", result.ErrorSummary())
	}
	return nil
}

// probeAll reads every file's header. Unreadable files are reported without
// stopping the listing.
func probeAll(files []string) *apperr.PartialResult[[]library.Info] {
	result := &apperr.PartialResult[[]library.Info]{Data: make([]library.Info, 0, len(files))}
	for _, f := range files {
		info, err := library.Probe(f)
		if err != nil {
			result.AddError(err)
			continue
		}
		result.Data = append(result.Data, info)
	}
	return result
}
