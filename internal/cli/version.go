package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessro/gifly/internal/library"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// buildInfo describes this binary and the audio stack it was built with.
type buildInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Beep      string   `json:"beep"`
	Formats   []string `json:"formats"`
}

func currentBuildInfo() buildInfo {
	info := buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Beep:      "unknown",
		Formats:   library.DefaultExtensions,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == "github.com/faiface/beep" {
				info.Beep = dep.Version
			}
		}
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuildInfo()
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(info)
		}

		fmt.Printf("gifly %s\n", info.Version)
		if Verbose() {
			fmt.Printf("  commit:     %s\n", info.Commit)
			fmt.Printf("  built:      %s\n", info.BuildDate)
			fmt.Printf("  go version: %s\n", info.GoVersion)
			fmt.Printf("  platform:   %s\n", info.Platform)
			fmt.Printf("  beep:       %s\n", info.Beep)
			fmt.Printf("  formats:    %s\n", strings.Join(info.Formats, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
