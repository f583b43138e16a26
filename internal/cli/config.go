package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/gifly/internal/config"
	apperr "github.com/tessro/gifly/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing gifly configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  playback.volume       Start volume (0-100)
  playback.seek_step    Seconds skipped by the seek keys
  playback.volume_step  Percent changed by the volume keys
  gauges.seek_units     Hearts in the progress gauge
  gauges.volume_units   Hearts in the volume gauge
  library.dir           Directory browsed by the file picker
  gallery.dir           Directory of decoration files
  audio.tick_interval   Progress update interval in milliseconds
  tail.timestamps       Prefix event lines with the time (true/false)
  tail.format           Template for event lines
  tui.theme             auto, latte, frappe, macchiato or mocha
  tui.show_playlist     Show the playlist panel on start (true/false)
  log.level             debug, info, warn or error
  log.file              Log file path

Examples:
  gifly config set playback.volume 60
  gifly config set library.dir ~/Music`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme",
	Short: "Interactively select the color theme",
	Long:  `Shows a picker to select the TUI color theme.`,
	RunE:  runConfigSetTheme,
}

// configKeyKinds maps settable keys to their TOML value kind.
var configKeyKinds = map[string]string{
	"playback.volume":      "int",
	"playback.seek_step":   "int",
	"playback.volume_step": "int",
	"gauges.seek_units":    "int",
	"gauges.volume_units":  "int",
	"library.dir":          "string",
	"gallery.dir":          "string",
	"audio.tick_interval":  "int",
	"audio.sample_rate":    "int",
	"tail.timestamps":      "bool",
	"tail.format":          "string",
	"tui.theme":            "string",
	"tui.show_playlist":    "bool",
	"log.level":            "string",
	"log.file":             "string",
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", apperr.ErrConfigNotFound, configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return apperr.WithSuggestion(fmt.Errorf("no editor found"), "Set the EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Printf("Created config file: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Point library.dir at your music: gifly config set library.dir ~/Music")
		fmt.Println("  2. Run 'gifly ui' and pick some tracks")
	}

	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.Path(); p != "" {
		return p
	}
	return config.DefaultPath()
}

// writeConfigFile encodes v as TOML under a short header.
func writeConfigFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# Gifly Configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// parseConfigValue converts value to the type stored under key.
func parseConfigValue(key, value string) (interface{}, error) {
	kind, ok := configKeyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %q. Run 'gifly config set --help' for the list", key)
	}

	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case "bool":
		return value == "true" || value == "1" || value == "yes", nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", apperr.ErrConfigNotFound, configPath)
	}

	// Read the current config file as raw TOML
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var rawConfig map[string]interface{}
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if rawConfig == nil {
		rawConfig = make(map[string]interface{})
	}

	section, field, _ := strings.Cut(key, ".")

	sectionMap, ok := rawConfig[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Printf("Set %s = %s\n", key, value)
	}

	return nil
}

func runConfigSetTheme(cmd *cobra.Command, args []string) error {
	selected := cfg.TUI.Theme
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select theme").
				Description("auto follows the terminal background").
				Options(
					huh.NewOption("auto", "auto"),
					huh.NewOption("Latte (light)", "latte"),
					huh.NewOption("Frappé", "frappe"),
					huh.NewOption("Macchiato", "macchiato"),
					huh.NewOption("Mocha (dark)", "mocha"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return runConfigSet(cmd, []string{"tui.theme", selected})
}
