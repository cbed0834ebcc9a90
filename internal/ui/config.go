package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/marathon/internal/config"
	"github.com/javiermolinar/marathon/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  marathon config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(path, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&path, "file", config.DefaultConfigPath(), "Config file to edit")

	return cmd
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Schedule.Count = promptInt(reader, out, "Movies per marathon", cfg.Schedule.Count)
	cfg.Schedule.BreakMinutes = promptInt(reader, out, "Minimum break (minutes)", cfg.Schedule.BreakMinutes)
	cfg.Schedule.EarliestStart = promptValue(reader, out, "Earliest start (HH:MM, '-' to clear)", cfg.Schedule.EarliestStart)
	if cfg.Schedule.EarliestStart == "-" {
		cfg.Schedule.EarliestStart = ""
	}
	cfg.Schedule.Top = promptInt(reader, out, "Schedules shown", cfg.Schedule.Top)
	cfg.Schedule.ShowtimeFormat = promptValue(reader, out, "Showtime format (freetext, list)", cfg.Schedule.ShowtimeFormat)
	cfg.Search.Limit = promptInt(reader, out, "Search limit (0 for none)", cfg.Search.Limit)
	cfg.Search.Timeout = promptValue(reader, out, "Search timeout (e.g. 30s)", cfg.Search.Timeout)
	cfg.Catalog.Path = promptValue(reader, out, "Default catalog file", cfg.Catalog.Path)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[schedule]")
	fmt.Fprintf(out, "  count           = %d\n", cfg.Schedule.Count)
	fmt.Fprintf(out, "  break_minutes   = %d\n", cfg.Schedule.BreakMinutes)
	if cfg.Schedule.EarliestStart != "" {
		fmt.Fprintf(out, "  earliest_start  = %s\n", cfg.Schedule.EarliestStart)
	}
	fmt.Fprintf(out, "  top             = %d\n", cfg.Schedule.Top)
	fmt.Fprintf(out, "  showtime_format = %s\n", cfg.Schedule.ShowtimeFormat)
	fmt.Fprintln(out, "\n[search]")
	fmt.Fprintf(out, "  limit           = %d\n", cfg.Search.Limit)
	fmt.Fprintf(out, "  timeout         = %s\n", cfg.Search.Timeout)
	if cfg.Catalog.Path != "" {
		fmt.Fprintln(out, "\n[catalog]")
		fmt.Fprintf(out, "  path            = %s\n", cfg.Catalog.Path)
	}
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme           = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  color           = %t\n", cfg.UI.Color)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level           = %s\n", cfg.Log.Level)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	return isYes(input)
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q.\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
