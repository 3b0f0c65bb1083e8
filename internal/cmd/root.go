package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/minigrep/internal/config"
	"github.com/harrison/minigrep/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for minigrep
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.OSLookup)
}

// newRootCommand builds the command tree against an injected environment lookup.
func newRootCommand(lookup config.LookupFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minigrep [flags] <query> <file-path>",
		Short: "Print the lines of a file that contain a query",
		Long: `minigrep reads a file and prints every line that contains the query,
in the order the lines appear in the file.

The search is case-sensitive unless the IGNORE_CASE environment variable is
set (to any value), --ignore-case is given, or ignore_case is enabled in the
settings file.

Settings are read from $MINIGREP_HOME/config.yaml (default ~/.minigrep/config.yaml).
Diagnostics go to stderr; stdout carries only matching lines.

Examples:
  minigrep duct poem.txt
  IGNORE_CASE=1 minigrep rUsT poem.txt
  minigrep -n -o matches.txt to poem.txt
  minigrep -- history notes.txt      # search for the word "history"`,
		Args:    cobra.ArbitraryArgs,
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, lookup)
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to settings file (default: $MINIGREP_HOME/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: from settings)")
	cmd.Flags().BoolP("ignore-case", "i", false, "Ignore case distinctions (same as setting IGNORE_CASE)")
	cmd.Flags().BoolP("line-number", "n", false, "Prefix each matching line with its line number")
	cmd.Flags().StringP("output", "o", "", "Write matching lines to this file instead of stdout")

	cmd.AddCommand(newHistoryCommand(lookup))

	return cmd
}

// loadSettings reads the settings file named by --config, or the default one.
func loadSettings(cmd *cobra.Command, lookup config.LookupFunc) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		settings, err := config.LoadSettings(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
		}
		return settings, nil
	}

	path, err := config.SettingsPath(lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to locate settings: %w", err)
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// newLogger builds the stderr logger; --log-level overrides the settings file.
func newLogger(cmd *cobra.Command, settings *config.Settings) (*logger.ConsoleLogger, error) {
	level := settings.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		if !logger.ValidLevel(flagLevel) {
			return nil, fmt.Errorf("invalid --log-level %q, must be one of: trace, debug, info, warn, error", flagLevel)
		}
		level = flagLevel
	}
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), level), nil
}
