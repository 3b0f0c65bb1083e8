package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/minigrep/internal/config"
	"github.com/harrison/minigrep/internal/history"
)

// newHistoryCommand creates the 'minigrep history' command
func newHistoryCommand(lookup config.LookupFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Long: `Display recently recorded searches, newest first.

Runs are only recorded when history.enabled is true in the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, lookup)
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, lookup config.LookupFunc) error {
	out := cmd.OutOrStdout()

	settings, err := loadSettings(cmd, lookup)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", limit)
	}

	dbPath, err := historyDBPath(lookup, settings)
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}

	// Opening would create an empty database; report absence instead
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No search history recorded")
		fmt.Fprintf(out, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No search history recorded")
		return nil
	}

	printHistory(out, entries)
	return nil
}

// printHistory renders entries as an aligned table.
func printHistory(out io.Writer, entries []*history.Entry) {
	ok := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tMODE\tMATCHES\tSTATUS\tQUERY\tFILE")
	for _, e := range entries {
		mode := "exact"
		if !e.CaseSensitive {
			mode = "ignore-case"
		}
		status := ok("ok")
		if e.ErrorMessage != "" {
			status = failed("error")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%q\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), shortID(e.RunID), mode, e.MatchCount, status, e.Query, e.FilePath)
	}
	tw.Flush()

	for _, e := range entries {
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "\n%s %s: %s\n", failed("error"), shortID(e.RunID), e.ErrorMessage)
		}
	}
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
