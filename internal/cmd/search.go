package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/minigrep/internal/config"
	"github.com/harrison/minigrep/internal/history"
	"github.com/harrison/minigrep/internal/logger"
	"github.com/harrison/minigrep/internal/output"
	"github.com/harrison/minigrep/internal/runner"
)

// runSearch implements the root command: resolve, run, record.
func runSearch(cmd *cobra.Command, args []string, lookup config.LookupFunc) error {
	settings, err := loadSettings(cmd, lookup)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, settings)
	if err != nil {
		return err
	}

	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	lineNumbers, _ := cmd.Flags().GetBool("line-number")
	outputPath, _ := cmd.Flags().GetString("output")

	// The resolver expects the invocation token at index 0
	argv := append([]string{cmd.Name()}, args...)
	cfg, err := config.Build(argv, config.WithIgnoreCase(lookup, ignoreCase || settings.IgnoreCase))
	if err != nil {
		return fmt.Errorf("problem parsing arguments: %w", err)
	}

	lineNumbers = lineNumbers || settings.LineNumbers
	var printer output.Printer
	if outputPath != "" {
		printer = output.NewFilePrinter(outputPath, lineNumbers)
	} else {
		printer = output.NewWriterPrinter(cmd.OutOrStdout(), lineNumbers)
	}

	summary, runErr := runner.New(printer, log).Run(cfg)

	if settings.History.Enabled {
		recordHistory(cmd.Context(), lookup, settings, log, cfg, summary, runErr)
	}

	if runErr != nil {
		return fmt.Errorf("application error: %w", runErr)
	}
	return nil
}

// recordHistory stores the run. Failures are logged and never change the outcome.
func recordHistory(ctx context.Context, lookup config.LookupFunc, settings *config.Settings, log logger.Logger,
	cfg *config.Config, summary *runner.Summary, runErr error) {
	dbPath, err := historyDBPath(lookup, settings)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history not recorded: %v", err))
		return
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history not recorded: %v", err))
		return
	}
	defer store.Close()

	entry := &history.Entry{
		RunID:          summary.RunID,
		Query:          cfg.Query,
		FilePath:       cfg.FilePath,
		CaseSensitive:  cfg.CaseSensitive,
		MatchCount:     summary.MatchCount,
		DurationMillis: summary.Duration.Milliseconds(),
	}
	if runErr != nil {
		entry.ErrorMessage = runErr.Error()
	}

	if err := store.Record(ctx, entry); err != nil {
		log.LogWarn(fmt.Sprintf("history not recorded: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("recorded run %s in %s", entry.RunID, dbPath))
}

func historyDBPath(lookup config.LookupFunc, settings *config.Settings) (string, error) {
	if settings.History.DBPath != "" {
		return settings.History.DBPath, nil
	}
	return config.HistoryDBPath(lookup)
}
