// Package runner performs one search run: read the file, search it, print the matches.
package runner

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harrison/minigrep/internal/config"
	"github.com/harrison/minigrep/internal/logger"
	"github.com/harrison/minigrep/internal/output"
	"github.com/harrison/minigrep/internal/search"
)

// ErrFileRead matches every *FileReadError via errors.Is.
var ErrFileRead = errors.New("file read failure")

// FileReadError reports that the target file could not be obtained as text.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFileRead) succeed for any FileReadError.
func (e *FileReadError) Is(target error) bool {
	return target == ErrFileRead
}

// errNotText is the cause recorded when the file is not valid UTF-8.
var errNotText = errors.New("file is not valid UTF-8 text")

// ReadContents reads the whole file at path as text.
func ReadContents(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileReadError{Path: path, Err: errNotText}
	}
	return string(data), nil
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	MatchCount int
	Duration   time.Duration
}

// Runner wires file reading, the search engine and a printer together.
type Runner struct {
	printer output.Printer
	log     logger.Logger
}

// New creates a Runner. A nil log discards diagnostics.
func New(printer output.Printer, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Runner{printer: printer, log: log}
}

// Run executes one search described by cfg.
// A read failure is returned before any search happens. The printer is
// closed on every path once the file has been read. The returned Summary is
// never nil, so callers can log the RunID of failed runs too.
func (r *Runner) Run(cfg *config.Config) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.New().String()}
	defer func() { summary.Duration = time.Since(start) }()

	r.log.LogInfo(fmt.Sprintf("Searching for %q", cfg.Query))
	r.log.LogInfo(fmt.Sprintf("In file %s", cfg.FilePath))

	content, err := ReadContents(cfg.FilePath)
	if err != nil {
		return summary, err
	}

	if !cfg.CaseSensitive {
		r.log.LogDebug("case-insensitive search")
	}
	matches := search.Find(cfg.Query, content, cfg.CaseSensitive)

	for _, m := range matches {
		if err := r.printer.Print(m); err != nil {
			r.printer.Close()
			return summary, fmt.Errorf("print results: %w", err)
		}
	}
	if err := r.printer.Close(); err != nil {
		return summary, fmt.Errorf("finish output: %w", err)
	}

	summary.MatchCount = len(matches)
	r.log.LogDebug(fmt.Sprintf("run %s: %d matching lines in %s", summary.RunID, summary.MatchCount, time.Since(start)))

	return summary, nil
}
