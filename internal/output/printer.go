// Package output emits matching lines, one record per line.
package output

import (
	"fmt"
	"io"

	"github.com/harrison/minigrep/internal/search"
)

// Printer receives matches in file order.
// Close must be called once all matches have been printed.
type Printer interface {
	Print(m search.Match) error
	Close() error
}

// WriterPrinter writes each match to an io.Writer as it arrives.
type WriterPrinter struct {
	w           io.Writer
	lineNumbers bool
}

// NewWriterPrinter creates a printer that writes to w.
// With lineNumbers set, each record is prefixed with "N:".
func NewWriterPrinter(w io.Writer, lineNumbers bool) *WriterPrinter {
	return &WriterPrinter{w: w, lineNumbers: lineNumbers}
}

// Print writes one record.
func (p *WriterPrinter) Print(m search.Match) error {
	if _, err := io.WriteString(p.w, formatRecord(m, p.lineNumbers)); err != nil {
		return fmt.Errorf("write match: %w", err)
	}
	return nil
}

// Close is a no-op; the writer is owned by the caller.
func (p *WriterPrinter) Close() error {
	return nil
}

func formatRecord(m search.Match, lineNumbers bool) string {
	if lineNumbers {
		return fmt.Sprintf("%d:%s\n", m.LineNumber, m.Text)
	}
	return m.Text + "\n"
}
