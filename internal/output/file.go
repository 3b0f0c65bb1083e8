package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/harrison/minigrep/internal/search"
)

// FilePrinter collects matches in memory and writes them to a file on Close.
//
// The write holds an exclusive lock on "<path>.lock" and goes through a temp
// file plus rename, so concurrent minigrep processes targeting the same file
// never interleave and readers never see a partial result.
type FilePrinter struct {
	path        string
	lineNumbers bool
	buf         bytes.Buffer
	closed      bool
}

// NewFilePrinter creates a printer that writes to path on Close.
func NewFilePrinter(path string, lineNumbers bool) *FilePrinter {
	return &FilePrinter{path: path, lineNumbers: lineNumbers}
}

// Print buffers one record.
func (p *FilePrinter) Print(m search.Match) error {
	if p.closed {
		return fmt.Errorf("print to closed output %s", p.path)
	}
	p.buf.WriteString(formatRecord(m, p.lineNumbers))
	return nil
}

// Close writes the buffered records. A run with no matches produces an empty file.
// Calling Close more than once is a no-op.
func (p *FilePrinter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return lockAndWrite(p.path, p.buf.Bytes())
}

// lockAndWrite acquires "<path>.lock", writes data atomically and releases the lock.
func lockAndWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lock.Path(), err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// atomicWrite writes to a temp file in the target directory and renames it over path.
// On failure the previous content of path, if any, is left unchanged.
func atomicWrite(path string, data []byte) (err error) {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".minigrep-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err = tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err = tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
