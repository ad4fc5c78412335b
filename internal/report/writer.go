// Package report renders scan results into the metadata log. Directories
// are written and flushed one at a time, so an interrupted scan still
// leaves a usable partial report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"metascan/internal/domain"
)

const (
	ruleWidth        = 80
	defaultTruncate  = 500
	truncationSuffix = "..."
)

type Writer struct {
	buf  *bufio.Writer
	file *os.File
	path string

	// TruncateAt caps rendered metadata values; zero means the default.
	TruncateAt int
}

// New wraps an arbitrary writer, used by tests and stdout output.
func New(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Create opens (and truncates) the report file at path.
func Create(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{buf: bufio.NewWriter(file), file: file, path: path}, nil
}

func (w *Writer) Path() string {
	return w.path
}

// WriteDirectory renders one directory section and flushes it. Any error is
// a report-stream failure and must abort the scan.
func (w *Writer) WriteDirectory(res domain.DirResult) error {
	if res.RelPath != "." {
		rule := strings.Repeat("=", ruleWidth)
		fmt.Fprintf(w.buf, "\n%s\n", rule)
		fmt.Fprintf(w.buf, "DIRECTORY: %s\n", res.RelPath)
		fmt.Fprintf(w.buf, "%s\n", rule)
	}

	if res.Err != nil {
		fmt.Fprintf(w.buf, "ERROR: %v\n", res.Err)
		return w.buf.Flush()
	}

	for _, out := range res.Outcomes {
		w.writeOutcome(out)
	}
	return w.buf.Flush()
}

func (w *Writer) writeOutcome(out domain.Outcome) {
	fmt.Fprintf(w.buf, "\nFILE: %s\n", out.Target.Name)
	fmt.Fprintf(w.buf, "PATH: %s\n", out.Target.RelPath)

	if out.Err != nil {
		fmt.Fprintf(w.buf, "ERROR: %v\n", out.Err)
		return
	}
	if out.DecodeErr != nil {
		fmt.Fprintf(w.buf, "DECODE ERROR: %v\n", out.DecodeErr)
	}

	fmt.Fprintln(w.buf, "METADATA:")
	for _, key := range out.Record.SortedKeys() {
		fmt.Fprintf(w.buf, "  • %s: %s\n", key, w.truncate(out.Record[key]))
	}
}

func (w *Writer) truncate(value string) string {
	limit := w.TruncateAt
	if limit <= 0 {
		limit = defaultTruncate
	}
	if limit <= len(truncationSuffix) {
		limit = len(truncationSuffix) + 1
	}
	if len(value) <= limit {
		return value
	}
	// Never cut inside a multi-byte rune; the report is UTF-8 throughout.
	cut := limit - len(truncationSuffix)
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + truncationSuffix
}

// Close flushes remaining output and closes the underlying file.
func (w *Writer) Close() error {
	flushErr := w.buf.Flush()
	if w.file != nil {
		if closeErr := w.file.Close(); flushErr == nil {
			flushErr = closeErr
		}
	}
	return flushErr
}
