package presentation

import (
	"fmt"
	"io"
	"strings"

	"metascan/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintStart announces the scan on the process stream.
func (p Printer) PrintStart(root, reportPath string) {
	fmt.Fprintf(p.Writer, "Scanning: %s\n", root)
	fmt.Fprintf(p.Writer, "Report:   %s\n", reportPath)
}

// PrintSummary renders the final counters after a completed scan.
func (p Printer) PrintSummary(s domain.Summary) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, rule)
	fmt.Fprintln(p.Writer, "SCAN COMPLETE")
	fmt.Fprintln(p.Writer, rule)
	fmt.Fprintf(p.Writer, "Directories scanned:    %d\n", s.Directories)
	fmt.Fprintf(p.Writer, "Files scanned:          %d\n", s.FilesScanned)
	fmt.Fprintf(p.Writer, "Metadata decoded:       %d\n", s.Decoded)
	fmt.Fprintf(p.Writer, "Decode failures:        %d\n", s.DecodeFailures)
	fmt.Fprintf(p.Writer, "Stat failures:          %d\n", s.StatFailures)
	fmt.Fprintf(p.Writer, "Unreadable directories: %d\n", s.DirFailures)
	fmt.Fprintf(p.Writer, "Ignored files:          %d\n", s.FilesIgnored)
	fmt.Fprintf(p.Writer, "Report saved to:        %s\n", s.ReportPath)

	if p.Verbose && len(s.Warnings) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Warnings:")
		for _, warning := range s.Warnings {
			fmt.Fprintln(p.Writer, "- "+warning)
		}
	}
}
