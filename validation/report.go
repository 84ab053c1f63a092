package validation

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ReportWriter writes the plain text validation report
type ReportWriter struct {
	w    *bufio.Writer
	file *os.File
}

// CreateReport creates or truncates the report file
func CreateReport(path string) (*ReportWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report %s: %w", path, err)
	}
	r := NewReportWriter(f)
	r.file = f
	return r, nil
}

// NewReportWriter writes the report to w
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: bufio.NewWriter(w)}
}

// Folder starts the section of a folder
func (r *ReportWriter) Folder(name string) error {
	_, err := fmt.Fprintf(r.w, "Processing folder: %s\n", name)
	return err
}

// Outcome writes the block of one output file
func (r *ReportWriter) Outcome(o *Outcome) error {
	lines := []string{
		fmt.Sprintf("File: %s", o.File),
		fmt.Sprintf("Extracted cost: %d", o.Claimed.Cost),
		fmt.Sprintf("Extracted route: %s", o.Claimed.RouteString()),
		fmt.Sprintf("Best routes: %s", o.Best),
		fmt.Sprintf("Best value: %d", o.BestValue),
		fmt.Sprintf("Valid route cost: %d", o.BestValue),
		fmt.Sprintf("Match found: %t", o.Match),
		"-----",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the report and closes the file it was created with
func (r *ReportWriter) Close() error {
	err := r.w.Flush()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
