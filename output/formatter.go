package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"route-bench/envinfo"
	"route-bench/fetch"
	"route-bench/timings"
	"route-bench/validation"
)

// Formatter handles result output formatting
type Formatter struct {
	jsonOutput bool
	w          io.Writer
}

// NewFormatter creates a new output formatter writing to stdout
func NewFormatter(jsonOutput bool) *Formatter {
	return NewFormatterTo(os.Stdout, jsonOutput)
}

// NewFormatterTo creates a formatter writing to w
func NewFormatterTo(w io.Writer, jsonOutput bool) *Formatter {
	return &Formatter{
		jsonOutput: jsonOutput,
		w:          w,
	}
}

// OutputTable prints the execution time table
func (f *Formatter) OutputTable(table *timings.Table) error {
	if f.jsonOutput {
		return f.outputJSON(table)
	}

	fmt.Fprintf(f.w, "\n=== Execution Times (ms) ===\n")
	tw := tabwriter.NewWriter(f.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Nodes\t")
	for _, v := range timings.Variants {
		fmt.Fprintf(tw, "%s\t", v.Label)
	}
	fmt.Fprintln(tw)

	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%d\t", row.Nodes)
		for _, v := range timings.Variants {
			fmt.Fprintf(tw, "%s\t", formatTime(row.Time(v.Key)))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(f.w, "Runs: %d\n", len(table.Rows))
	return nil
}

// OutputSummary prints what a validation run found
func (f *Formatter) OutputSummary(summary *validation.Summary, reportFile string, totalDuration time.Duration) error {
	if f.jsonOutput {
		return f.outputJSON(map[string]interface{}{
			"report_file":    reportFile,
			"total_duration": totalDuration,
			"summary":        summary,
		})
	}

	fmt.Fprintf(f.w, "\n=== Validation Results ===\n")
	fmt.Fprintf(f.w, "Total Duration: %v\n", totalDuration)
	fmt.Fprintf(f.w, "Folders: %d (skipped %d)\n", summary.Folders, summary.SkippedFolders)
	fmt.Fprintf(f.w, "Files: %d (skipped %d)\n", summary.Files, summary.SkippedFiles)
	fmt.Fprintf(f.w, "Matches: %d\n", summary.Matches)
	fmt.Fprintf(f.w, "Mismatches: %d\n", summary.Mismatches)
	fmt.Fprintln(f.w)

	for _, o := range summary.Outcomes {
		fmt.Fprintf(f.w, "%s/%s: %s (claimed %d, best %d)\n",
			o.Folder, o.File, f.getStatusString(o.Match), o.Claimed.Cost, o.BestValue)
	}
	if len(summary.Outcomes) > 0 {
		fmt.Fprintln(f.w)
	}
	fmt.Fprintf(f.w, "Report written to %s\n", reportFile)
	return nil
}

// OutputFetch prints a mirror result
func (f *Formatter) OutputFetch(result *fetch.Result) error {
	if f.jsonOutput {
		return f.outputJSON(result)
	}

	fmt.Fprintf(f.w, "\n=== Fetch Results ===\n")
	fmt.Fprintf(f.w, "Remote: %s\n", result.RemoteDir)
	fmt.Fprintf(f.w, "Local: %s\n", result.LocalDir)
	fmt.Fprintf(f.w, "Files: %d\n", len(result.Files))
	fmt.Fprintf(f.w, "Bytes: %d\n", result.Bytes)
	fmt.Fprintf(f.w, "Duration: %v\n", result.Duration)
	return nil
}

// OutputEnvironment prints environment information as JSON
func (f *Formatter) OutputEnvironment(env *envinfo.EnvironmentInfo) error {
	data, err := env.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode environment info: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}

func (f *Formatter) outputJSON(v interface{}) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// getStatusString returns the match status of an outcome
func (f *Formatter) getStatusString(match bool) string {
	if match {
		return "✓ MATCH"
	}
	return "✗ MISMATCH"
}

func formatTime(ms int64) string {
	if ms == timings.Missing {
		return "-"
	}
	return fmt.Sprint(ms)
}
